package stores

import (
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

// ValidationStore checks new placeholders against the allowed file types and
// the size limit, and remembers failed uploads.
type ValidationStore struct {
	mu      sync.RWMutex
	errs    map[int64]map[string][]models.ValidationErrorType
	allowed map[string]struct{}
	maxSize int64
}

// NewValidationStore returns a store accepting the given extensions (any, when
// empty) up to maxSize bytes (no limit when non-positive).
func NewValidationStore(allowedExtensions []string, maxSize int64) *ValidationStore {
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}
	return &ValidationStore{
		errs:    make(map[int64]map[string][]models.ValidationErrorType),
		allowed: allowed,
		maxSize: maxSize,
	}
}

func (s *ValidationStore) Errors(siteID int64, id string) []models.ValidationErrorType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ValidationErrorType(nil), s.errs[siteID][id]...)
}

// All returns a copy of every item error of a site.
func (s *ValidationStore) All(siteID int64) map[string][]models.ValidationErrorType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]models.ValidationErrorType, len(s.errs[siteID]))
	for id, errs := range s.errs[siteID] {
		out[id] = append([]models.ValidationErrorType(nil), errs...)
	}
	return out
}

func (s *ValidationStore) validate(rec models.MediaRecord) []models.ValidationErrorType {
	var errs []models.ValidationErrorType
	if len(s.allowed) > 0 {
		if _, ok := s.allowed[strings.ToLower(rec.Extension)]; !ok {
			errs = append(errs, models.ValidationErrorUnsupportedType)
		}
	}
	if s.maxSize > 0 && rec.Size > s.maxSize {
		errs = append(errs, models.ValidationErrorTooLarge)
	}
	return errs
}

func (s *ValidationStore) Handle(p dispatcher.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a := p.Action.(type) {
	case dispatcher.CreateMediaItem:
		if errs := s.validate(a.Data); len(errs) > 0 {
			s.setLocked(a.SiteID, a.Data.ID, errs)
		}

	case dispatcher.ReceiveMediaItem:
		if !p.IsServer() || a.ID == "" {
			return
		}
		if a.Error != nil {
			s.setLocked(a.SiteID, a.ID, []models.ValidationErrorType{models.ValidationErrorUploadFailed})
			return
		}
		delete(s.errs[a.SiteID], a.ID)

	case dispatcher.ClearValidationErrors:
		switch {
		case a.ItemID != "":
			delete(s.errs[a.SiteID], a.ItemID)
		case a.ErrorType != "":
			for id, errs := range s.errs[a.SiteID] {
				kept := errs[:0:0]
				for _, e := range errs {
					if e != a.ErrorType {
						kept = append(kept, e)
					}
				}
				if len(kept) == 0 {
					delete(s.errs[a.SiteID], id)
				} else {
					s.errs[a.SiteID][id] = kept
				}
			}
		default:
			delete(s.errs, a.SiteID)
		}
	}
}

func (s *ValidationStore) setLocked(siteID int64, id string, errs []models.ValidationErrorType) {
	m, ok := s.errs[siteID]
	if !ok {
		m = make(map[string][]models.ValidationErrorType)
		s.errs[siteID] = m
	}
	m[id] = errs
}
