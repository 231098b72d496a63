package stores

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
	"github.com/dmitrijs2005/gophmedia/internal/client/repositories/media"
	"github.com/dmitrijs2005/gophmedia/internal/logging"
)

// MediaStore keeps the known records of every site, placeholders included.
// Confirmed records are written through to the repository when one is set.
type MediaStore struct {
	mu    sync.RWMutex
	sites map[int64]map[string]models.MediaRecord

	repo media.Repository
	log  logging.Logger
}

// NewMediaStore returns an empty store. repo and log may be nil.
func NewMediaStore(repo media.Repository, log logging.Logger) *MediaStore {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &MediaStore{
		sites: make(map[int64]map[string]models.MediaRecord),
		repo:  repo,
		log:   log.With("component", "media-store"),
	}
}

// Load fills the store with the persisted records of a site.
func (s *MediaStore) Load(ctx context.Context, siteID int64) error {
	if s.repo == nil {
		return nil
	}

	list, err := s.repo.List(ctx, siteID)
	if err != nil {
		return fmt.Errorf("load media: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range list {
		s.putLocked(siteID, rec)
	}
	return nil
}

func (s *MediaStore) Get(siteID int64, id string) (models.MediaRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sites[siteID][id]
	return rec, ok
}

// All returns the records of a site, newest first.
func (s *MediaStore) All(siteID int64) []models.MediaRecord {
	s.mu.RLock()
	out := make([]models.MediaRecord, 0, len(s.sites[siteID]))
	for _, rec := range s.sites[siteID] {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (s *MediaStore) Handle(p dispatcher.Payload) {
	switch a := p.Action.(type) {
	case dispatcher.CreateMediaItem:
		s.put(a.SiteID, a.Data)

	case dispatcher.ReceiveMediaItem:
		if a.Error != nil || a.Data == nil {
			return
		}
		s.replace(a.SiteID, a.ID, *a.Data)
		if p.IsServer() {
			s.persist(a.SiteID, *a.Data)
		}

	case dispatcher.ReceiveMediaItems:
		if a.Error != nil || a.Data == nil {
			return
		}
		for _, rec := range a.Data.Media {
			s.put(a.SiteID, rec)
		}
		s.persistAll(a.SiteID, a.Data.Media)

	case dispatcher.RemoveMediaItem:
		if a.Error != nil || a.Data == nil {
			return
		}
		s.remove(a.SiteID, a.Data.ID)
		if p.IsServer() && s.repo != nil {
			if err := s.repo.Delete(context.Background(), a.SiteID, a.Data.ID); err != nil {
				s.log.Warn(context.Background(), "failed to forget media", "site", a.SiteID, "id", a.Data.ID, "error", err)
			}
		}

	case dispatcher.ClearValidationErrors:
		// a dismissed item error also dismisses its placeholder
		if a.ItemID == "" {
			return
		}
		if rec, ok := s.Get(a.SiteID, a.ItemID); ok && rec.Transient {
			s.remove(a.SiteID, a.ItemID)
		}
	}
}

func (s *MediaStore) put(siteID int64, rec models.MediaRecord) {
	s.mu.Lock()
	s.putLocked(siteID, rec)
	s.mu.Unlock()
}

func (s *MediaStore) putLocked(siteID int64, rec models.MediaRecord) {
	m, ok := s.sites[siteID]
	if !ok {
		m = make(map[string]models.MediaRecord)
		s.sites[siteID] = m
	}
	m[rec.ID] = rec
}

// replace stores rec, dropping the record it supersedes when the IDs differ.
func (s *MediaStore) replace(siteID int64, oldID string, rec models.MediaRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if oldID != "" && oldID != rec.ID {
		delete(s.sites[siteID], oldID)
	}
	s.putLocked(siteID, rec)
}

func (s *MediaStore) remove(siteID int64, id string) {
	s.mu.Lock()
	delete(s.sites[siteID], id)
	s.mu.Unlock()
}

func (s *MediaStore) persist(siteID int64, rec models.MediaRecord) {
	if s.repo == nil || rec.Transient {
		return
	}
	if err := s.repo.Upsert(context.Background(), siteID, rec); err != nil {
		s.log.Warn(context.Background(), "failed to persist media", "site", siteID, "id", rec.ID, "error", err)
	}
}

func (s *MediaStore) persistAll(siteID int64, recs []models.MediaRecord) {
	if s.repo == nil {
		return
	}

	confirmed := make([]models.MediaRecord, 0, len(recs))
	for _, rec := range recs {
		if !rec.Transient {
			confirmed = append(confirmed, rec)
		}
	}
	if len(confirmed) == 0 {
		return
	}

	if err := s.repo.UpsertAll(context.Background(), siteID, confirmed); err != nil {
		s.log.Warn(context.Background(), "failed to persist media page", "site", siteID, "count", len(confirmed), "error", err)
	}
}
