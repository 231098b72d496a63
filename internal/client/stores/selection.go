package stores

import (
	"sync"

	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

// SelectionStore keeps the library selection of every site.
type SelectionStore struct {
	mu    sync.RWMutex
	sites map[int64][]models.MediaRecord
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{sites: make(map[int64][]models.MediaRecord)}
}

func (s *SelectionStore) Selected(siteID int64) []models.MediaRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MediaRecord(nil), s.sites[siteID]...)
}

func (s *SelectionStore) Handle(p dispatcher.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a := p.Action.(type) {
	case dispatcher.SetLibrarySelectedItems:
		s.sites[a.SiteID] = append([]models.MediaRecord(nil), a.Data...)

	case dispatcher.ReceiveMediaItem:
		// keep selected records current, following placeholder promotion
		if a.Data == nil {
			return
		}
		id := a.ID
		if id == "" {
			id = a.Data.ID
		}
		for i, rec := range s.sites[a.SiteID] {
			if rec.ID == id {
				s.sites[a.SiteID][i] = *a.Data
			}
		}

	case dispatcher.RemoveMediaItem:
		if a.Data == nil || a.Error != nil {
			return
		}
		sel := s.sites[a.SiteID]
		kept := sel[:0:0]
		for _, rec := range sel {
			if rec.ID != a.Data.ID {
				kept = append(kept, rec)
			}
		}
		s.sites[a.SiteID] = kept
	}
}
