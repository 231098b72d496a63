package stores

import (
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

const DefaultPageSize = 20

type listState struct {
	query    models.Query
	ids      []string
	next     string
	lastPage bool
	fetching bool
}

// ListStore tracks the library listing of every site: the active query, the
// IDs received so far in display order and the paging cursor.
type ListStore struct {
	mu       sync.RWMutex
	sites    map[int64]*listState
	pageSize int
}

// NewListStore returns a store requesting pageSize items per page. A
// non-positive size means DefaultPageSize.
func NewListStore(pageSize int) *ListStore {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListStore{sites: make(map[int64]*listState), pageSize: pageSize}
}

func (s *ListStore) stateLocked(siteID int64) *listState {
	st, ok := s.sites[siteID]
	if !ok {
		st = &listState{}
		s.sites[siteID] = st
	}
	return st
}

// IsFetchingNextPage reports whether a page request is in flight.
func (s *ListStore) IsFetchingNextPage(siteID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sites[siteID]
	return ok && st.fetching
}

// NextPageQuery returns the active query positioned after the last received
// page.
func (s *ListStore) NextPageQuery(siteID int64) models.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var q models.Query
	if st, ok := s.sites[siteID]; ok {
		q = st.query
		q.PageHandle = st.next
	}
	q.Number = s.pageSize
	return q
}

// IsLastPage reports whether the server said there is nothing more to fetch.
func (s *ListStore) IsLastPage(siteID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sites[siteID]
	return ok && st.lastPage
}

func (s *ListStore) Query(siteID int64) models.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.sites[siteID]; ok {
		return st.query
	}
	return models.Query{}
}

// IDs returns the listed record IDs in display order.
func (s *ListStore) IDs(siteID int64) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.sites[siteID]; ok {
		return append([]string(nil), st.ids...)
	}
	return nil
}

func (s *ListStore) Handle(p dispatcher.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a := p.Action.(type) {
	case dispatcher.SetMediaQuery:
		st := s.stateLocked(a.SiteID)
		if st.query.SameFilter(a.Query) {
			return
		}
		*st = listState{query: a.Query}

	case dispatcher.FetchMediaItems:
		s.stateLocked(a.SiteID).fetching = true

	case dispatcher.ReceiveMediaItems:
		st := s.stateLocked(a.SiteID)
		if !st.query.SameFilter(a.Query) {
			return
		}
		st.fetching = false
		if a.Error != nil || a.Data == nil {
			return
		}
		for _, rec := range a.Data.Media {
			st.ids = appendUnique(st.ids, rec.ID)
		}
		st.next = a.Data.NextPage
		st.lastPage = a.Data.NextPage == ""

	case dispatcher.CreateMediaItem:
		st := s.stateLocked(a.SiteID)
		if matchesFilter(a.Data, st.query) {
			st.ids = append([]string{a.Data.ID}, removeID(st.ids, a.Data.ID)...)
		}

	case dispatcher.ReceiveMediaItem:
		if !p.IsServer() || a.Data == nil || a.ID == "" || a.ID == a.Data.ID {
			return
		}
		st := s.stateLocked(a.SiteID)
		for i, id := range st.ids {
			if id == a.ID {
				st.ids[i] = a.Data.ID
				break
			}
		}

	case dispatcher.RemoveMediaItem:
		if a.Data == nil || a.Error != nil {
			return
		}
		st := s.stateLocked(a.SiteID)
		st.ids = removeID(st.ids, a.Data.ID)
	}
}

// matchesFilter decides whether a new placeholder belongs in the listing.
func matchesFilter(rec models.MediaRecord, q models.Query) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(rec.Title), strings.ToLower(q.Search)) {
		return false
	}
	if q.MimeType != "" && !strings.HasPrefix(rec.MimeType, q.MimeType) {
		return false
	}
	return q.PostID == 0 || q.PostID == rec.ParentID
}

func appendUnique(ids []string, id string) []string {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
