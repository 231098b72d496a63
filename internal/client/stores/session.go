package stores

import "sync"

// EditSession tracks the post currently being edited. Uploads started while
// a parent is active are attached to it.
type EditSession struct {
	mu       sync.RWMutex
	parentID int64
}

func NewEditSession() *EditSession {
	return &EditSession{}
}

// ActiveParentID returns the edited post ID, or 0 when none is active.
func (s *EditSession) ActiveParentID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parentID
}

// SetActiveParent starts editing parentID. 0 ends the session.
func (s *EditSession) SetActiveParent(parentID int64) {
	s.mu.Lock()
	s.parentID = parentID
	s.mu.Unlock()
}
