package actions

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

// FetchTracker holds the single-item fetches in flight.
type FetchTracker struct {
	mu      sync.Mutex
	pending map[models.FetchKey]struct{}
}

func NewFetchTracker() *FetchTracker {
	return &FetchTracker{pending: make(map[models.FetchKey]struct{})}
}

// Start marks key as in flight. It returns false when it already was.
func (t *FetchTracker) Start(key models.FetchKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.pending[key]; ok {
		return false
	}
	t.pending[key] = struct{}{}
	return true
}

// Done clears key.
func (t *FetchTracker) Done(key models.FetchKey) {
	t.mu.Lock()
	delete(t.pending, key)
	t.mu.Unlock()
}

// Pending reports whether key is in flight.
func (t *FetchTracker) Pending(key models.FetchKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[key]
	return ok
}

// FetchItem fetches one record. While a fetch for the same site and item is
// in flight further calls are no-ops.
func (a *Actions) FetchItem(ctx context.Context, siteID int64, itemID string) <-chan struct{} {
	key := models.FetchKey{SiteID: siteID, ItemID: itemID}
	if !a.fetching.Start(key) {
		return closed()
	}

	a.dispatcher.HandleViewAction(dispatcher.FetchMediaItem{SiteID: siteID, ID: itemID})
	a.log.Debug(ctx, "fetching media", "site", siteID, "id", itemID)

	return a.background(ctx, "fetch", func(ctx context.Context) {
		defer a.fetching.Done(key)

		rec, err := safeCall(ctx, a, "fetch", func() (*models.MediaRecord, error) {
			return a.client.GetMedia(ctx, siteID, itemID)
		})
		a.dispatcher.HandleServerAction(dispatcher.ReceiveMediaItem{
			SiteID: siteID,
			Data:   rec,
			Error:  err,
		})
	})
}
