package actions

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophmedia/internal/client/client"
	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
	"github.com/dmitrijs2005/gophmedia/internal/client/objecturl"
	"github.com/dmitrijs2005/gophmedia/internal/logging"
)

// RecordReader reads the records known for a site.
type RecordReader interface {
	Get(siteID int64, id string) (models.MediaRecord, bool)
}

// PageReader exposes the paging state of a site's library.
type PageReader interface {
	IsFetchingNextPage(siteID int64) bool
	NextPageQuery(siteID int64) models.Query
}

// ValidationReader returns the validation errors recorded for an item.
type ValidationReader interface {
	Errors(siteID int64, id string) []models.ValidationErrorType
}

// ParentProvider returns the ID of the post being edited, or 0.
type ParentProvider interface {
	ActiveParentID() int64
}

// Stores groups the read side the action layer consults. Parent may be nil.
type Stores struct {
	Records    RecordReader
	Pages      PageReader
	Validation ValidationReader
	Parent     ParentProvider
}

// Actions orchestrates media operations for all sites.
type Actions struct {
	dispatcher dispatcher.Dispatcher
	client     client.MediaClient
	stores     Stores

	builder  *TransientBuilder
	fetching *FetchTracker
	log      logging.Logger

	now   func() time.Time
	newID func() string
}

// Option customizes Actions.
type Option func(*Actions)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(a *Actions) { a.log = l }
}

// WithFetchTracker shares a tracker between Actions values.
func WithFetchTracker(t *FetchTracker) Option {
	return func(a *Actions) { a.fetching = t }
}

// WithTransientBuilder sets the builder used for placeholder records.
func WithTransientBuilder(b *TransientBuilder) Option {
	return func(a *Actions) { a.builder = b }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Actions) { a.now = now }
}

// WithIDGenerator replaces the source of placeholder ID suffixes.
func WithIDGenerator(newID func() string) Option {
	return func(a *Actions) { a.newID = newID }
}

func New(d dispatcher.Dispatcher, c client.MediaClient, stores Stores, opts ...Option) *Actions {
	a := &Actions{
		dispatcher: d,
		client:     c,
		stores:     stores,
		log:        logging.NopLogger{},
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.builder == nil {
		a.builder = NewTransientBuilder(objecturl.NewRegistry())
	}
	if a.fetching == nil {
		a.fetching = NewFetchTracker()
	}
	a.log = a.log.With("component", "media-actions")
	return a
}

func (a *Actions) activeParentID() int64 {
	if a.stores.Parent == nil {
		return 0
	}
	return a.stores.Parent.ActiveParentID()
}

// background runs fn in a goroutine and returns a channel closed when fn
// returns. A panic in fn is logged and does not escape.
func (a *Actions) background(ctx context.Context, name string, fn func(ctx context.Context)) <-chan struct{} {
	done := make(chan struct{})
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				a.log.Error(ctx, "media action panic", "op", name, "panic", r, "stack", string(debug.Stack()))
			}
		}()
		fn(ctx)
	}()

	return done
}

// safeCall runs a client request. A panic in fn is logged and returned as an
// error wrapping ErrPanic.
func safeCall[T any](ctx context.Context, a *Actions, op string, fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error(ctx, "media request panic", "op", op, "panic", r, "stack", string(debug.Stack()))
			var zero T
			v, err = zero, fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn()
}

// detach releases the object URL held by rec, a record that stays in the
// stores, and re-emits it pointing at fallback's URL instead.
func (a *Actions) detach(siteID int64, rec, fallback models.MediaRecord) {
	if !objecturl.IsObjectURL(rec.URL) {
		return
	}
	a.builder.Release(rec)

	rec.URL = fallback.URL
	rec.GUID = fallback.GUID
	a.dispatcher.HandleViewAction(dispatcher.ReceiveMediaItem{SiteID: siteID, Data: &rec})
}

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// waitAll returns a channel closed once every channel in chs is closed.
func waitAll(chs []<-chan struct{}) <-chan struct{} {
	if len(chs) == 0 {
		return closed()
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(len(chs))
	for _, ch := range chs {
		go func(ch <-chan struct{}) {
			defer wg.Done()
			<-ch
		}(ch)
	}
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}
