package actions

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophmedia/internal/client/client"
	"github.com/dmitrijs2005/gophmedia/internal/client/dispatcher"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
	"github.com/dmitrijs2005/gophmedia/internal/client/objecturl"
)

const settleTimeout = 2 * time.Second

// recorder is a Dispatcher that keeps every payload. hook, when set, runs
// synchronously for each payload, like a store would.
type recorder struct {
	mu     sync.Mutex
	events []dispatcher.Payload
	hook   func(dispatcher.Payload)
}

func (r *recorder) HandleViewAction(a dispatcher.Action) {
	r.add(dispatcher.Payload{Source: dispatcher.SourceView, Action: a})
}

func (r *recorder) HandleServerAction(a dispatcher.Action) {
	r.add(dispatcher.Payload{Source: dispatcher.SourceServer, Action: a})
}

func (r *recorder) add(p dispatcher.Payload) {
	r.mu.Lock()
	r.events = append(r.events, p)
	hook := r.hook
	r.mu.Unlock()

	if hook != nil {
		hook(p)
	}
}

func (r *recorder) all() []dispatcher.Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dispatcher.Payload(nil), r.events...)
}

func (r *recorder) of(source dispatcher.Source, typ dispatcher.Type) []dispatcher.Action {
	var out []dispatcher.Action
	for _, p := range r.all() {
		if p.Source == source && p.Action.Type() == typ {
			out = append(out, p.Action)
		}
	}
	return out
}

func (r *recorder) types() []string {
	var out []string
	for _, p := range r.all() {
		prefix := "view:"
		if p.IsServer() {
			prefix = "server:"
		}
		out = append(out, prefix+string(p.Action.Type()))
	}
	return out
}

type reply struct {
	rec   *models.MediaRecord
	list  *models.MediaList
	err   error
	panic any
}

// call is one blocked client invocation. The test answers it on reply.
type call struct {
	method  string
	siteID  int64
	itemID  string
	payload models.UploadPayload
	update  models.MediaUpdate
	query   models.Query
	reply   chan reply
}

// blockingClient parks every call until the test replies to it.
type blockingClient struct {
	calls   chan *call
	started atomic.Int32
}

var _ client.MediaClient = (*blockingClient)(nil)

func newBlockingClient() *blockingClient {
	return &blockingClient{calls: make(chan *call, 32)}
}

func (c *blockingClient) do(cl *call) reply {
	c.started.Add(1)
	cl.reply = make(chan reply, 1)
	c.calls <- cl
	r := <-cl.reply
	if r.panic != nil {
		panic(r.panic)
	}
	return r
}

func (c *blockingClient) GetMedia(_ context.Context, siteID int64, itemID string) (*models.MediaRecord, error) {
	r := c.do(&call{method: "GetMedia", siteID: siteID, itemID: itemID})
	return r.rec, r.err
}

func (c *blockingClient) ListMedia(_ context.Context, siteID int64, q models.Query) (*models.MediaList, error) {
	r := c.do(&call{method: "ListMedia", siteID: siteID, query: q})
	return r.list, r.err
}

func (c *blockingClient) AddMediaURLs(_ context.Context, siteID int64, p models.UploadPayload) (*models.MediaList, error) {
	r := c.do(&call{method: "AddMediaURLs", siteID: siteID, payload: p})
	return r.list, r.err
}

func (c *blockingClient) AddMediaFiles(_ context.Context, siteID int64, p models.UploadPayload) (*models.MediaList, error) {
	r := c.do(&call{method: "AddMediaFiles", siteID: siteID, payload: p})
	return r.list, r.err
}

func (c *blockingClient) UpdateMedia(_ context.Context, siteID int64, itemID string, u models.MediaUpdate) (*models.MediaRecord, error) {
	r := c.do(&call{method: "UpdateMedia", siteID: siteID, itemID: itemID, update: u})
	return r.rec, r.err
}

func (c *blockingClient) EditMedia(_ context.Context, siteID int64, itemID string, u models.MediaUpdate) (*models.MediaRecord, error) {
	r := c.do(&call{method: "EditMedia", siteID: siteID, itemID: itemID, update: u})
	return r.rec, r.err
}

func (c *blockingClient) DeleteMedia(_ context.Context, siteID int64, itemID string) (*models.MediaRecord, error) {
	r := c.do(&call{method: "DeleteMedia", siteID: siteID, itemID: itemID})
	return r.rec, r.err
}

func (c *blockingClient) next(t *testing.T) *call {
	t.Helper()
	select {
	case cl := <-c.calls:
		return cl
	case <-time.After(settleTimeout):
		t.Fatal("expected a client call")
		return nil
	}
}

func (c *blockingClient) expectIdle(t *testing.T) {
	t.Helper()
	select {
	case cl := <-c.calls:
		t.Fatalf("unexpected client call %s", cl.method)
	case <-time.After(50 * time.Millisecond):
	}
}

// fakeStores implements every reader of Stores.
type fakeStores struct {
	mu       sync.Mutex
	records  map[string]models.MediaRecord
	fetching bool
	next     models.Query
	errs     map[string][]models.ValidationErrorType
	parent   int64
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		records: map[string]models.MediaRecord{},
		errs:    map[string][]models.ValidationErrorType{},
	}
}

func (s *fakeStores) key(siteID int64, id string) string {
	return strconv.FormatInt(siteID, 10) + "/" + id
}

func (s *fakeStores) put(siteID int64, rec models.MediaRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[s.key(siteID, rec.ID)] = rec
}

func (s *fakeStores) reject(siteID int64, id string, t models.ValidationErrorType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[s.key(siteID, id)] = append(s.errs[s.key(siteID, id)], t)
}

func (s *fakeStores) Get(siteID int64, id string) (models.MediaRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[s.key(siteID, id)]
	return rec, ok
}

func (s *fakeStores) IsFetchingNextPage(int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetching
}

func (s *fakeStores) NextPageQuery(int64) models.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

func (s *fakeStores) Errors(siteID int64, id string) []models.ValidationErrorType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs[s.key(siteID, id)]
}

func (s *fakeStores) ActiveParentID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parent
}

var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	actions  *Actions
	rec      *recorder
	client   *blockingClient
	stores   *fakeStores
	registry *objecturl.Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		rec:      &recorder{},
		client:   newBlockingClient(),
		stores:   newFakeStores(),
		registry: objecturl.NewRegistry(),
	}

	var seq atomic.Int32
	h.actions = New(h.rec, h.client,
		Stores{Records: h.stores, Pages: h.stores, Validation: h.stores, Parent: h.stores},
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string { return strconv.Itoa(int(seq.Add(1))) }),
		WithTransientBuilder(NewTransientBuilder(h.registry)),
	)
	return h
}

func waitDone(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(settleTimeout):
		t.Fatal("operation did not settle")
	}
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
