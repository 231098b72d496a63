package cli

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophmedia/internal/client/client"
	"github.com/dmitrijs2005/gophmedia/internal/client/config"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
	"github.com/dmitrijs2005/gophmedia/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophmedia/internal/logging"
)

// fakeMedia is an in-memory media service.
type fakeMedia struct {
	client.MediaClient

	mu      sync.Mutex
	items   map[string]models.MediaRecord
	order   []string
	seq     int
	pingErr error
	listErr error
	added   []models.UploadPayload
	updates []models.MediaUpdate
	edits   []models.MediaUpdate
	deleted []string
}

func newFakeMedia(recs ...models.MediaRecord) *fakeMedia {
	f := &fakeMedia{items: map[string]models.MediaRecord{}}
	for _, r := range recs {
		f.items[r.ID] = r
		f.order = append(f.order, r.ID)
	}
	return f
}

func (f *fakeMedia) GetMedia(_ context.Context, _ int64, id string) (*models.MediaRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.items[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeMedia) ListMedia(_ context.Context, _ int64, q models.Query) (*models.MediaList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}

	start := 0
	if q.PageHandle != "" {
		fmt.Sscanf(q.PageHandle, "%d", &start)
	}
	end := start + q.Number
	if q.Number <= 0 || end > len(f.order) {
		end = len(f.order)
	}

	list := &models.MediaList{Found: len(f.order)}
	for _, id := range f.order[start:end] {
		list.Media = append(list.Media, f.items[id])
	}
	if end < len(f.order) {
		list.NextPage = fmt.Sprint(end)
	}
	return list, nil
}

func (f *fakeMedia) add(p models.UploadPayload) (*models.MediaList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, p)
	f.seq++
	rec := models.MediaRecord{ID: fmt.Sprint(100 + f.seq), Title: p.Title, ParentID: p.ParentID}
	if p.File != nil {
		rec.File = p.File.FileName
	} else {
		rec.URL = p.URL
	}
	f.items[rec.ID] = rec
	return &models.MediaList{Media: []models.MediaRecord{rec}, Found: 1}, nil
}

func (f *fakeMedia) AddMediaURLs(_ context.Context, _ int64, p models.UploadPayload) (*models.MediaList, error) {
	return f.add(p)
}

func (f *fakeMedia) AddMediaFiles(_ context.Context, _ int64, p models.UploadPayload) (*models.MediaList, error) {
	return f.add(p)
}

func (f *fakeMedia) UpdateMedia(_ context.Context, _ int64, id string, u models.MediaUpdate) (*models.MediaRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, u)
	rec, ok := f.items[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	rec = rec.Apply(u)
	f.items[id] = rec
	return &rec, nil
}

func (f *fakeMedia) EditMedia(_ context.Context, _ int64, id string, u models.MediaUpdate) (*models.MediaRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, u)
	rec := f.items[id]
	rec.URL = "https://cdn.example.com/replaced"
	f.items[id] = rec
	return &rec, nil
}

func (f *fakeMedia) DeleteMedia(_ context.Context, _ int64, id string) (*models.MediaRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	rec, ok := f.items[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	delete(f.items, id)
	return &rec, nil
}

func (f *fakeMedia) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeMedia) setPingErr(err error) {
	f.mu.Lock()
	f.pingErr = err
	f.mu.Unlock()
}

// memState is an in-memory metadata.Repository.
type memState struct {
	metadata.Repository
	values map[string][]byte
}

func newMemState() *memState {
	return &memState{values: map[string][]byte{}}
}

func (m *memState) List(context.Context, int64) (map[string][]byte, error) {
	return m.values, nil
}

func (m *memState) Set(_ context.Context, _ int64, key string, value []byte) error {
	m.values[key] = value
	return nil
}

func (m *memState) Delete(_ context.Context, _ int64, key string) error {
	delete(m.values, key)
	return nil
}

// syncBuffer is a bytes.Buffer safe for the printer goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.SiteID = 5
	c.PageSize = 2
	c.OnlineCheckInterval = 10 * time.Millisecond
	return c
}

func newTestApp(t *testing.T, mc client.MediaClient, state metadata.Repository) (*App, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	return newApp(testConfig(), mc, nil, state, logging.NopLogger{}, out), out
}
