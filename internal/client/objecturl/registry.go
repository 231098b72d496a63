// Package objecturl hands out local "blob:" references for in-memory content,
// so a placeholder record can point at a file that has not been uploaded yet.
package objecturl

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophmedia/internal/client/models"
)

const Scheme = "blob:"

// Registry maps object URLs to the content they stand for. It is safe for
// concurrent use. References live until Revoke is called.
type Registry struct {
	mu    sync.RWMutex
	blobs map[string]*models.Blob
}

func NewRegistry() *Registry {
	return &Registry{blobs: make(map[string]*models.Blob)}
}

// Create registers b and returns a fresh object URL for it.
func (r *Registry) Create(b *models.Blob) string {
	ref := Scheme + uuid.NewString()

	r.mu.Lock()
	r.blobs[ref] = b
	r.mu.Unlock()

	return ref
}

// Resolve returns the content behind ref.
func (r *Registry) Resolve(ref string) (*models.Blob, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blobs[ref]
	return b, ok
}

// Revoke releases ref. Unknown refs are ignored.
func (r *Registry) Revoke(ref string) {
	r.mu.Lock()
	delete(r.blobs, ref)
	r.mu.Unlock()
}

// Len returns the number of live references.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}

// IsObjectURL reports whether s was produced by a Registry.
func IsObjectURL(s string) bool {
	return strings.HasPrefix(s, Scheme)
}
