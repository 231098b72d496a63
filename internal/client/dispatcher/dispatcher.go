// Package dispatcher is the one-way message bus between the media action
// layer and the read-side stores.
//
// # Overview
//
// Actions are a closed sum type (see Action). Producers hand them to a
// Dispatcher either as view actions (optimistic intents, emitted before any
// network I/O) or as server actions (results, emitted once a network call
// settled). Subscribers registered on a Bus see every payload, in
// registration order, synchronously in the dispatching goroutine.
//
// # Concurrency
//
// Dispatches are serialized: a payload is delivered to all subscribers before
// the next one starts. Subscribers must not dispatch from inside a handler;
// doing so deadlocks.
package dispatcher

import (
	"fmt"
	"sync"
)

// Source tells whether an action is an intent or a result.
type Source string

const (
	SourceView   Source = "VIEW_ACTION"
	SourceServer Source = "SERVER_ACTION"
)

// Payload is what subscribers receive.
type Payload struct {
	Source Source
	Action Action
}

// IsServer reports whether the payload carries a result.
func (p Payload) IsServer() bool {
	return p.Source == SourceServer
}

// Handler consumes payloads.
type Handler func(Payload)

// Dispatcher is the producer side of the bus.
type Dispatcher interface {
	HandleViewAction(Action)
	HandleServerAction(Action)
}

// Bus is an in-process Dispatcher with registered subscribers.
type Bus struct {
	dispatchMu sync.Mutex

	mu       sync.RWMutex
	seq      int
	order    []string
	handlers map[string]Handler
}

var _ Dispatcher = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{handlers: make(map[string]Handler)}
}

// Register adds a subscriber and returns its token for Unregister.
func (b *Bus) Register(h Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	token := fmt.Sprintf("ID_%d", b.seq)
	b.handlers[token] = h
	b.order = append(b.order, token)

	return token
}

// Unregister removes the subscriber behind token. Unknown tokens are ignored.
func (b *Bus) Unregister(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.handlers[token]; !ok {
		return
	}
	delete(b.handlers, token)
	for i, t := range b.order {
		if t == token {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *Bus) HandleViewAction(a Action) {
	b.Dispatch(Payload{Source: SourceView, Action: a})
}

func (b *Bus) HandleServerAction(a Action) {
	b.Dispatch(Payload{Source: SourceServer, Action: a})
}

// Dispatch delivers p to every subscriber.
func (b *Bus) Dispatch(p Payload) {
	b.dispatchMu.Lock()
	defer b.dispatchMu.Unlock()

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, t := range b.order {
		handlers = append(handlers, b.handlers[t])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(p)
	}
}
