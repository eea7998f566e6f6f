package catalog

import (
	"sync"

	"github.com/quietravel/gateway/internal/destination"
)

// Token identifies one load or search started against a Latest holder.
type Token uint64

// Latest holds the most recent result of a sequence of asynchronous calls.
// Each call takes a Token from Begin before starting; only the result whose
// token is the latest issued may be committed, so a slow early response can
// never overwrite the answer to a later request.
type Latest[T any] struct {
	mu      sync.Mutex
	issued  Token
	applied Token
	value   T
	loaded  bool
}

// Begin issues a new token, superseding every token issued before it.
func (l *Latest[T]) Begin() Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.issued++
	return l.issued
}

// Commit stores v if tok is still the latest issued token and reports
// whether v was applied.
func (l *Latest[T]) Commit(tok Token, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if tok != l.issued || tok <= l.applied {
		return false
	}
	l.applied = tok
	l.value = v
	l.loaded = true
	return true
}

// Get returns the last committed value and whether anything was committed yet.
func (l *Latest[T]) Get() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.loaded
}

// Store is the catalog snapshot owned by a single screen.
type Store struct {
	Latest[[]destination.Destination]
}

// Snapshot returns the current catalog, or nil before the first load.
func (s *Store) Snapshot() []destination.Destination {
	v, _ := s.Get()
	return v
}
