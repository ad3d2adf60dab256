package source

import (
	"context"
	"sync"

	"mercator-hq/triage/pkg/protocol/ast"
	"mercator-hq/triage/pkg/triage"
)

// MemorySource is an in-memory protocol source for testing.
type MemorySource struct {
	mu        sync.Mutex
	protocols []*ast.Protocol
	err       error
	watchers  map[chan triage.Event]struct{}
}

// NewMemorySource creates a new in-memory protocol source.
func NewMemorySource(protocols ...*ast.Protocol) *MemorySource {
	return &MemorySource{
		protocols: protocols,
		watchers:  make(map[chan triage.Event]struct{}),
	}
}

// Load returns the protocols stored in memory, or the error set with
// SetError.
func (s *MemorySource) Load(ctx context.Context) ([]*ast.Protocol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	// Return a copy to prevent external modification
	protocols := make([]*ast.Protocol, len(s.protocols))
	copy(protocols, s.protocols)
	return protocols, nil
}

// Watch returns a channel that receives an event after every
// SetProtocols or SetError call.
func (s *MemorySource) Watch(ctx context.Context) (<-chan triage.Event, error) {
	eventCh := make(chan triage.Event, 1)

	s.mu.Lock()
	s.watchers[eventCh] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, eventCh)
		close(eventCh)
		s.mu.Unlock()
	}()

	return eventCh, nil
}

// SetProtocols replaces the protocols, clears any error and notifies
// watchers.
func (s *MemorySource) SetProtocols(protocols ...*ast.Protocol) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.protocols = protocols
	s.err = nil
	s.notify()
}

// SetError makes Load fail with err until the next SetProtocols, and
// notifies watchers.
func (s *MemorySource) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err
	s.notify()
}

// notify must be called with mu held. Watchers with a pending event are
// skipped.
func (s *MemorySource) notify() {
	for ch := range s.watchers {
		select {
		case ch <- triage.Event{Type: triage.EventModified}:
		default:
		}
	}
}
