package connectivity

import "sync"

// Source reports the platform's network reachability. OnChange registers a
// callback for transitions and returns the matching unsubscribe; callers own
// unregistering on teardown.
type Source interface {
	Online() bool
	OnChange(fn func(online bool)) (unsubscribe func())
}

// ManualSource is a Source driven by explicit Set calls. The presentation
// layer reports the platform's online/offline events into it.
type ManualSource struct {
	mu        sync.Mutex
	online    bool
	nextID    int
	listeners map[int]func(online bool)
}

// NewManualSource starts in the given state.
func NewManualSource(online bool) *ManualSource {
	return &ManualSource{
		online:    online,
		listeners: make(map[int]func(online bool)),
	}
}

func (s *ManualSource) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// Set records a transition and notifies listeners. Setting the current state
// again is a no-op.
func (s *ManualSource) Set(online bool) {
	s.mu.Lock()
	if s.online == online {
		s.mu.Unlock()
		return
	}
	s.online = online
	listeners := make([]func(online bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(online)
	}
}

func (s *ManualSource) OnChange(fn func(online bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
