package state

import (
	"sync"

	"go.uber.org/zap"
)

// Store holds the current AppState and applies events to it one at a time.
// The zero value is ready to use and starts from Default.
type Store struct {
	mu      sync.RWMutex
	state   *AppState
	logger  *zap.Logger
	subs    map[int]chan *AppState
	nextSub int
}

// NewStore returns a Store seeded with initial. A nil initial starts from
// Default; a nil logger discards dispatch logs.
func NewStore(initial *AppState, logger *zap.Logger) *Store {
	if initial == nil {
		initial = Reduce(nil, nil)
	}
	return &Store{state: initial, logger: logger}
}

// Dispatch reduces ev into the current state, publishes the result to
// subscribers and returns it. Events are applied in call order.
func (s *Store) Dispatch(ev Event) *AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current()
	next := Reduce(prev, ev)
	s.state = next

	if s.logger != nil {
		s.logger.Debug("dispatch",
			zap.String("event", eventKind(ev)),
			zap.Bool("changed", next != prev),
		)
	}
	if next != prev {
		for _, ch := range s.subs {
			publish(ch, next)
		}
	}
	return next
}

// Snapshot returns the current state. The result must be treated as read-only.
func (s *Store) Snapshot() *AppState {
	s.mu.RLock()
	if s.state != nil {
		defer s.mu.RUnlock()
		return s.state
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

// Subscribe returns a channel that receives the current state immediately
// and every changed state afterwards. Slow readers only see the latest
// state. The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan *AppState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]chan *AppState)
	}
	id := s.nextSub
	s.nextSub++
	ch := make(chan *AppState, 1)
	ch <- s.current()
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// current must be called with mu held for writing.
func (s *Store) current() *AppState {
	if s.state == nil {
		s.state = Reduce(nil, nil)
	}
	return s.state
}

func publish(ch chan *AppState, st *AppState) {
	select {
	case ch <- st:
		return
	default:
	}
	// Drop the stale pending state in favour of the latest one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- st:
	default:
	}
}

func eventKind(ev Event) string {
	if ev == nil {
		return "nil"
	}
	return ev.Kind()
}
