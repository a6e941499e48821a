// Package events is a small in-process observer store. It keeps the last
// value published under each key and notifies subscribers synchronously on
// the publisher's goroutine, in subscription order. Per-key subscribers run
// before wildcard subscribers.
package events

import "sync"

// Keys published by the watch loop.
const (
	KeyStatus = "status"
	KeyReport = "report"
	KeyError  = "error"
)

// Handler receives a key and the value just stored under it.
type Handler func(key string, value any)

type subscriber struct {
	id uint64
	fn Handler
}

// Store holds the last value per key and the subscribers to notify.
type Store struct {
	mu     sync.Mutex
	nextID uint64
	values map[string]any
	byKey  map[string][]subscriber
	all    []subscriber
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]any),
		byKey:  make(map[string][]subscriber),
	}
}

// Set stores value under key and notifies subscribers. The lock is released
// before handlers run, so handlers may call back into the store.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	s.values[key] = value
	keyed := append([]subscriber(nil), s.byKey[key]...)
	all := append([]subscriber(nil), s.all...)
	s.mu.Unlock()

	for _, sub := range keyed {
		sub.fn(key, value)
	}
	for _, sub := range all {
		sub.fn(key, value)
	}
}

// Get returns the last value stored under key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Subscribe registers fn for key. The returned func removes it and is safe
// to call more than once.
func (s *Store) Subscribe(key string, fn Handler) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.add()
	s.byKey[key] = append(s.byKey[key], subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byKey[key] = remove(s.byKey[key], id)
		if len(s.byKey[key]) == 0 {
			delete(s.byKey, key)
		}
	}
}

// SubscribeAll registers fn for every key.
func (s *Store) SubscribeAll(fn Handler) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.add()
	s.all = append(s.all, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.all = remove(s.all, id)
	}
}

func (s *Store) add() uint64 {
	s.nextID++
	return s.nextID
}

func remove(subs []subscriber, id uint64) []subscriber {
	out := subs[:0:0]
	for _, sub := range subs {
		if sub.id != id {
			out = append(out, sub)
		}
	}
	return out
}
