// Package state is the page-lifetime key/value store with per-key
// subscriber callbacks. Every mutation notifies the key's current
// subscribers synchronously; removal and clear notify with a nil value.
package state

import (
	"sync"

	"github.com/google/uuid"
)

// Callback receives the new value for a key. value is nil when the key was
// removed or the store cleared.
type Callback func(value interface{})

type Store struct {
	mu      sync.Mutex
	entries map[string]interface{}
	subs    map[string]map[string]Callback
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]interface{}),
		subs:    make(map[string]map[string]Callback),
	}
}

// Set stores value under key and notifies the key's subscribers.
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	s.entries[key] = value
	cbs := s.callbacksLocked(key)
	s.mu.Unlock()

	notify(cbs, value)
}

func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok
}

// Remove deletes key and notifies its subscribers with nil.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	cbs := s.callbacksLocked(key)
	s.mu.Unlock()

	notify(cbs, nil)
}

// Clear empties the store and notifies the subscribers of every key that
// has any, with nil.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]interface{})
	all := make([][]Callback, 0, len(s.subs))
	for key := range s.subs {
		all = append(all, s.callbacksLocked(key))
	}
	s.mu.Unlock()

	for _, cbs := range all {
		notify(cbs, nil)
	}
}

func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// Subscribe registers fn for mutations of key and returns a handle for
// Unsubscribe.
func (s *Store) Subscribe(key string, fn Callback) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[key] == nil {
		s.subs[key] = make(map[string]Callback)
	}
	id := uuid.New().String()
	s.subs[key][id] = fn
	return id
}

func (s *Store) Unsubscribe(key, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs[key], id)
	if len(s.subs[key]) == 0 {
		delete(s.subs, key)
	}
}

// callbacksLocked snapshots the key's subscribers so they can be invoked
// outside the lock: callbacks are free to call back into the store.
func (s *Store) callbacksLocked(key string) []Callback {
	subs := s.subs[key]
	if len(subs) == 0 {
		return nil
	}
	cbs := make([]Callback, 0, len(subs))
	for _, fn := range subs {
		cbs = append(cbs, fn)
	}
	return cbs
}

func notify(cbs []Callback, value interface{}) {
	for _, fn := range cbs {
		fn(value)
	}
}
