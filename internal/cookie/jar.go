// Package cookie holds small string values with optional expiry, mirroring
// the browser cookie store the admin pages read tokens from.
package cookie

import (
	"sort"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
	hasExpiry bool
}

func (e entry) isExpired() bool {
	return e.hasExpiry && time.Now().After(e.expiresAt)
}

// Jar is an in-memory cookie store. Safe for concurrent use.
type Jar struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewJar() *Jar {
	return &Jar{entries: make(map[string]entry)}
}

// Set stores a session cookie (no expiry).
func (j *Jar) Set(name, value string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[name] = entry{value: value}
}

// SetWithExpiry stores a cookie that becomes absent after ttl.
// A non-positive ttl deletes the cookie, matching Max-Age semantics.
func (j *Jar) SetWithExpiry(name, value string, ttl time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if ttl <= 0 {
		delete(j.entries, name)
		return
	}
	j.entries[name] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
		hasExpiry: true,
	}
}

// Get returns the cookie value and whether it exists. Expired entries are
// pruned on read.
func (j *Jar) Get(name string) (string, bool) {
	j.mu.RLock()
	e, ok := j.entries[name]
	j.mu.RUnlock()

	if !ok {
		return "", false
	}
	if e.isExpired() {
		j.mu.Lock()
		delete(j.entries, name)
		j.mu.Unlock()
		return "", false
	}
	return e.value, true
}

func (j *Jar) Delete(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.entries, name)
}

// Names returns the names of all live cookies, sorted.
func (j *Jar) Names() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	names := make([]string, 0, len(j.entries))
	for name, e := range j.entries {
		if e.isExpired() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
