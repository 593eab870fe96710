// internal/readings/store.go
package readings

import (
	"sync"
	"time"
)

// Store holds the most recent reading per meter. Records are replaced
// wholesale; a stored record is never mutated.
type Store struct {
	mu      sync.RWMutex
	byMeter map[string]MeterReading
	updated time.Time
}

func NewStore() *Store {
	return &Store{byMeter: make(map[string]MeterReading)}
}

// Put replaces the record for one meter.
func (s *Store) Put(r MeterReading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byMeter[r.ID] = r
	s.updated = time.Now()
}

// Snapshot returns a copy of the current records and the last update time.
func (s *Store) Snapshot() (map[string]MeterReading, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]MeterReading, len(s.byMeter))
	for id, r := range s.byMeter {
		out[id] = r
	}
	return out, s.updated
}
