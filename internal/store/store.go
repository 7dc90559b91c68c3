// Package store holds the canonical ordered entry sequence for one parse run.
//
// The store is the only mutable state shared between the parse goroutine and
// the foreground. It is single-writer: during a run only the scheduler
// appends, and the foreground reads exclusively through Snapshot copies, so
// readers never traverse the live buffer. The lock is held only for the
// duration of one batch append or one copy, never across I/O.
package store

import (
	"sync"

	"github.com/tlogan/sawmill/internal/entry"
)

// Counts summarizes one parse run's line accounting.
type Counts struct {
	Lines    int // source lines consumed so far, including skipped ones
	Entries  int // entries appended
	Skipped  int // lines dropped for a field-count mismatch
	BadLines int // entries retained with a sentinel source line number
}

// Snapshot is a consistent copy of the store at one point in time.
type Snapshot struct {
	Entries []entry.Entry
	Counts  Counts
}

// Store is the append-only entry buffer. The zero value is ready to use.
type Store struct {
	mu      sync.RWMutex
	entries []entry.Entry
	counts  Counts
}

// Reset discards all entries and counters. Called when a new source replaces
// the current one; the old run's entries are dropped wholesale.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.counts = Counts{}
}

// Append adds one parsed batch and folds its accounting into the run totals.
func (s *Store) Append(batch []entry.Entry, c Counts) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, batch...)
	s.counts.Lines += c.Lines
	s.counts.Entries += len(batch)
	s.counts.Skipped += c.Skipped
	s.counts.BadLines += c.BadLines
}

// Snapshot returns a copy of the current entries and counts. The returned
// slice is owned by the caller; later appends do not affect it.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Counts: s.counts}
	if len(s.entries) > 0 {
		snap.Entries = make([]entry.Entry, len(s.entries))
		copy(snap.Entries, s.entries)
	}
	return snap
}

// Len returns the current entry count without copying.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Counts returns the current run totals.
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts
}
