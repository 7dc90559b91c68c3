// Package search finds matches within the filtered view and maintains a
// wrap-around cursor over them.
//
// Search augments the filtered view, it never narrows it: match positions
// are positions within the filtered sequence, and rows outside the match
// list stay visible. The navigator is a small state machine:
//
//	Idle                -> Build(non-empty term) -> WithResults | NoResults
//	WithResults/NoResults -> Build(empty term) or Clear -> Idle
//	WithResults           -> Next/Prev (cursor only)
package search

import (
	"github.com/tlogan/sawmill/internal/entry"
	"github.com/tlogan/sawmill/internal/filter"
)

// State is the navigator's lifecycle state.
type State int

const (
	Idle        State = iota // no active term
	WithResults              // active term with at least one match
	NoResults                // active term, match list empty
)

// Navigator holds the active term, match list, and cursor.
type Navigator struct {
	term    string
	matches []int // positions within the filtered sequence, ascending
	cursor  int   // index into matches; -1 when there are none
}

// Build recomputes the match list for term over the filtered view. filtered
// holds indices into entries (the filter engine's output). An empty term
// clears the search entirely. With a non-empty term the cursor starts at the
// first match, or the navigator enters the no-results state.
func (n *Navigator) Build(entries []entry.Entry, filtered []int, term string) {
	if term == "" {
		n.Clear()
		return
	}
	n.term = term
	n.matches = n.matches[:0]
	for pos, idx := range filtered {
		if idx < 0 || idx >= len(entries) {
			continue
		}
		if filter.MatchesMessage(entries[idx].Message, term) {
			n.matches = append(n.matches, pos)
		}
	}
	if len(n.matches) == 0 {
		n.cursor = -1
		return
	}
	n.cursor = 0
}

// Clear returns the navigator to the idle state.
func (n *Navigator) Clear() {
	n.term = ""
	n.matches = nil
	n.cursor = -1
}

// Next advances the cursor one match, wrapping past the last match to the
// first. No-op without matches.
func (n *Navigator) Next() {
	if len(n.matches) == 0 {
		return
	}
	n.cursor = (n.cursor + 1) % len(n.matches)
}

// Prev moves the cursor back one match, wrapping before the first match to
// the last. No-op without matches.
func (n *Navigator) Prev() {
	if len(n.matches) == 0 {
		return
	}
	n.cursor = (n.cursor - 1 + len(n.matches)) % len(n.matches)
}

// State reports the current lifecycle state.
func (n *Navigator) State() State {
	switch {
	case n.term == "":
		return Idle
	case len(n.matches) == 0:
		return NoResults
	default:
		return WithResults
	}
}

// Term returns the active search term, empty when idle.
func (n *Navigator) Term() string { return n.term }

// Matches returns the match positions within the filtered sequence.
func (n *Navigator) Matches() []int { return n.matches }

// Total returns the match count.
func (n *Navigator) Total() int { return len(n.matches) }

// Current returns the cursor's position within the filtered sequence and
// true, or -1 and false when there is no current match.
func (n *Navigator) Current() (int, bool) {
	if n.cursor < 0 || n.cursor >= len(n.matches) {
		return -1, false
	}
	return n.matches[n.cursor], true
}

// CursorOrdinal returns the 1-based rank of the current match (for "3/17"
// style status), or 0 when there is none.
func (n *Navigator) CursorOrdinal() int {
	if n.cursor < 0 || len(n.matches) == 0 {
		return 0
	}
	return n.cursor + 1
}

// IsMatch reports whether the given filtered-sequence position is a match.
func (n *Navigator) IsMatch(pos int) bool {
	for _, m := range n.matches {
		if m == pos {
			return true
		}
		if m > pos {
			break
		}
	}
	return false
}
