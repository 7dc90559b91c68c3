// Package filter derives an ordered index subsequence over an entry snapshot
// from the active predicate set.
//
// Filtering is pure: the same snapshot and predicate always produce the same
// index sequence, with no side effects. Output is indices into the snapshot,
// never entry copies, so a 100k-entry filter pass allocates one int slice and
// performs a single linear scan.
package filter

import (
	"strings"

	"github.com/tlogan/sawmill/internal/entry"
)

// Predicate is the active filter state. The zero value passes every entry.
type Predicate struct {
	// Levels is the level-membership set (OR across members). Empty means
	// all levels pass. Keys are canonical upper-case tag names.
	Levels map[string]struct{}

	// File, when non-empty, requires exact source-file equality.
	File string

	// Message, when non-empty, requires a case-sensitive substring match
	// against the message text.
	Message string
}

// WithLevels returns a copy of p with the given level set.
func (p Predicate) WithLevels(names ...string) Predicate {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	p.Levels = set
	return p
}

// Active reports whether any predicate narrows the view.
func (p Predicate) Active() bool {
	return len(p.Levels) > 0 || p.File != "" || p.Message != ""
}

// matches evaluates the composed predicate: level membership AND file
// equality AND message substring, each component skipped when inactive.
func (p Predicate) matches(e entry.Entry) bool {
	if len(p.Levels) > 0 {
		if _, ok := p.Levels[e.Tag]; !ok {
			return false
		}
	}
	if p.File != "" && e.SourceFile != p.File {
		return false
	}
	if p.Message != "" && !MatchesMessage(e.Message, p.Message) {
		return false
	}
	return true
}

// Apply returns the indices of the entries satisfying p, in entry order.
func Apply(entries []entry.Entry, p Predicate) []int {
	indices := make([]int, 0, len(entries))
	for i := range entries {
		if p.matches(entries[i]) {
			indices = append(indices, i)
		}
	}
	return indices
}

// MatchesMessage is the case-sensitive substring test over message text. The
// search navigator uses the same function so search and the message
// predicate cannot drift apart.
func MatchesMessage(message, term string) bool {
	return strings.Contains(message, term)
}
