// Package tags maintains the registry of log level tags.
//
// Tags are open-ended: the parser resolves every level token it sees through
// GetOrCreate, so unknown levels become new tags with a neutral color instead
// of parse failures. Entries reference tags by name only; the registry is the
// single owner of tag attributes (color, enabled, show-count, order).
//
// The registry is read at high frequency from the parse goroutine while the
// foreground occasionally reads or edits it, so lookups of existing tags take
// only a read lock; creation is serialized behind the write lock with a
// double check.
package tags

import (
	"sort"
	"strings"
	"sync"
)

// DefaultColor is the neutral color assigned to auto-created tags.
const DefaultColor = "#808080"

// Tag is one named, colored log level category.
type Tag struct {
	Name      string // canonical upper-case name, unique case-insensitively
	Color     string // hex color, e.g. "#FF0000"
	Enabled   bool   // whether the tag appears in the filter bar
	ShowCount bool   // whether the filter bar shows a per-tag entry count
	Order     int    // display order, first-seen insertion order
}

// Registry maps level tokens to tags.
type Registry struct {
	mu         sync.RWMutex
	byName     map[string]Tag // key: upper-case name
	order      []string       // upper-case names in display order
	discovered []Tag          // created since the last Drain, for write-back
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Tag)}
}

// Seed installs tags loaded from persistence, replacing any current set.
// Display order follows the tags' Order fields.
func (r *Registry) Seed(seed []Tag) {
	sorted := make([]Tag, len(seed))
	copy(sorted, seed)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName = make(map[string]Tag, len(sorted))
	r.order = r.order[:0]
	for i, t := range sorted {
		key := strings.ToUpper(t.Name)
		if _, dup := r.byName[key]; dup {
			continue
		}
		t.Name = key
		t.Order = i
		r.byName[key] = t
		r.order = append(r.order, key)
	}
}

// GetOrCreate returns the tag for name, matching case-insensitively, creating
// it with the neutral default color and next display order if unknown.
func (r *Registry) GetOrCreate(name string) Tag {
	key := strings.ToUpper(strings.TrimSpace(name))

	r.mu.RLock()
	t, ok := r.byName[key]
	r.mu.RUnlock()
	if ok {
		return t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.byName[key]; ok {
		return t
	}
	t = Tag{
		Name:      key,
		Color:     DefaultColor,
		Enabled:   true,
		ShowCount: false,
		Order:     len(r.order),
	}
	r.byName[key] = t
	r.order = append(r.order, key)
	r.discovered = append(r.discovered, t)
	return t
}

// Get returns the tag for name and whether it exists.
func (r *Registry) Get(name string) (Tag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[strings.ToUpper(strings.TrimSpace(name))]
	return t, ok
}

// Color returns the tag's color, or fallback when the tag is unknown.
func (r *Registry) Color(name, fallback string) string {
	if t, ok := r.Get(name); ok {
		return t.Color
	}
	return fallback
}

// All returns the tags in display order.
func (r *Registry) All() []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tag, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byName[key])
	}
	return out
}

// Set replaces the attributes of an existing tag, keyed case-insensitively by
// t.Name. It reports whether the tag existed; Set never creates tags.
func (r *Registry) Set(t Tag) bool {
	key := strings.ToUpper(strings.TrimSpace(t.Name))

	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byName[key]
	if !ok {
		return false
	}
	t.Name = key
	t.Order = cur.Order
	r.byName[key] = t
	return true
}

// Drain returns the tags auto-created since the previous Drain and clears the
// pending list. The persistence collaborator uses this to write newly
// discovered tags back to the config.
func (r *Registry) Drain() []Tag {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.discovered) == 0 {
		return nil
	}
	out := r.discovered
	r.discovered = nil
	return out
}
