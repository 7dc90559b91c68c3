package filter

import (
	"sort"

	"github.com/tlogan/sawmill/internal/entry"
)

// SourceFiles returns the distinct source file names present in entries,
// sorted alphabetically. Feeds the file-filter selector.
func SourceFiles(entries []entry.Entry) []string {
	seen := make(map[string]struct{})
	for i := range entries {
		if f := entries[i].SourceFile; f != "" {
			seen[f] = struct{}{}
		}
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// TagCounts returns per-tag entry counts, honoring the search term (the
// message substring) but not the level or file predicates, so the filter bar
// can label each level with how many entries it would contribute.
func TagCounts(entries []entry.Entry, term string) map[string]int {
	counts := make(map[string]int)
	for i := range entries {
		if term != "" && !MatchesMessage(entries[i].Message, term) {
			continue
		}
		counts[entries[i].Tag]++
	}
	return counts
}
