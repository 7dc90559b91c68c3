package filter

import (
	"reflect"
	"testing"

	"github.com/tlogan/sawmill/internal/entry"
)

func sampleEntries() []entry.Entry {
	return []entry.Entry{
		{Ordinal: 1, Tag: "ERROR", Message: "boom", SourceFile: "a.cpp"},
		{Ordinal: 2, Tag: "INFO", Message: "ok", SourceFile: "a.cpp"},
		{Ordinal: 3, Tag: "INFO", Message: "boom again", SourceFile: "b.cpp"},
		{Ordinal: 4, Tag: "WARN", Message: "watch out", SourceFile: "b.cpp"},
	}
}

func TestApply_EmptyPredicateIsIdentity(t *testing.T) {
	entries := sampleEntries()
	got := Apply(entries, Predicate{})
	if want := []int{0, 1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Apply(identity) = %v, want %v", got, want)
	}
}

func TestApply_IsDeterministic(t *testing.T) {
	entries := sampleEntries()
	p := Predicate{}.WithLevels("INFO")
	first := Apply(entries, p)
	second := Apply(entries, p)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recomputation differs: %v vs %v", first, second)
	}
}

func TestApply_LevelAndFilePredicates(t *testing.T) {
	// Scenario: two entries in a.cpp, level filter picks one, file filter
	// picks both.
	entries := []entry.Entry{
		{Ordinal: 1, Tag: "ERROR", Message: "boom", SourceFile: "a.cpp"},
		{Ordinal: 2, Tag: "INFO", Message: "ok", SourceFile: "a.cpp"},
	}

	if got := Apply(entries, Predicate{}.WithLevels("ERROR")); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("level=ERROR: got %v, want [0]", got)
	}
	if got := Apply(entries, Predicate{File: "a.cpp"}); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf(`file="a.cpp": got %v, want [0 1]`, got)
	}
}

func TestApply_ComposedPredicatesEqualIntersection(t *testing.T) {
	entries := sampleEntries()
	p1 := Predicate{}.WithLevels("INFO")
	p2 := Predicate{Message: "boom"}

	combined := Apply(entries, Predicate{Levels: p1.Levels, Message: p2.Message})

	only1 := Apply(entries, p1)
	only2 := Apply(entries, p2)
	want := intersect(only1, only2)

	if !reflect.DeepEqual(combined, want) {
		t.Fatalf("combined = %v, intersection = %v", combined, want)
	}
	if !reflect.DeepEqual(combined, []int{2}) {
		t.Fatalf("combined = %v, want [2]", combined)
	}
}

func intersect(a, b []int) []int {
	inB := make(map[int]struct{}, len(b))
	for _, i := range b {
		inB[i] = struct{}{}
	}
	out := []int{}
	for _, i := range a {
		if _, ok := inB[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

func TestApply_MessagePredicateIsCaseSensitive(t *testing.T) {
	entries := []entry.Entry{
		{Ordinal: 1, Tag: "INFO", Message: "Boom"},
		{Ordinal: 2, Tag: "INFO", Message: "boom"},
	}
	if got := Apply(entries, Predicate{Message: "boom"}); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("got %v, want [1]", got)
	}
}

func TestApply_EmptyLevelSetPassesAllLevels(t *testing.T) {
	entries := sampleEntries()
	p := Predicate{Levels: map[string]struct{}{}}
	if got := Apply(entries, p); len(got) != len(entries) {
		t.Fatalf("empty level set filtered entries: %v", got)
	}
}

func TestSourceFiles(t *testing.T) {
	got := SourceFiles(sampleEntries())
	if want := []string{"a.cpp", "b.cpp"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SourceFiles() = %v, want %v", got, want)
	}
}

func TestTagCounts_HonorsSearchTermOnly(t *testing.T) {
	entries := sampleEntries()

	all := TagCounts(entries, "")
	if all["INFO"] != 2 || all["ERROR"] != 1 || all["WARN"] != 1 {
		t.Fatalf("TagCounts(no term) = %v", all)
	}

	// The term narrows counts; level membership never does.
	narrowed := TagCounts(entries, "boom")
	if narrowed["INFO"] != 1 || narrowed["ERROR"] != 1 || narrowed["WARN"] != 0 {
		t.Fatalf("TagCounts(boom) = %v", narrowed)
	}
}
