package store

import (
	"testing"

	"github.com/tlogan/sawmill/internal/entry"
)

func TestAppendAndSnapshot(t *testing.T) {
	s := &Store{}

	s.Append([]entry.Entry{{Ordinal: 1, Message: "a"}}, Counts{Lines: 2, Skipped: 1})
	s.Append([]entry.Entry{{Ordinal: 3, Message: "b"}, {Ordinal: 4, Message: "c"}}, Counts{Lines: 2, BadLines: 1})

	snap := s.Snapshot()
	if len(snap.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(snap.Entries))
	}
	want := Counts{Lines: 4, Entries: 3, Skipped: 1, BadLines: 1}
	if snap.Counts != want {
		t.Fatalf("Counts = %+v, want %+v", snap.Counts, want)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := &Store{}
	s.Append([]entry.Entry{{Ordinal: 1, Message: "original"}}, Counts{Lines: 1})

	snap := s.Snapshot()
	snap.Entries[0].Message = "mutated"

	if got := s.Snapshot().Entries[0].Message; got != "original" {
		t.Fatalf("store entry = %q after mutating a snapshot copy", got)
	}
}

func TestSnapshot_UnaffectedByLaterAppends(t *testing.T) {
	s := &Store{}
	s.Append([]entry.Entry{{Ordinal: 1}}, Counts{Lines: 1})

	snap := s.Snapshot()
	s.Append([]entry.Entry{{Ordinal: 2}}, Counts{Lines: 1})

	if len(snap.Entries) != 1 {
		t.Fatalf("earlier snapshot grew to %d entries", len(snap.Entries))
	}
	if s.Len() != 2 {
		t.Fatalf("store Len() = %d, want 2", s.Len())
	}
}

func TestReset(t *testing.T) {
	s := &Store{}
	s.Append([]entry.Entry{{Ordinal: 1}}, Counts{Lines: 3, Skipped: 2})
	s.Reset()

	snap := s.Snapshot()
	if len(snap.Entries) != 0 {
		t.Fatalf("entries remain after Reset: %d", len(snap.Entries))
	}
	if snap.Counts != (Counts{}) {
		t.Fatalf("counts remain after Reset: %+v", snap.Counts)
	}
}

func TestZeroValueIsUsable(t *testing.T) {
	var s Store
	if snap := s.Snapshot(); snap.Entries != nil || snap.Counts != (Counts{}) {
		t.Fatalf("zero store snapshot = %+v", snap)
	}
}
