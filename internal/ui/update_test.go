package ui

import (
	"path/filepath"
	"testing"

	"github.com/tlogan/sawmill/internal/config"
	"github.com/tlogan/sawmill/internal/entry"
	"github.com/tlogan/sawmill/internal/parse"
	"github.com/tlogan/sawmill/internal/store"
	"github.com/tlogan/sawmill/internal/tags"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	reg := tags.NewRegistry()
	reg.Seed(tags.Defaults())
	runner := parse.NewRunner(entry.SchemaExtended, reg, &store.Store{})
	return New(Options{
		Runner:     runner,
		Registry:   reg,
		Config:     config.Config{},
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
	})
}

func TestUpdate_DropsNotificationsFromReplacedRun(t *testing.T) {
	m := newTestModel(t)
	stale := make(chan parse.Progress)
	current := make(chan parse.Progress)
	m.progress = current
	m.parsing = true

	// A terminal notification from the replaced run must not end the
	// current one.
	upd, cmd := m.Update(progressMsg{ch: stale, p: parse.Progress{
		Terminal: true, Outcome: parse.OutcomeCancelled,
	}})
	m = upd.(Model)
	if !m.parsing {
		t.Fatal("stale terminal notification ended the active run")
	}
	if cmd != nil {
		t.Fatal("stale terminal notification re-armed a reader")
	}

	// A batch notification from the replaced run must not re-arm a second
	// reader; two consumers would break in-order delivery.
	upd, cmd = m.Update(progressMsg{ch: stale, p: parse.Progress{Batch: 1}})
	m = upd.(Model)
	if cmd != nil {
		t.Fatal("stale batch notification re-armed a reader")
	}

	// Close of the replaced channel must not detach the current one.
	upd, _ = m.Update(progressClosedMsg{ch: stale})
	m = upd.(Model)
	if m.progress == nil {
		t.Fatal("stale channel close detached the active progress channel")
	}

	// Close of the current channel does.
	upd, _ = m.Update(progressClosedMsg{ch: current})
	m = upd.(Model)
	if m.progress != nil {
		t.Fatal("current channel close was not observed")
	}

	// Anything still in flight after that is dropped, never re-armed on a
	// nil channel.
	_, cmd = m.Update(progressMsg{ch: current, p: parse.Progress{Batch: 2}})
	if cmd != nil {
		t.Fatal("notification after close re-armed a reader")
	}
}

func TestUpdate_CurrentRunNotificationRearmsOneReader(t *testing.T) {
	m := newTestModel(t)
	current := make(chan parse.Progress, 1)
	m.progress = current
	m.parsing = true

	upd, cmd := m.Update(progressMsg{ch: current, p: parse.Progress{Batch: 1, Percent: 40}})
	m = upd.(Model)
	if cmd == nil {
		t.Fatal("no reader re-armed for the active run")
	}
	if !m.parsing {
		t.Fatal("batch notification ended the run")
	}
}

func TestToggleLevel_TogglesMembership(t *testing.T) {
	m := newTestModel(t)

	m.toggleLevel(0) // first enabled tag, DEBUG in the default palette
	if _, on := m.pred.Levels["DEBUG"]; !on {
		t.Fatalf("level set after toggle = %v", m.pred.Levels)
	}
	if !m.pred.Active() {
		t.Fatal("predicate not reported active")
	}

	m.toggleLevel(0)
	if m.pred.Active() {
		t.Fatalf("predicate still active after clearing: %v", m.pred.Levels)
	}
}

func TestToggleTagCounts_FlipsAndPersists(t *testing.T) {
	m := newTestModel(t)

	m.toggleTagCounts()
	for _, tag := range m.reg.All() {
		if tag.Enabled && !tag.ShowCount {
			t.Fatalf("tag %s did not gain show-count", tag.Name)
		}
	}

	// The change round-trips through the config file.
	loaded := config.Load(m.cfgPath)
	found := false
	for _, tag := range loaded.Tags {
		if tag.Name == "INFO" {
			found = true
			if !tag.ShowCount {
				t.Fatal("show-count not persisted for INFO")
			}
		}
	}
	if !found {
		t.Fatal("INFO missing from persisted tags")
	}

	m.toggleTagCounts()
	for _, tag := range m.reg.All() {
		if tag.Enabled && tag.ShowCount {
			t.Fatalf("tag %s kept show-count after second toggle", tag.Name)
		}
	}
}
