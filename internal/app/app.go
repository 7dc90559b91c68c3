// Package app wires the sawmill components together and boots the TUI.
package app

import (
	"context"

	"github.com/tlogan/sawmill/internal/config"
	"github.com/tlogan/sawmill/internal/entry"
	"github.com/tlogan/sawmill/internal/parse"
	"github.com/tlogan/sawmill/internal/store"
	"github.com/tlogan/sawmill/internal/tags"
	"github.com/tlogan/sawmill/internal/ui"
)

// Options configure the application.
type Options struct {
	Path       string // log file to open; empty falls back to the last opened file
	ConfigPath string // empty uses the default ~/.config/sawmill/config.toml
	Legacy     bool   // parse the legacy four-field schema
}

// Run boots sawmill until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg := config.Load(opts.ConfigPath)

	registry := tags.NewRegistry()
	cfg.SeedRegistry(registry)

	schema := entry.SchemaExtended
	if opts.Legacy {
		schema = entry.SchemaLegacy
	}

	st := &store.Store{}
	runner := parse.NewRunner(schema, registry, st)
	defer runner.CancelAndWait()

	path := opts.Path
	if path == "" {
		path = cfg.LastFile
	}

	return ui.Run(ui.Options{
		Context:    ctx,
		Runner:     runner,
		Registry:   registry,
		Config:     cfg,
		ConfigPath: opts.ConfigPath,
		Path:       path,
	})
}
