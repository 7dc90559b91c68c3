package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tlogan/sawmill/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	legacy := flag.Bool("legacy", false, "parse the legacy 4-field log format")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Legacy:     *legacy,
	}
	if flag.NArg() > 0 {
		opts.Path = flag.Arg(0)
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "sawmill: %v\n", err)
		return 1
	}
	return 0
}
