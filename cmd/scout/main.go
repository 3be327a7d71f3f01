// Package main is the entry point for the scout finder.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scout/internal/app"
	"github.com/dshills/scout/internal/picker"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	opts.Screen = screen

	application, err := app.New(opts)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := application.Run(ctx)
	screen.Fini()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", runErr)
	}

	entry, ok := application.Result()
	if !ok {
		return 1
	}
	if entry.Line > 0 {
		fmt.Printf("%s:%d\n", entry.Path, entry.Line)
	} else {
		fmt.Println(entry.Path)
	}
	return 0
}

func parseFlags() (app.Options, error) {
	var opts app.Options
	var mode string
	var showVersion bool
	var showHelp bool

	flag.StringVar(&mode, "mode", "files", "Picker to open (files, grep, dirs)")
	flag.StringVar(&mode, "m", "files", "Picker to open (shorthand)")
	flag.StringVar(&opts.Query, "query", "", "Initial query text")
	flag.StringVar(&opts.Query, "q", "", "Initial query text (shorthand)")
	flag.StringVar(&opts.BufferPath, "buffer", "", "File anchoring scope resolution")
	flag.StringVar(&opts.BufferPath, "b", "", "File anchoring scope resolution (shorthand)")
	flag.StringVar(&opts.WorkDir, "dir", "", "Working directory override")
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.StatePath, "state", "", "Path to state file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Scout - git-aware terminal fuzzy finder\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scout [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  scout                       Find files under the repository root\n")
		fmt.Fprintf(os.Stderr, "  scout -m grep -q TODO       Search file contents\n")
		fmt.Fprintf(os.Stderr, "  scout -m dirs               Pick a directory, then a file in it\n")
		fmt.Fprintf(os.Stderr, "  scout -b ./pkg/io.go        Anchor the scope to a buffer\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Scout %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch mode {
	case "files":
		opts.Mode = picker.KindFiles
	case "grep":
		opts.Mode = picker.KindGrep
	case "dirs":
		opts.Mode = picker.KindDirs
	default:
		return opts, fmt.Errorf("invalid mode %q (must be files, grep, or dirs)", mode)
	}

	return opts, nil
}
