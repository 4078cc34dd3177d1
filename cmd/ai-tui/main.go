// Package main is the entry point for ai-tui, a supervisory terminal that
// runs a coding agent in a pseudo-terminal and gates its file changes
// behind operator approval.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/AVBharath10/ai-tui/internal/app"
	"github.com/AVBharath10/ai-tui/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, showVersion, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if showVersion {
		fmt.Printf("ai-tui %s (%s)\n", version, commit)
		return 0
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: ai-tui must run on a terminal")
		return 1
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (config.Config, bool, error) {
	var (
		configPath  string
		workdir     string
		themeName   string
		logLevel    string
		logFile     string
		debounceMS  int
		showVersion bool
	)

	flag.StringVar(&configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&workdir, "workdir", "", "Directory to supervise (default: current directory)")
	flag.StringVar(&workdir, "w", "", "Directory to supervise (shorthand)")
	flag.StringVar(&themeName, "theme", "", "Color theme (zinc, nord, cyberpunk, solarized-dark)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "Diagnostic log file (disabled when empty)")
	flag.IntVar(&debounceMS, "debounce", 0, "Debounce window in milliseconds")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ai-tui - supervised terminal for coding agents\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ai-tui [options] [command [args...]]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ai-tui                      Supervise your shell in the current directory\n")
		fmt.Fprintf(os.Stderr, "  ai-tui claude               Supervise the claude CLI\n")
		fmt.Fprintf(os.Stderr, "  ai-tui -w ~/proj aider      Supervise aider in ~/proj\n")
	}
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, false, err
	}

	// Flags override file values; positional arguments override the
	// configured command.
	if args := flag.Args(); len(args) > 0 {
		cfg.Command = args[0]
		cfg.Args = args[1:]
	}
	if workdir != "" {
		cfg.Workdir = workdir
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if debounceMS > 0 {
		cfg.DebounceWindow = time.Duration(debounceMS) * time.Millisecond
	}

	return cfg, showVersion, nil
}
