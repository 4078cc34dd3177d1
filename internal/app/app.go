// Package app wires the supervisor together and runs the event
// coordinator: the single goroutine that merges process output, filesystem
// notifications, and operator input into one consistent view of shared
// state. All mutable state is owned by that goroutine; the pty reader and
// the filesystem watcher communicate with it only through channels.
package app

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/AVBharath10/ai-tui/internal/config"
	"github.com/AVBharath10/ai-tui/internal/review"
	"github.com/AVBharath10/ai-tui/internal/session"
	"github.com/AVBharath10/ai-tui/internal/term"
	"github.com/AVBharath10/ai-tui/internal/ui"
	"github.com/AVBharath10/ai-tui/internal/watch"
)

// Application is the central coordinator for the supervisor session.
type Application struct {
	cfg    config.Config
	logger *Logger
	root   string // canonical workdir, the watch root

	// Coordinator-owned state. Only the Run loop goroutine touches these.
	filter    *watch.Filter
	cache     *review.SnapshotCache
	resolver  *review.Resolver
	queue     *review.Queue
	changelog *review.Log
	emu       *term.Emulator
	painter   *ui.Painter

	// Producers.
	sess    *session.Session
	watcher *watch.Watcher

	screen tcell.Screen

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// New creates an application from a validated configuration. Heavy
// resources (pty, watcher, screen) are acquired in Run.
func New(cfg config.Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := NewLogger(io.Discard, ParseLogLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		fileLogger, err := OpenFileLogger(cfg.LogFile, ParseLogLevel(cfg.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger = fileLogger
	}

	root, err := filepath.Abs(cfg.Workdir)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	app := &Application{
		cfg:    cfg,
		logger: logger,
		root:   root,
		done:   make(chan struct{}),
	}

	app.filter = watch.NewFilter(root,
		watch.WithDebounceWindow(cfg.DebounceWindow),
		watch.WithIgnoreDirs(cfg.IgnoreDirs),
		watch.WithAllowDotfiles(cfg.AllowDotfiles),
	)
	app.cache = review.NewSnapshotCache()
	app.resolver = review.NewResolver(app.cache)
	app.queue = review.NewQueue(app.cache, app.filter.Arm)
	app.changelog = review.NewLog(cfg.LogCapacity)

	return app, nil
}

// SetScreen injects a display, used by tests to supply a simulation
// screen. When unset, Run creates a real terminal screen.
func (app *Application) SetScreen(screen tcell.Screen) {
	app.screen = screen
}

// Shutdown requests a graceful exit from another goroutine (signal
// handler). Safe to call multiple times.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
	})
}

// Run seeds the snapshot cache, starts the watcher and the child process,
// and drives the coordinator loop until quit or process exit. Queued
// pending changes are dropped on exit without reverting.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	// Baseline content scan. The cache and the watcher must agree on what
	// counts as noise, so both use the filter's rules.
	if err := app.cache.Seed(app.root, app.filter.IgnoredDir, app.skipScanName, app.filter.Canonicalize); err != nil {
		return fmt.Errorf("seed snapshot cache: %w", err)
	}
	app.logger.Info("snapshot cache seeded: %d files under %s", app.cache.Len(), app.root)

	if app.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		app.screen = screen
	}
	if err := app.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer app.screen.Fini()

	app.painter = ui.NewPainter(app.screen, ui.NewTheme(ui.ParseVariant(app.cfg.Theme)))

	watcher, err := watch.NewWatcher(app.root,
		watch.WithIgnoreDirs(app.cfg.IgnoreDirs),
	)
	if err != nil {
		return fmt.Errorf("watch %s: %w", app.root, err)
	}
	app.watcher = watcher
	defer app.watcher.Close()

	rows, cols := app.painter.TermSize()
	sess, err := session.Spawn(app.cfg.Command, app.cfg.Args, app.root, rows, cols)
	if err != nil {
		return fmt.Errorf("spawn %s: %w", app.cfg.Command, err)
	}
	app.sess = sess
	defer app.sess.Close()

	app.emu = term.New(rows, cols)
	app.logger.Info("supervising %s %s (pty %dx%d)", app.cfg.Command, strings.Join(app.cfg.Args, " "), rows, cols)

	err = app.loop()
	if err != nil && err != ErrQuit {
		return err
	}
	return nil
}

// skipScanName mirrors the filter's hidden-file rule for the startup scan.
func (app *Application) skipScanName(name string) bool {
	if !strings.HasPrefix(name, ".") {
		return false
	}
	for _, allowed := range app.cfg.AllowDotfiles {
		if name == allowed {
			return false
		}
	}
	return true
}
