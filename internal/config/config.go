// Package config holds the runtime configuration for the supervisor: the
// agent command, watch tuning, and presentation settings. Configuration is
// assembled from defaults, an optional JSON config file, and command-line
// flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Common errors returned by config operations.
var (
	ErrInvalidGeometry = errors.New("rows and cols must be positive")
	ErrInvalidDebounce = errors.New("debounce window must be positive")
)

// Config is the full application configuration.
type Config struct {
	// Command is the agent binary to supervise; Args are its arguments.
	Command string
	Args    []string

	// Workdir is the directory to run in and watch. Defaults to the
	// current directory.
	Workdir string

	// Rows and Cols are the initial pty geometry, used until the first
	// real terminal size is known.
	Rows int
	Cols int

	// DebounceWindow is the minimum interval between propagated
	// notifications for the same (path, kind) pair.
	DebounceWindow time.Duration

	// LogCapacity bounds the sidebar change log.
	LogCapacity int

	// IgnoreDirs are directory names excluded from watching and scanning.
	IgnoreDirs []string

	// AllowDotfiles are hidden file names tracked despite the default
	// dotfile suppression.
	AllowDotfiles []string

	// Theme is the initial color theme name.
	Theme string

	// LogLevel and LogFile configure diagnostic logging. An empty LogFile
	// disables it; the TUI owns the terminal, so logs never go to stderr
	// while running.
	LogLevel string
	LogFile  string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Command:        defaultShell(),
		Workdir:        ".",
		Rows:           24,
		Cols:           80,
		DebounceWindow: 500 * time.Millisecond,
		LogCapacity:    50,
		IgnoreDirs: []string{
			".git", ".hg", ".svn",
			"node_modules", "vendor", "target", "dist", "build", "out",
			"__pycache__", ".idea", ".vscode", ".cache",
		},
		Theme:    "zinc",
		LogLevel: "info",
	}
}

// defaultShell prefers $SHELL and falls back to sh.
func defaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "sh"
}

// Validate checks the configuration for nonsense values.
func (c *Config) Validate() error {
	if c.Command == "" {
		return errors.New("command must not be empty")
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		return ErrInvalidGeometry
	}
	if c.DebounceWindow <= 0 {
		return ErrInvalidDebounce
	}
	if c.Workdir != "" {
		info, err := os.Stat(c.Workdir)
		if err != nil {
			return fmt.Errorf("workdir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("workdir %q is not a directory", c.Workdir)
		}
	}
	return nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "ai-tui", "config.json")
}

// Load reads a JSON config file and overlays it on the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if !gjson.ValidBytes(data) {
		return cfg, fmt.Errorf("config %s: invalid JSON", path)
	}

	if v := gjson.GetBytes(data, "command"); v.Exists() {
		cfg.Command = v.String()
	}
	if v := gjson.GetBytes(data, "args"); v.Exists() {
		cfg.Args = nil
		for _, a := range v.Array() {
			cfg.Args = append(cfg.Args, a.String())
		}
	}
	if v := gjson.GetBytes(data, "workdir"); v.Exists() {
		cfg.Workdir = v.String()
	}
	if v := gjson.GetBytes(data, "rows"); v.Exists() {
		cfg.Rows = int(v.Int())
	}
	if v := gjson.GetBytes(data, "cols"); v.Exists() {
		cfg.Cols = int(v.Int())
	}
	if v := gjson.GetBytes(data, "debounce_ms"); v.Exists() {
		cfg.DebounceWindow = time.Duration(v.Int()) * time.Millisecond
	}
	if v := gjson.GetBytes(data, "log_capacity"); v.Exists() {
		cfg.LogCapacity = int(v.Int())
	}
	if v := gjson.GetBytes(data, "ignore_dirs"); v.Exists() {
		cfg.IgnoreDirs = nil
		for _, d := range v.Array() {
			cfg.IgnoreDirs = append(cfg.IgnoreDirs, d.String())
		}
	}
	if v := gjson.GetBytes(data, "allow_dotfiles"); v.Exists() {
		cfg.AllowDotfiles = nil
		for _, d := range v.Array() {
			cfg.AllowDotfiles = append(cfg.AllowDotfiles, d.String())
		}
	}
	if v := gjson.GetBytes(data, "theme"); v.Exists() {
		cfg.Theme = v.String()
	}
	if v := gjson.GetBytes(data, "log_level"); v.Exists() {
		cfg.LogLevel = v.String()
	}
	if v := gjson.GetBytes(data, "log_file"); v.Exists() {
		cfg.LogFile = v.String()
	}

	return cfg, nil
}

// Save writes the configuration as JSON, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	out := "{}"
	var err error
	set := func(key string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, key, value)
	}

	set("command", c.Command)
	set("args", c.Args)
	set("workdir", c.Workdir)
	set("rows", c.Rows)
	set("cols", c.Cols)
	set("debounce_ms", c.DebounceWindow.Milliseconds())
	set("log_capacity", c.LogCapacity)
	set("ignore_dirs", c.IgnoreDirs)
	set("allow_dotfiles", c.AllowDotfiles)
	set("theme", c.Theme)
	set("log_level", c.LogLevel)
	set("log_file", c.LogFile)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(out), 0o644)
}
