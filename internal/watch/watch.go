// Package watch provides recursive file system watching for the supervised
// working directory. It converts raw OS notifications into classified change
// events and filters them through noise suppression, self-write ignoring,
// and per-path debouncing before they reach the review pipeline.
package watch

import (
	"errors"
	"time"
)

// Common errors returned by watch operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
	ErrNotDirectory  = errors.New("path is not a directory")
)

// Op represents the kind of change observed on a path.
type Op uint8

const (
	// OpCreate indicates a file was created.
	OpCreate Op = iota + 1
	// OpModify indicates a file's content changed. Renames are folded into
	// OpModify; the old-path/new-path relationship is not tracked.
	OpModify
	// OpRemove indicates a file was removed.
	OpRemove
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpRemove:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns the single-letter marker used in the change log sidebar.
func (op Op) Symbol() string {
	switch op {
	case OpCreate:
		return "A"
	case OpModify:
		return "M"
	case OpRemove:
		return "D"
	default:
		return "?"
	}
}

// Event is a classified file system change notification.
type Event struct {
	// Path is the path reported by the OS, relative to nothing in
	// particular; the Filter canonicalizes it.
	Path string

	// Op is the kind of change.
	Op Op

	// Timestamp is when the event was observed.
	Timestamp time.Time
}

// Config holds watcher and filter configuration.
type Config struct {
	// BufferSize is the capacity of the event and error channels.
	// Default: 128.
	BufferSize int

	// DebounceWindow is the minimum interval between propagated events for
	// the same (path, op) pair. Default: 500ms.
	DebounceWindow time.Duration

	// IgnoreDirs are directory names whose subtrees are never watched or
	// reported (version control metadata, build output, dependencies).
	IgnoreDirs []string

	// AllowDotfiles are base names starting with "." that are tracked
	// despite the default hidden-file suppression.
	AllowDotfiles []string
}

// DefaultIgnoreDirs are the directory names suppressed out of the box.
var DefaultIgnoreDirs = []string{
	".git", ".hg", ".svn",
	"node_modules", "vendor", "target", "dist", "build", "out",
	"__pycache__", ".idea", ".vscode", ".cache",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize:     128,
		DebounceWindow: 500 * time.Millisecond,
		IgnoreDirs:     DefaultIgnoreDirs,
	}
}

// Option configures a watcher or filter.
type Option func(*Config)

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// WithDebounceWindow sets the debounce window.
func WithDebounceWindow(d time.Duration) Option {
	return func(c *Config) {
		c.DebounceWindow = d
	}
}

// WithIgnoreDirs replaces the ignored directory names.
func WithIgnoreDirs(dirs []string) Option {
	return func(c *Config) {
		c.IgnoreDirs = dirs
	}
}

// WithAllowDotfiles allow-lists hidden file names to track.
func WithAllowDotfiles(names []string) Option {
	return func(c *Config) {
		c.AllowDotfiles = names
	}
}
