// Package review implements the human-in-the-loop approval pipeline: the
// snapshot cache of last-approved file contents, diff packaging, the FIFO
// approval queue with accept/reject semantics, and the bounded change log
// shown in the sidebar.
//
// Nothing in this package is safe for concurrent use. All state is owned by
// the coordinator goroutine; producers never touch it directly.
package review

import (
	"errors"
	"time"

	"github.com/AVBharath10/ai-tui/internal/watch"
)

// Common errors returned by review operations.
var (
	// ErrEmptyQueue indicates a decision was requested with nothing queued.
	ErrEmptyQueue = errors.New("approval queue is empty")
)

// State is the approval workflow state.
type State int

const (
	// Idle means the queue is empty and keystrokes are forwarded to the
	// child process.
	Idle State = iota
	// Reviewing means a decision is outstanding and keyboard input is
	// captured by the workflow.
	Reviewing
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Reviewing:
		return "REVIEWING"
	default:
		return "UNKNOWN"
	}
}

// PendingChange is a single approval unit: one observed content change
// awaiting an operator decision. An empty New means the file was deleted.
type PendingChange struct {
	// Path is the canonical path, used as the snapshot cache key and the
	// revert target.
	Path string

	// Name is the display name relative to the watch root.
	Name string

	// Op is the kind of change.
	Op watch.Op

	// Old is the last-approved content ("" for a brand-new file).
	Old string

	// New is the observed on-disk content ("" for a deletion).
	New string

	// Diff is the rendered unified diff.
	Diff string
}

// FileChange is a display-only log entry recording one queued notification.
// It is never mutated after creation.
type FileChange struct {
	Name      string
	Op        watch.Op
	Timestamp time.Time
	Diff      string
}
