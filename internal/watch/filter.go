package watch

import (
	"path/filepath"
	"strings"
	"time"
)

// Change is a filtered, canonicalized notification ready for content
// resolution.
type Change struct {
	// Path is the canonical (symlink-resolved, absolute) path.
	Path string

	// Name is the path relative to the watch root, used for display and
	// debounce keying.
	Name string

	// Op is the kind of change.
	Op Op
}

// debounceKey identifies a (display name, op) pair in the debounce table.
type debounceKey struct {
	name string
	op   Op
}

// Filter decides which raw notifications propagate into the review
// pipeline. It owns the one-shot ignore set for self-inflicted revert
// writes, the noise suppression rules, and the debounce table.
//
// Filter is not safe for concurrent use; it is owned by the coordinator
// goroutine and must only be touched there.
type Filter struct {
	root       string
	window     time.Duration
	ignoreDirs map[string]struct{}
	allowDot   map[string]struct{}

	// lastSeen records the most recent propagated instant per (name, op).
	lastSeen map[debounceKey]time.Time

	// ignoreOnce holds canonical paths whose next notification is
	// swallowed because it results from our own revert write. Entries are
	// consumed on first hit. An entry whose notification never arrives
	// (the OS coalesced or dropped it) is not expired by time; it persists
	// until consumed or re-armed, which at worst swallows one legitimate
	// future notification for that path.
	ignoreOnce map[string]struct{}

	// now is injectable for tests.
	now func() time.Time
}

// NewFilter creates a filter for notifications under root.
func NewFilter(root string, opts ...Option) *Filter {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	f := &Filter{
		root:       root,
		window:     config.DebounceWindow,
		ignoreDirs: make(map[string]struct{}, len(config.IgnoreDirs)),
		allowDot:   make(map[string]struct{}, len(config.AllowDotfiles)),
		lastSeen:   make(map[debounceKey]time.Time),
		ignoreOnce: make(map[string]struct{}),
		now:        time.Now,
	}
	for _, name := range config.IgnoreDirs {
		f.ignoreDirs[name] = struct{}{}
	}
	for _, name := range config.AllowDotfiles {
		f.allowDot[name] = struct{}{}
	}
	return f
}

// Apply runs an event through canonicalization, self-write ignoring, noise
// suppression, and debouncing. It returns the resulting Change and true when
// the event should propagate.
func (f *Filter) Apply(event Event) (Change, bool) {
	canonical := f.Canonicalize(event.Path)

	if _, armed := f.ignoreOnce[canonical]; armed {
		delete(f.ignoreOnce, canonical)
		return Change{}, false
	}

	name := f.displayName(canonical)
	if f.noisy(name) {
		return Change{}, false
	}

	key := debounceKey{name: name, op: event.Op}
	now := f.now()
	if last, seen := f.lastSeen[key]; seen && now.Sub(last) < f.window {
		return Change{}, false
	}
	f.lastSeen[key] = now

	return Change{Path: canonical, Name: name, Op: event.Op}, true
}

// Arm marks path so its next notification is swallowed. Called just before
// a revert write; the arm-before-write ordering is what breaks the
// self-notification feedback loop.
func (f *Filter) Arm(path string) {
	f.ignoreOnce[f.Canonicalize(path)] = struct{}{}
}

// Armed reports whether path currently has an unconsumed ignore entry.
func (f *Filter) Armed(path string) bool {
	_, ok := f.ignoreOnce[f.Canonicalize(path)]
	return ok
}

// Canonicalize resolves symlinks and relative segments. When resolution
// fails because the path no longer exists, it falls back to lexical
// normalization of the raw string.
func (f *Filter) Canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}

// displayName returns path relative to the watch root, or the base name
// when the path lies outside it.
func (f *Filter) displayName(path string) string {
	if rel, err := filepath.Rel(f.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return filepath.Base(path)
}

// noisy reports whether the relative name matches the suppression rules:
// any ignored directory segment, or a hidden base name that is not
// allow-listed.
func (f *Filter) noisy(name string) bool {
	segments := strings.Split(filepath.ToSlash(name), "/")
	for _, seg := range segments[:len(segments)-1] {
		if _, ignored := f.ignoreDirs[seg]; ignored {
			return true
		}
	}
	base := segments[len(segments)-1]
	if _, ignored := f.ignoreDirs[base]; ignored {
		return true
	}
	if strings.HasPrefix(base, ".") {
		if _, allowed := f.allowDot[base]; !allowed {
			return true
		}
	}
	return false
}

// IgnoredDir reports whether a directory name is in the noise set. The
// startup snapshot scan uses the same rule so the cache and the watcher
// agree on what is tracked.
func (f *Filter) IgnoredDir(name string) bool {
	_, ok := f.ignoreDirs[name]
	return ok
}
