package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeClock provides a controllable time source for debounce tests.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestFilter(t *testing.T, root string, opts ...Option) (*Filter, *fakeClock) {
	t.Helper()
	f := NewFilter(root, opts...)
	clock := &fakeClock{current: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	f.now = clock.now
	return f, clock
}

func TestFilterNoise(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"plain file", "main.go", true},
		{"nested file", filepath.Join("src", "lib.go"), true},
		{"git metadata", filepath.Join(".git", "index"), false},
		{"node_modules", filepath.Join("node_modules", "pkg", "index.js"), false},
		{"build output", filepath.Join("target", "debug", "bin"), false},
		{"dotfile", ".env", false},
		{"nested dotfile", filepath.Join("src", ".DS_Store"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFilter(t, root)
			ev := Event{Path: filepath.Join(root, tt.path), Op: OpModify, Timestamp: time.Now()}
			_, ok := f.Apply(ev)
			if ok != tt.want {
				t.Errorf("Apply(%q) propagate = %v, want %v", tt.path, ok, tt.want)
			}
		})
	}
}

func TestFilterAllowedDotfile(t *testing.T) {
	root := t.TempDir()
	f, _ := newTestFilter(t, root, WithAllowDotfiles([]string{".envrc"}))

	change, ok := f.Apply(Event{Path: filepath.Join(root, ".envrc"), Op: OpModify})
	if !ok {
		t.Fatal("allow-listed dotfile was dropped")
	}
	if change.Name != ".envrc" {
		t.Errorf("display name = %q, want %q", change.Name, ".envrc")
	}

	if _, ok := f.Apply(Event{Path: filepath.Join(root, ".cache_file"), Op: OpModify}); ok {
		t.Error("non-allow-listed dotfile propagated")
	}
}

func TestFilterDebounce(t *testing.T) {
	root := t.TempDir()
	f, clock := newTestFilter(t, root)
	path := filepath.Join(root, "main.txt")

	if _, ok := f.Apply(Event{Path: path, Op: OpModify}); !ok {
		t.Fatal("first event was dropped")
	}

	// 100ms later: inside the 500ms window, collapsed.
	clock.advance(100 * time.Millisecond)
	if _, ok := f.Apply(Event{Path: path, Op: OpModify}); ok {
		t.Error("event 100ms after the first was not debounced")
	}

	// 600ms after the first: outside the window, propagates.
	clock.advance(500 * time.Millisecond)
	if _, ok := f.Apply(Event{Path: path, Op: OpModify}); !ok {
		t.Error("event 600ms after the first was debounced")
	}
}

func TestFilterDebounceKeyedByOp(t *testing.T) {
	root := t.TempDir()
	f, clock := newTestFilter(t, root)
	path := filepath.Join(root, "main.txt")

	if _, ok := f.Apply(Event{Path: path, Op: OpCreate}); !ok {
		t.Fatal("create was dropped")
	}
	clock.advance(10 * time.Millisecond)

	// Same path, different op: not collapsed.
	if _, ok := f.Apply(Event{Path: path, Op: OpModify}); !ok {
		t.Error("modify was debounced against the earlier create")
	}
}

func TestFilterIgnoreConsumedOnce(t *testing.T) {
	root := t.TempDir()
	f, clock := newTestFilter(t, root)
	path := filepath.Join(root, "reverted.txt")

	f.Arm(path)
	if !f.Armed(path) {
		t.Fatal("Arm did not register the path")
	}

	// The self-write notification is swallowed and consumes the entry.
	if _, ok := f.Apply(Event{Path: path, Op: OpModify}); ok {
		t.Error("armed path's notification was not swallowed")
	}
	if f.Armed(path) {
		t.Error("ignore entry not consumed")
	}

	// The next legitimate notification propagates.
	clock.advance(time.Second)
	if _, ok := f.Apply(Event{Path: path, Op: OpModify}); !ok {
		t.Error("legitimate notification after consume was swallowed")
	}
}

func TestFilterCanonicalizeSymlink(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	f, _ := newTestFilter(t, root)
	resolvedRoot := f.Canonicalize(root)
	want := filepath.Join(resolvedRoot, "real.txt")
	if got := f.Canonicalize(link); got != want {
		t.Errorf("Canonicalize(link) = %q, want %q", got, want)
	}
}

func TestFilterCanonicalizeMissingPath(t *testing.T) {
	root := t.TempDir()
	f, _ := newTestFilter(t, root)

	raw := filepath.Join(root, "sub", "..", "gone.txt")
	got := f.Canonicalize(raw)
	want := filepath.Join(f.Canonicalize(root), "gone.txt")
	if got != want {
		t.Errorf("Canonicalize(%q) = %q, want %q", raw, got, want)
	}
}

func TestFilterDisplayNameOutsideRoot(t *testing.T) {
	root := t.TempDir()
	f, _ := newTestFilter(t, root)

	change, ok := f.Apply(Event{Path: "/tmp/elsewhere/file.txt", Op: OpModify})
	if !ok {
		t.Fatal("event outside root was dropped")
	}
	if change.Name != "file.txt" {
		t.Errorf("display name = %q, want base name", change.Name)
	}
}
