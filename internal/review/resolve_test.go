package review

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AVBharath10/ai-tui/internal/watch"
)

func TestResolveModify(t *testing.T) {
	cache := NewSnapshotCache()
	cache.Set("/w/main.txt", "hello")

	r := NewResolver(cache)
	r.readFile = func(string) ([]byte, error) { return []byte("hello world"), nil }

	change, ok := r.Resolve(watch.Change{Path: "/w/main.txt", Name: "main.txt", Op: watch.OpModify})
	if !ok {
		t.Fatal("modify with changed content resolved to no-op")
	}
	if change.Old != "hello" || change.New != "hello world" {
		t.Errorf("resolved old/new = %q/%q", change.Old, change.New)
	}
	if !strings.Contains(change.Diff, "+hello world") {
		t.Errorf("diff missing insertion line:\n%s", change.Diff)
	}
	// Resolution never mutates the cache.
	if got, _ := cache.Get("/w/main.txt"); got != "hello" {
		t.Errorf("cache mutated during resolve: %q", got)
	}
}

func TestResolveIdenticalContentIsNoop(t *testing.T) {
	cache := NewSnapshotCache()
	cache.Set("/w/same.txt", "bytes")

	r := NewResolver(cache)
	r.readFile = func(string) ([]byte, error) { return []byte("bytes"), nil }

	if _, ok := r.Resolve(watch.Change{Path: "/w/same.txt", Op: watch.OpModify}); ok {
		t.Error("touch with identical bytes produced a pending change")
	}
}

func TestResolveCreateUntracked(t *testing.T) {
	r := NewResolver(NewSnapshotCache())
	r.readFile = func(string) ([]byte, error) { return []byte("fresh"), nil }

	change, ok := r.Resolve(watch.Change{Path: "/w/new.txt", Name: "new.txt", Op: watch.OpCreate})
	if !ok {
		t.Fatal("create of untracked file resolved to no-op")
	}
	if change.Old != "" || change.New != "fresh" {
		t.Errorf("resolved old/new = %q/%q, want \"\"/\"fresh\"", change.Old, change.New)
	}
}

func TestResolveReadErrorIsNoop(t *testing.T) {
	r := NewResolver(NewSnapshotCache())
	r.readFile = func(string) ([]byte, error) { return nil, errors.New("transient") }

	if _, ok := r.Resolve(watch.Change{Path: "/w/busy.txt", Op: watch.OpModify}); ok {
		t.Error("transient read failure produced a pending change")
	}
}

func TestResolveRemoveTracked(t *testing.T) {
	cache := NewSnapshotCache()
	cache.Set("/w/gone.txt", "hello world")

	r := NewResolver(cache)
	change, ok := r.Resolve(watch.Change{Path: "/w/gone.txt", Name: "gone.txt", Op: watch.OpRemove})
	if !ok {
		t.Fatal("remove of tracked file resolved to no-op")
	}
	if change.Old != "hello world" || change.New != "" {
		t.Errorf("resolved old/new = %q/%q", change.Old, change.New)
	}
	if !strings.Contains(change.Diff, "File deleted: gone.txt") {
		t.Errorf("deletion diff missing announcement:\n%s", change.Diff)
	}
}

func TestResolveRemoveUntrackedIsNoop(t *testing.T) {
	r := NewResolver(NewSnapshotCache())
	if _, ok := r.Resolve(watch.Change{Path: "/w/phantom.txt", Op: watch.OpRemove}); ok {
		t.Error("remove of untracked path produced a pending change")
	}
}

func TestSnapshotSeed(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel, content string) {
		t.Helper()
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("main.txt", "hello")
	mustWrite(filepath.Join("src", "lib.go"), "package lib")
	mustWrite(filepath.Join(".git", "HEAD"), "ref: main")
	mustWrite(".env", "SECRET=1")

	cache := NewSnapshotCache()
	ignoreDir := func(name string) bool { return name == ".git" }
	skipName := func(name string) bool { return strings.HasPrefix(name, ".") }
	identity := func(p string) string { return p }

	if err := cache.Seed(root, ignoreDir, skipName, identity); err != nil {
		t.Fatal(err)
	}

	if cache.Len() != 2 {
		t.Errorf("cache size = %d, want 2", cache.Len())
	}
	if got, ok := cache.Get(filepath.Join(root, "main.txt")); !ok || got != "hello" {
		t.Errorf("main.txt = %q, %v", got, ok)
	}
	if _, ok := cache.Get(filepath.Join(root, ".git", "HEAD")); ok {
		t.Error("seeded content from ignored directory")
	}
	if _, ok := cache.Get(filepath.Join(root, ".env")); ok {
		t.Error("seeded hidden file")
	}
}

func TestLogEviction(t *testing.T) {
	l := NewLog(3)
	for _, name := range []string{"a", "b", "c", "d"} {
		l.Add(FileChange{Name: name, Op: watch.OpModify})
	}
	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("log length = %d, want 3", len(entries))
	}
	// Newest first; the oldest entry "a" was evicted.
	for i, want := range []string{"d", "c", "b"} {
		if entries[i].Name != want {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Name, want)
		}
	}
}

func TestLogClear(t *testing.T) {
	l := NewLog(0)
	l.Add(FileChange{Name: "x", Op: watch.OpCreate})
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("length after Clear = %d, want 0", l.Len())
	}
}

func TestRenderDiffShape(t *testing.T) {
	diff := renderDiff("main.txt", "hello\n", "hello world\n")
	for _, want := range []string{"a/main.txt", "b/main.txt", "-hello", "+hello world"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}
}
