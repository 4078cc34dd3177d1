package review

import (
	"os"

	"github.com/AVBharath10/ai-tui/internal/watch"
)

// Resolver turns a filtered change into a PendingChange by comparing the
// on-disk content against the snapshot cache. It never mutates the cache;
// only an accept does that.
type Resolver struct {
	cache *SnapshotCache

	// readFile is injectable for tests; defaults to os.ReadFile.
	readFile func(string) ([]byte, error)
}

// NewResolver creates a resolver over cache.
func NewResolver(cache *SnapshotCache) *Resolver {
	return &Resolver{
		cache:    cache,
		readFile: os.ReadFile,
	}
}

// Resolve returns the PendingChange for a filtered change and true, or false
// when the change is a no-op: identical content, a deletion of an untracked
// path, or a transient read failure (a write in progress reads as an error
// or as empty and is retried by the next real notification).
func (r *Resolver) Resolve(change watch.Change) (*PendingChange, bool) {
	cached, tracked := r.cache.Get(change.Path)

	if change.Op == watch.OpRemove {
		if !tracked || cached == "" {
			return nil, false
		}
		return &PendingChange{
			Path: change.Path,
			Name: change.Name,
			Op:   change.Op,
			Old:  cached,
			New:  "",
			Diff: renderDiff(change.Name, cached, ""),
		}, true
	}

	data, err := r.readFile(change.Path)
	if err != nil {
		return nil, false
	}
	content := string(data)
	if content == cached {
		return nil, false
	}

	return &PendingChange{
		Path: change.Path,
		Name: change.Name,
		Op:   change.Op,
		Old:  cached,
		New:  content,
		Diff: renderDiff(change.Name, cached, content),
	}, true
}
