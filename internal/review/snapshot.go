package review

import (
	"os"
	"path/filepath"
)

// SnapshotCache maps canonical paths to their last-approved content. It is
// the baseline every diff is computed against: it reflects the on-disk state
// as of the startup scan, updated only when the operator accepts a change.
// Pending content never enters the cache.
type SnapshotCache struct {
	contents map[string]string
}

// NewSnapshotCache creates an empty cache.
func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{contents: make(map[string]string)}
}

// Seed populates the cache from a recursive scan of root, skipping
// directories for which ignoreDir returns true and hidden entries for which
// skipName returns true. Unreadable files are skipped silently. Keys are
// canonicalized with canonical.
func (c *SnapshotCache) Seed(root string, ignoreDir func(string) bool, skipName func(string) bool, canonical func(string) string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entry, keep walking
		}
		if d.IsDir() {
			if p != root && ignoreDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if skipName(d.Name()) {
			return nil
		}
		data, readErr := os.ReadFile(p)
		if readErr != nil {
			return nil
		}
		c.contents[canonical(p)] = string(data)
		return nil
	})
}

// Get returns the cached content for path and whether it is present.
func (c *SnapshotCache) Get(path string) (string, bool) {
	content, ok := c.contents[path]
	return content, ok
}

// Set records content as the approved state for path.
func (c *SnapshotCache) Set(path, content string) {
	c.contents[path] = content
}

// Delete removes path from the cache (deletion approved).
func (c *SnapshotCache) Delete(path string) {
	delete(c.contents, path)
}

// Len returns the number of tracked files.
func (c *SnapshotCache) Len() int {
	return len(c.contents)
}
