package review

import (
	"fmt"
	"os"
)

// Queue is the approval workflow: an ordered FIFO of pending changes plus
// the accept/reject logic. Exactly one change, the head, is exposed for
// decision at a time; decisions resolve strictly in arrival order.
type Queue struct {
	items []*PendingChange
	cache *SnapshotCache

	// arm marks a path so the filter swallows the notification generated
	// by our own revert write. It must run before the write.
	arm func(string)

	// writeFile and removeFile are injectable for tests.
	writeFile  func(string, []byte, os.FileMode) error
	removeFile func(string) error
}

// NewQueue creates an approval queue over cache. arm is invoked with the
// canonical path immediately before every revert write.
func NewQueue(cache *SnapshotCache, arm func(string)) *Queue {
	return &Queue{
		cache:      cache,
		arm:        arm,
		writeFile:  os.WriteFile,
		removeFile: os.Remove,
	}
}

// State returns Idle when nothing is queued, Reviewing otherwise.
func (q *Queue) State() State {
	if len(q.items) == 0 {
		return Idle
	}
	return Reviewing
}

// Len returns the number of queued changes, including the head.
func (q *Queue) Len() int {
	return len(q.items)
}

// Head returns the change currently exposed for decision, or nil.
func (q *Queue) Head() *PendingChange {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Enqueue appends a pending change to the tail.
func (q *Queue) Enqueue(change *PendingChange) {
	q.items = append(q.items, change)
}

// Accept approves the head change. The file is already in its new state on
// disk, so accept only promotes the observed content into the snapshot
// cache; a deletion removes the path from the cache.
func (q *Queue) Accept() error {
	head, err := q.pop()
	if err != nil {
		return err
	}
	if head.New == "" {
		q.cache.Delete(head.Path)
	} else {
		q.cache.Set(head.Path, head.New)
	}
	return nil
}

// Reject discards the head change and reverts the file on disk to its
// last-approved content. The ignore entry is armed before the write so the
// revert's own notification is swallowed. The write is best effort: a
// failure leaves disk and cache out of sync for this one path until the
// next real change, and is reported for logging rather than retried.
func (q *Queue) Reject() error {
	head, err := q.pop()
	if err != nil {
		return err
	}

	q.arm(head.Path)

	if head.Old == "" {
		if err := q.removeFile(head.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("revert delete %s: %w", head.Name, err)
		}
		return nil
	}
	if err := q.writeFile(head.Path, []byte(head.Old), 0o644); err != nil {
		return fmt.Errorf("revert write %s: %w", head.Name, err)
	}
	return nil
}

func (q *Queue) pop() (*PendingChange, error) {
	if len(q.items) == 0 {
		return nil, ErrEmptyQueue
	}
	head := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return head, nil
}
