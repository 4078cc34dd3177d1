package review

// DefaultLogCapacity bounds the change log shown in the sidebar.
const DefaultLogCapacity = 50

// Log is a bounded, newest-first list of FileChange entries. Inserting
// beyond capacity evicts the oldest entry.
type Log struct {
	entries  []FileChange
	capacity int
}

// NewLog creates a log with the given capacity (DefaultLogCapacity when
// capacity is not positive).
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{
		entries:  make([]FileChange, 0, capacity),
		capacity: capacity,
	}
}

// Add inserts an entry at the front, trimming to capacity.
func (l *Log) Add(entry FileChange) {
	l.entries = append([]FileChange{entry}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

// Entries returns the entries newest first. The returned slice is the log's
// backing storage; callers must not mutate it.
func (l *Log) Entries() []FileChange {
	return l.entries
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Clear drops all entries.
func (l *Log) Clear() {
	l.entries = l.entries[:0]
}
