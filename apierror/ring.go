package apierror

import "sync"

// DefaultLogCapacity bounds the in-memory error ring when no capacity is given.
const DefaultLogCapacity = 100

// Log is a fixed-capacity in-memory ring of classified records, newest first.
// When the ring is full the oldest record is evicted. Log is safe for
// concurrent use.
type Log struct {
	mu      sync.Mutex
	max     int
	entries []*Record
}

// NewLog returns a ring that retains at most capacity records. A capacity at
// or below zero falls back to [DefaultLogCapacity].
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{max: capacity}
}

// Append records r at the head of the ring, evicting the oldest entry when
// the ring is at capacity. Nil records are ignored.
func (l *Log) Append(r *Record) {
	if l == nil || r == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]*Record{r}, l.entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
}

// Records returns a copy of the retained records, newest first.
func (l *Log) Records() []*Record {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*Record, len(l.entries))
	copy(out, l.entries)
	return out
}

// BySeverity returns the retained records of the given severity, newest first.
func (l *Log) BySeverity(s Severity) []*Record {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []*Record
	for _, r := range l.entries {
		if r.Severity == s {
			out = append(out, r)
		}
	}
	return out
}

// Len reports how many records the ring currently retains.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear drops every retained record.
func (l *Log) Clear() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
