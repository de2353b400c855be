package history

import (
	"log"
	"sync"
)

// Entry is one interaction-log record: either an inbound user message or a
// bot reply from the free-text responder. Exactly one side is populated.
type Entry struct {
	User    string `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
	Bot     string `json:"bot,omitempty"`
}

// Mirror receives a copy of every append and every clear, for durable
// bookkeeping. Mirror failures must not affect the in-memory log.
type Mirror interface {
	AppendEntry(Entry) error
	Reset() error
}

// Log is the append-only, process-lifetime interaction log. A single lock
// orders appends, snapshots and clears; a clear happens fully before or fully
// after any given append.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	mirror  Mirror
}

func NewLog() *Log {
	return &Log{}
}

// NewLogWithMirror returns a log that also forwards appends and clears to m.
func NewLogWithMirror(m Mirror) *Log {
	return &Log{mirror: m}
}

// AppendUser records an inbound message. Called for every message, before
// intent dispatch.
func (l *Log) AppendUser(userID, message string) {
	l.append(Entry{User: userID, Message: message})
}

// AppendBot records a reply produced by the free-text responder.
func (l *Log) AppendBot(text string) {
	l.append(Entry{Bot: text})
}

func (l *Log) append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if l.mirror != nil {
		if err := l.mirror.AppendEntry(e); err != nil {
			log.Printf("history mirror append failed: %v", err)
		}
	}
}

// Snapshot returns a copy of the full ordered log.
func (l *Log) Snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear empties the log.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	if l.mirror != nil {
		if err := l.mirror.Reset(); err != nil {
			log.Printf("history mirror reset failed: %v", err)
		}
	}
}
