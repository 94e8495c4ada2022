// Package conversation provides the ordered record of interview exchanges.
package conversation

import (
	"errors"
	"time"

	"github.com/Graceson27/interview-bot/internal/types"
)

// ErrNoPendingQuestion is returned when an answer arrives with no open question.
var ErrNoPendingQuestion = errors.New("no pending question to answer")

// ErrAlreadyAnswered is returned when the latest question already has an answer.
var ErrAlreadyAnswered = errors.New("latest question already answered")

// Log is an append-only sequence of conversation entries. Entries are never removed or
// reordered; the answer and score of an entry are attached exactly once.
type Log struct {
	entries []types.ConversationEntry
	now     func() time.Time
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Append records a newly asked question and returns its index.
func (l *Log) Append(entry types.ConversationEntry) int {
	if entry.AskedAt.IsZero() {
		entry.AskedAt = l.now().UTC()
	}
	entry.Answer = nil
	entry.Score = nil
	l.entries = append(l.entries, entry)
	return len(l.entries) - 1
}

// RecordAnswer attaches an answer and its score to the most recent entry.
func (l *Log) RecordAnswer(answer string, score float64) error {
	if len(l.entries) == 0 {
		return ErrNoPendingQuestion
	}
	last := &l.entries[len(l.entries)-1]
	if last.Answered() {
		return ErrAlreadyAnswered
	}
	last.Answer = &answer
	last.Score = &score
	return nil
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in order.
func (l *Log) Entries() []types.ConversationEntry {
	out := make([]types.ConversationEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Last returns the most recent entry.
func (l *Log) Last() (types.ConversationEntry, bool) {
	if len(l.entries) == 0 {
		return types.ConversationEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Pending returns the most recent entry if it is still waiting for an answer.
func (l *Log) Pending() (types.ConversationEntry, bool) {
	last, ok := l.Last()
	if !ok || last.Answered() {
		return types.ConversationEntry{}, false
	}
	return last, true
}

// LatestProject scans from newest to oldest and returns the project name of the first
// entry that carries one.
func (l *Log) LatestProject() (string, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if name := l.entries[i].ProjectName; name != "" {
			return name, true
		}
	}
	return "", false
}

// LatestAnswer returns the newest answered entry for topic.
func (l *Log) LatestAnswer(topic types.Topic) (types.ConversationEntry, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if e.Topic == topic && e.Answered() {
			return e, true
		}
	}
	return types.ConversationEntry{}, false
}

// Questions returns the asked questions in order.
func (l *Log) Questions() []string {
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Question)
	}
	return out
}
