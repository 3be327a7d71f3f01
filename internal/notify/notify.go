// Package notify delivers user-facing messages from picker operations.
//
// Notifications are fire-and-forget: senders never learn whether a message
// was displayed, and delivery must not fail the operation that produced it.
package notify

import (
	"fmt"
	"sync"
)

// Level classifies a notification.
type Level int

const (
	// LevelInfo is an informational message.
	LevelInfo Level = iota

	// LevelWarn reports a recoverable problem, such as a navigation
	// boundary being hit.
	LevelWarn

	// LevelError reports a failed operation.
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Message is a single notification.
type Message struct {
	Level Level
	Text  string
}

// Sink receives notifications. Implementations must not block.
type Sink interface {
	Notify(msg Message)
}

// Infof sends a formatted info message to sink. A nil sink is a no-op.
func Infof(sink Sink, format string, args ...any) {
	send(sink, LevelInfo, format, args...)
}

// Warnf sends a formatted warning to sink. A nil sink is a no-op.
func Warnf(sink Sink, format string, args ...any) {
	send(sink, LevelWarn, format, args...)
}

// Errorf sends a formatted error message to sink. A nil sink is a no-op.
func Errorf(sink Sink, format string, args ...any) {
	send(sink, LevelError, format, args...)
}

func send(sink Sink, level Level, format string, args ...any) {
	if sink == nil {
		return
	}
	sink.Notify(Message{Level: level, Text: fmt.Sprintf(format, args...)})
}

// Memory is a Sink that records messages for test verification.
type Memory struct {
	mu       sync.Mutex
	messages []Message
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Notify records the message.
func (m *Memory) Notify(msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// Messages returns a copy of all recorded messages.
func (m *Memory) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Clear discards all recorded messages.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}
