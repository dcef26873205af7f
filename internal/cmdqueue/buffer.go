// Package cmdqueue provides the FIFO command buffer that key bindings are
// appended to and the interpreter drains.
package cmdqueue

import (
	"errors"
	"strings"
)

// DefaultCapacity is the buffer size in bytes.
const DefaultCapacity = 8192

// ErrOverflow is reported when appended text does not fit.
var ErrOverflow = errors.New("command buffer overflow")

// Buffer is an append-only text buffer drained in arrival order.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	text     strings.Builder
	capacity int
	dropped  int

	// OnOverflow is called with ErrOverflow when text is dropped.
	OnOverflow func(err error, text string)
}

// New creates a buffer holding up to capacity bytes. A non-positive
// capacity uses DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{capacity: capacity}
}

// AddText appends text. Text that would overflow the buffer is dropped
// whole so a command is never split.
func (b *Buffer) AddText(text string) {
	if b.text.Len()+len(text) > b.capacity {
		b.dropped++
		if b.OnOverflow != nil {
			b.OnOverflow(ErrOverflow, text)
		}
		return
	}
	b.text.WriteString(text)
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return b.text.Len()
}

// Dropped returns how many AddText calls overflowed.
func (b *Buffer) Dropped() int {
	return b.dropped
}

// Drain returns the buffered text and empties the buffer.
func (b *Buffer) Drain() string {
	s := b.text.String()
	b.text.Reset()
	return s
}
