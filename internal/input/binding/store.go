// Package binding stores the command text bound to each key code.
package binding

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/keyroute/internal/input/key"
)

// ButtonPrefix marks a button binding: its command fires on press and a
// matching "-" command fires on release.
const ButtonPrefix = '+'

// IsButton reports whether text is a button binding.
func IsButton(text string) bool {
	return len(text) > 0 && text[0] == ButtonPrefix
}

// slot is the binding of one key. An empty but bound slot is distinct
// from an unbound one: pressing the key still enqueues a blank line.
type slot struct {
	text  string
	bound bool
}

// Store is the per-key binding table.
//
// Store is not safe for concurrent use; it belongs to the goroutine that
// dispatches key events.
type Store struct {
	slots [key.NumCodes]slot
}

// NewStore creates an empty binding table.
func NewStore() *Store {
	return &Store{}
}

// Set binds text to c, replacing any previous binding.
// Codes outside the table are ignored.
func (s *Store) Set(c key.Code, text string) {
	if !c.Valid() {
		return
	}
	s.slots[c] = slot{text: strings.Clone(text), bound: true}
}

// Clear unbinds c.
func (s *Store) Clear(c key.Code) {
	if !c.Valid() {
		return
	}
	s.slots[c] = slot{}
}

// ClearAll unbinds every key.
func (s *Store) ClearAll() {
	for i := range s.slots {
		s.slots[i] = slot{}
	}
}

// Get returns the text bound to c.
func (s *Store) Get(c key.Code) (string, bool) {
	if !c.Valid() {
		return "", false
	}
	sl := s.slots[c]
	return sl.text, sl.bound
}

// Has reports whether c is bound.
func (s *Store) Has(c key.Code) bool {
	_, ok := s.Get(c)
	return ok
}

// Len returns the number of bound keys.
func (s *Store) Len() int {
	n := 0
	for _, sl := range s.slots {
		if sl.bound {
			n++
		}
	}
	return n
}

// Find returns the first key at or after from whose binding equals text,
// compared case-insensitively, or key.None. Passing the previous result
// plus one enumerates every match.
func (s *Store) Find(text string, from key.Code) key.Code {
	if from < 0 {
		from = 0
	}
	for c := from; c < key.NumCodes; c++ {
		sl := s.slots[c]
		if sl.bound && strings.EqualFold(sl.text, text) {
			return c
		}
	}
	return key.None
}

// FindAll returns every key bound to text, in ascending order.
func (s *Store) FindAll(text string) []key.Code {
	var codes []key.Code
	for c := s.Find(text, 0); c != key.None; c = s.Find(text, c+1) {
		codes = append(codes, c)
	}
	return codes
}

// FirstKeyName returns the name of the first key bound to text, or "".
func (s *Store) FirstKeyName(text string) string {
	c := s.Find(text, 0)
	if c == key.None {
		return ""
	}
	return key.ToString(c)
}

// BoundNames returns the names of bound keys starting with prefix,
// compared case-insensitively, in code order.
func (s *Store) BoundNames(prefix string) []string {
	var matches []string
	for c, sl := range s.slots {
		if !sl.bound {
			continue
		}
		name := key.ToString(key.Code(c))
		if len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}

// Each calls fn for every key with non-empty bound text, in code order.
func (s *Store) Each(fn func(c key.Code, text string)) {
	for c, sl := range s.slots {
		if sl.bound && sl.text != "" {
			fn(key.Code(c), sl.text)
		}
	}
}

// WriteTo writes one `bind <name> "<text>"` line per key with non-empty
// bound text. The text is written verbatim between the quotes.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	var err error
	s.Each(func(c key.Code, text string) {
		if err != nil {
			return
		}
		var n int
		n, err = fmt.Fprintf(bw, "bind %s \"%s\"\n", key.ToString(c), text)
		total += int64(n)
	})
	if err != nil {
		return total, err
	}
	return total, bw.Flush()
}
