package terminal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// DefaultScrollback is the number of printed lines kept for display.
const DefaultScrollback = 200

// Terminal owns a tcell screen. It renders printed output above a status
// line and pumps translated input events.
type Terminal struct {
	mu         sync.Mutex
	screen     tcell.Screen
	tr         *Translator
	lines      []string
	partial    string
	status     string
	scrollback int
}

// New creates a terminal on the controlling tty.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an existing screen.
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen:     screen,
		tr:         NewTranslator(),
		scrollback: DefaultScrollback,
	}
}

// Init initializes the screen and enables mouse and focus reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnableFocus()
	t.screen.HideCursor()
	return nil
}

// Fini restores the terminal.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Printf appends formatted output. Text is split into lines at '\n'; an
// unterminated tail waits for the next call.
func (t *Terminal) Printf(format string, args ...any) {
	t.mu.Lock()
	text := t.partial + fmt.Sprintf(format, args...)
	parts := strings.Split(text, "\n")
	t.partial = parts[len(parts)-1]
	t.lines = append(t.lines, parts[:len(parts)-1]...)
	if over := len(t.lines) - t.scrollback; over > 0 {
		t.lines = append(t.lines[:0:0], t.lines[over:]...)
	}
	t.mu.Unlock()

	t.Draw()
}

// Lines returns the completed output lines.
func (t *Terminal) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

// SetStatus replaces the status line.
func (t *Terminal) SetStatus(status string) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()

	t.Draw()
}

// Draw renders output and the status line.
func (t *Terminal) Draw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	w, h := t.screen.Size()
	if h <= 0 {
		return
	}

	rows := h - 1
	start := 0
	if len(t.lines) > rows {
		start = len(t.lines) - rows
	}
	for y, line := range t.lines[start:] {
		drawText(t.screen, 0, y, w, line, tcell.StyleDefault)
	}
	drawText(t.screen, 0, h-1, w, t.status, tcell.StyleDefault.Reverse(true))
	t.screen.Show()
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width && style != tcell.StyleDefault; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// Run polls the screen and sends translated events to out until ctx is
// done or the screen is finalized. out is closed on return.
func (t *Terminal) Run(ctx context.Context, out chan<- Event) {
	defer close(out)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		ev := t.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		for _, e := range t.tr.Translate(ev) {
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}
}
