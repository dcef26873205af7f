package app

import (
	"strings"
	"unicode"

	"github.com/dshills/keyroute/internal/input"
	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/mode"
)

const maxHistory = 32

// console is the drop-down console: a command line with history and
// completion.
type console struct {
	app *Application

	line    []rune
	cursor  int
	history []string
	histPos int
}

func (c *console) Toggle() {
	r := c.app.router
	dest := r.Destination()
	if !dest.Has(mode.Console) {
		r.SetDestination(dest | mode.Console)
		return
	}
	if !c.app.session.Active() {
		c.app.menu.Open(input.MenuMain)
		return
	}
	r.SetDestination(dest &^ mode.Console)
}

func (c *console) Close(force bool) {
	if !force && !c.app.session.Active() {
		return
	}
	r := c.app.router
	r.SetDestination(r.Destination() &^ mode.Console)
}

func (c *console) KeyDown(code key.Code) {
	switch code {
	case key.Enter, key.KPEnter:
		c.submit()
	case key.Backspace:
		if c.cursor > 0 {
			c.line = append(c.line[:c.cursor-1], c.line[c.cursor:]...)
			c.cursor--
		}
	case key.Del:
		if c.cursor < len(c.line) {
			c.line = append(c.line[:c.cursor], c.line[c.cursor+1:]...)
		}
	case key.LeftArrow:
		if c.cursor > 0 {
			c.cursor--
		}
	case key.RightArrow:
		if c.cursor < len(c.line) {
			c.cursor++
		}
	case key.Home:
		c.cursor = 0
	case key.End:
		c.cursor = len(c.line)
	case key.Ins:
		r := c.app.router
		r.SetOverstrike(!r.Overstrike())
	case key.Tab:
		c.complete()
	case key.UpArrow:
		c.recall(-1)
	case key.DownArrow:
		c.recall(1)
	}
}

// CharEvent inserts ch at the cursor, or replaces the character under it
// in overstrike mode.
func (c *console) CharEvent(ch rune) {
	if ch < ' ' || ch == 0x7f || !unicode.IsPrint(ch) {
		return
	}
	switch {
	case c.app.router.Overstrike() && c.cursor < len(c.line):
		c.line[c.cursor] = ch
	default:
		c.line = append(c.line, 0)
		copy(c.line[c.cursor+1:], c.line[c.cursor:])
		c.line[c.cursor] = ch
	}
	c.cursor++
}

func (c *console) setLine(text string) {
	c.line = []rune(text)
	c.cursor = len(c.line)
}

// Input returns the text being edited.
func (c *console) Input() string {
	return string(c.line)
}

func (c *console) submit() {
	text := strings.TrimSpace(string(c.line))
	c.setLine("")
	c.app.Printf("]%s\n", text)
	if text == "" {
		return
	}
	if n := len(c.history); n == 0 || c.history[n-1] != text {
		c.history = append(c.history, text)
		if len(c.history) > maxHistory {
			c.history = c.history[1:]
		}
	}
	c.histPos = len(c.history)
	c.app.queue.AddText(text + "\n")
}

func (c *console) recall(dir int) {
	pos := c.histPos + dir
	if pos < 0 || pos > len(c.history) {
		return
	}
	c.histPos = pos
	if pos == len(c.history) {
		c.setLine("")
		return
	}
	c.setLine(c.history[pos])
}

func (c *console) complete() {
	text := string(c.line)
	matches := c.app.registry.Complete(text)
	switch len(matches) {
	case 0:
	case 1:
		head := text[:strings.LastIndexAny(text, " \t")+1]
		c.setLine(head + matches[0] + " ")
	default:
		for _, m := range matches {
			c.app.Printf("  %s\n", m)
		}
	}
}

type menuItem struct {
	label   string
	command string
}

var menuItems = map[input.MenuID][]menuItem{
	input.MenuMain: {
		{"Connect", "connect"},
		{"Play demo", "demo"},
		{"Quit", "quit"},
	},
	input.MenuGame: {
		{"Resume", "menu_close"},
		{"Disconnect", "disconnect"},
		{"Quit", "quit"},
	},
}

// menu is a single-level list menu.
type menu struct {
	app *Application

	current input.MenuID
	cursor  int
}

func (m *menu) Open(id input.MenuID) {
	m.current = id
	m.cursor = 0
	m.app.router.SetDestination(mode.Menu)
}

func (m *menu) close() {
	r := m.app.router
	r.SetDestination(r.Destination() &^ mode.Menu)
}

func (m *menu) KeyDown(code key.Code) {
	items := menuItems[m.current]
	switch code {
	case key.Escape:
		m.close()
	case key.UpArrow, key.KPUpArrow, key.MWheelUp:
		m.cursor = (m.cursor + len(items) - 1) % len(items)
	case key.DownArrow, key.KPDownArrow, key.MWheelDown, key.Tab:
		m.cursor = (m.cursor + 1) % len(items)
	case key.Enter, key.KPEnter, key.Mouse1:
		m.app.queue.AddText(items[m.cursor].command + "\n")
	}
}

func (m *menu) CharEvent(rune) {}

// Selected returns the label under the cursor.
func (m *menu) Selected() string {
	return menuItems[m.current][m.cursor].label
}

// messageLine is the chat input.
type messageLine struct {
	app *Application

	team bool
	buf  []rune
}

func (l *messageLine) open(team bool) {
	l.team = team
	l.buf = l.buf[:0]
	r := l.app.router
	r.SetDestination(r.Destination() | mode.Message)
}

func (l *messageLine) close() {
	l.buf = l.buf[:0]
	r := l.app.router
	r.SetDestination(r.Destination() &^ mode.Message)
}

func (l *messageLine) KeyDown(code key.Code) {
	switch code {
	case key.Escape:
		l.close()
	case key.Enter, key.KPEnter:
		if text := strings.TrimSpace(string(l.buf)); text != "" {
			cmd := "say"
			if l.team {
				cmd = "say_team"
			}
			l.app.queue.AddText(cmd + " \"" + text + "\"\n")
		}
		l.close()
	case key.Backspace:
		if n := len(l.buf); n > 0 {
			l.buf = l.buf[:n-1]
		}
	}
}

func (l *messageLine) CharEvent(ch rune) {
	if ch < ' ' || ch == '"' || !unicode.IsPrint(ch) {
		return
	}
	l.buf = append(l.buf, ch)
}
