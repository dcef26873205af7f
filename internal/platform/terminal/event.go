// Package terminal drives keyroute from a text terminal using tcell.
//
// Terminals report key presses, not key state: there is no release event
// and modifiers arrive folded into the key. The Translator turns each tcell
// key into a synthetic press and release, wrapped in press and release
// events for any modifier that was held, so the dispatcher sees the same
// edge sequence a keyboard driver would produce.
package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyroute/internal/input/key"
)

// Kind identifies what an Event carries.
type Kind int

const (
	// KindKey is a key edge: Code and Down are set.
	KindKey Kind = iota

	// KindChar is a typed character: Char is set.
	KindChar

	// KindFocus reports the terminal losing or gaining focus. Down is true
	// when focus was gained.
	KindFocus

	// KindResize reports a terminal size change.
	KindResize

	// KindQuit is a request to stop.
	KindQuit
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindChar:
		return "char"
	case KindFocus:
		return "focus"
	case KindResize:
		return "resize"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is one platform input event.
type Event struct {
	Kind Kind
	Code key.Code
	Down bool
	Char rune
	// Time is milliseconds since the Translator was created.
	Time uint32
}

var mouseButtons = []struct {
	mask tcell.ButtonMask
	code key.Code
}{
	{tcell.Button1, key.Mouse1},
	{tcell.Button2, key.Mouse2},
	{tcell.Button3, key.Mouse3},
	{tcell.Button4, key.Mouse4},
	{tcell.Button5, key.Mouse5},
	{tcell.Button6, key.Mouse6},
	{tcell.Button7, key.Mouse7},
	{tcell.Button8, key.Mouse8},
}

var wheels = []struct {
	mask tcell.ButtonMask
	code key.Code
}{
	{tcell.WheelUp, key.MWheelUp},
	{tcell.WheelDown, key.MWheelDown},
	{tcell.WheelLeft, key.MWheelLeft},
	{tcell.WheelRight, key.MWheelRight},
}

// Translator converts tcell events into key edges. It remembers which
// mouse buttons are held so releases can be reported.
type Translator struct {
	start   time.Time
	now     func() time.Time
	buttons tcell.ButtonMask
}

// NewTranslator returns a Translator whose clock starts now.
func NewTranslator() *Translator {
	return &Translator{start: time.Now(), now: time.Now}
}

func (t *Translator) stamp() uint32 {
	return uint32(t.now().Sub(t.start) / time.Millisecond)
}

// Translate converts ev. Events that carry no input yield nil.
func (t *Translator) Translate(ev tcell.Event) []Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return t.translateKey(e)
	case *tcell.EventMouse:
		return t.translateMouse(e)
	case *tcell.EventFocus:
		if !e.Focused {
			t.buttons = 0
		}
		return []Event{{Kind: KindFocus, Down: e.Focused, Time: t.stamp()}}
	case *tcell.EventResize:
		return []Event{{Kind: KindResize, Time: t.stamp()}}
	default:
		return nil
	}
}

func (t *Translator) translateKey(e *tcell.EventKey) []Event {
	if e.Key() == tcell.KeyCtrlC {
		return []Event{{Kind: KindQuit, Time: t.stamp()}}
	}

	code, mods, ch := convertKey(e)
	now := t.stamp()

	var out []Event
	if code != key.None {
		held := modifierKeys(mods)
		for _, m := range held {
			out = append(out, Event{Kind: KindKey, Code: m, Down: true, Time: now})
		}
		out = append(out, Event{Kind: KindKey, Code: code, Down: true, Time: now})
		if ch != 0 {
			out = append(out, Event{Kind: KindChar, Char: ch, Time: now})
		}
		out = append(out, Event{Kind: KindKey, Code: code, Down: false, Time: now})
		for i := len(held) - 1; i >= 0; i-- {
			out = append(out, Event{Kind: KindKey, Code: held[i], Down: false, Time: now})
		}
		return out
	}
	if ch != 0 {
		out = append(out, Event{Kind: KindChar, Char: ch, Time: now})
	}
	return out
}

func (t *Translator) translateMouse(e *tcell.EventMouse) []Event {
	now := t.stamp()
	buttons := e.Buttons()

	var out []Event
	for _, b := range mouseButtons {
		was := t.buttons&b.mask != 0
		is := buttons&b.mask != 0
		if was != is {
			out = append(out, Event{Kind: KindKey, Code: b.code, Down: is, Time: now})
		}
	}
	for _, w := range wheels {
		if buttons&w.mask != 0 {
			out = append(out,
				Event{Kind: KindKey, Code: w.code, Down: true, Time: now},
				Event{Kind: KindKey, Code: w.code, Down: false, Time: now},
			)
		}
	}
	t.buttons = buttons &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
	return out
}

// convertKey maps a tcell key to a key code, the modifiers held with it,
// and the character it types (0 for none).
func convertKey(e *tcell.EventKey) (key.Code, key.Modifier, rune) {
	mods := convertMod(e.Modifiers())

	switch k := e.Key(); {
	case k == tcell.KeyRune:
		return convertRune(e.Rune(), mods)
	case k == tcell.KeyTab:
		return key.Tab, mods, '\t'
	case k == tcell.KeyBacktab:
		return key.Tab, mods.With(key.ModShift), 0
	case k == tcell.KeyEnter:
		return key.Enter, mods, '\r'
	case k == tcell.KeyEscape:
		return key.Escape, mods, 0
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return key.Backspace, mods, '\b'
	case k == tcell.KeyCtrlSpace:
		return key.Space, mods.With(key.ModCtrl), 0
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.Code('a' + (k - tcell.KeyCtrlA)), mods.With(key.ModCtrl), 0
	}

	if c, ok := specialKeys[e.Key()]; ok {
		return c, mods, 0
	}
	return key.None, mods, 0
}

var specialKeys = map[tcell.Key]key.Code{
	tcell.KeyUp:     key.UpArrow,
	tcell.KeyDown:   key.DownArrow,
	tcell.KeyLeft:   key.LeftArrow,
	tcell.KeyRight:  key.RightArrow,
	tcell.KeyInsert: key.Ins,
	tcell.KeyDelete: key.Del,
	tcell.KeyHome:   key.Home,
	tcell.KeyEnd:    key.End,
	tcell.KeyPgUp:   key.PgUp,
	tcell.KeyPgDn:   key.PgDn,
	tcell.KeyPause:  key.Pause,
	tcell.KeyF1:     key.F1,
	tcell.KeyF2:     key.F2,
	tcell.KeyF3:     key.F3,
	tcell.KeyF4:     key.F4,
	tcell.KeyF5:     key.F5,
	tcell.KeyF6:     key.F6,
	tcell.KeyF7:     key.F7,
	tcell.KeyF8:     key.F8,
	tcell.KeyF9:     key.F9,
	tcell.KeyF10:    key.F10,
	tcell.KeyF11:    key.F11,
	tcell.KeyF12:    key.F12,
}

// convertRune maps a typed rune to the unshifted key that produces it.
// Runes outside printable ASCII have no key and only type a character.
func convertRune(r rune, mods key.Modifier) (key.Code, key.Modifier, rune) {
	if r < rune(key.ASCIIFirst) || r > rune(key.ASCIILast) {
		return key.None, mods, r
	}
	c := key.Code(r)
	if base, ok := key.Unshifted(c); ok {
		return base, mods.With(key.ModShift), r
	}
	return c, mods, r
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		result |= key.ModAlt
	}
	return result
}

func modifierKeys(m key.Modifier) []key.Code {
	var held []key.Code
	if m.HasCtrl() {
		held = append(held, key.Ctrl)
	}
	if m.HasAlt() {
		held = append(held, key.Alt)
	}
	if m.HasShift() {
		held = append(held, key.Shift)
	}
	return held
}
