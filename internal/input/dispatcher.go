package input

import (
	"fmt"

	"github.com/dshills/keyroute/internal/input/binding"
	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/mode"
)

// autorepeatExempt lists keys whose autorepeat still reaches gameplay,
// for scrolling and menu navigation.
var autorepeatExempt = map[key.Code]bool{
	key.Backspace: true,
	key.Pause:     true,
	key.Escape:    true,
	key.PgUp:      true,
	key.KPPgUp:    true,
	key.PgDn:      true,
	key.KPPgDn:    true,
}

// Dispatcher is the key event state machine.
//
// Dispatcher is not safe for concurrent use. All methods must be called
// from the goroutine running the platform event pump.
type Dispatcher struct {
	bindings *binding.Store
	router   *mode.Router
	strategy Strategy
	collab   Collaborators
	metrics  *Metrics

	wait WaitHook

	down       [key.NumCodes]bool
	repeats    [key.NumCodes]int
	anyKeyDown int
}

// NewDispatcher creates a dispatcher over the given bindings and router
// and registers itself as the router's key releaser.
func NewDispatcher(bindings *binding.Store, router *mode.Router, strategy Strategy, collab Collaborators) *Dispatcher {
	if strategy == nil {
		strategy = NewRemapStrategy()
	}
	d := &Dispatcher{
		bindings: bindings,
		router:   router,
		strategy: strategy,
		collab:   collab.withDefaults(),
		metrics:  NewMetrics(),
	}
	router.SetReleaser(d.ClearStates)
	return d
}

// Strategy returns the text-input strategy.
func (d *Dispatcher) Strategy() Strategy {
	return d.strategy
}

// Metrics returns the dispatch counters.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// WaitKey arms a one-shot hook that sees the next key press before any
// other processing. A nil fn disarms the hook.
func (d *Dispatcher) WaitKey(fn WaitFunc, arg any) {
	d.wait.Arm(fn, arg)
}

// IsDown reports whether code is held. Out-of-range codes are never held.
func (d *Dispatcher) IsDown(code key.Code) bool {
	if !code.Valid() {
		return false
	}
	return d.down[code]
}

// Repeats returns the press count of a held key: 1 for the initial press,
// more while autorepeating, 0 when released.
func (d *Dispatcher) Repeats(code key.Code) int {
	if !code.Valid() {
		return 0
	}
	return d.repeats[code]
}

// AnyKeyDown returns the number of keys currently held.
func (d *Dispatcher) AnyKeyDown() int {
	return d.anyKeyDown
}

// HeldKeys returns the held keys in code order.
func (d *Dispatcher) HeldKeys() []key.Code {
	var held []key.Code
	for c, down := range d.down {
		if down {
			held = append(held, key.Code(c))
		}
	}
	return held
}

// Modifiers returns the modifier keys currently held.
func (d *Dispatcher) Modifiers() key.Modifier {
	mods := key.ModNone
	if d.down[key.Shift] {
		mods = mods.With(key.ModShift)
	}
	if d.down[key.Ctrl] {
		mods = mods.With(key.ModCtrl)
	}
	if d.down[key.Alt] {
		mods = mods.With(key.ModAlt)
	}
	return mods
}

// ClearStates releases every held or repeating key by dispatching an up
// event with timestamp 0, then zeroes all key state.
func (d *Dispatcher) ClearStates() {
	for c := key.Code(0); c < key.NumCodes; c++ {
		if d.down[c] || d.repeats[c] != 0 {
			d.Dispatch(c, false, 0)
		}
		d.down[c] = false
		d.repeats[c] = 0
	}
	d.anyKeyDown = 0
}

// Dispatch routes one key transition. A code outside the key tables is
// reported to the fatal reporter and otherwise ignored.
func (d *Dispatcher) Dispatch(code key.Code, down bool, time uint32) {
	if !code.Valid() {
		d.collab.Fatal.Fatal(&BadKeyError{Code: code})
		return
	}

	d.metrics.recordKeyEvent()
	d.collab.Logger.Debug("%d: %c%s", time, edgeRune(down), key.ToString(code))

	if down && d.wait.intercept(code) {
		d.metrics.recordHookRejection()
		return
	}

	if down {
		d.repeats[code]++
		if d.router.Destination().IsGame() && !autorepeatExempt[code] && d.repeats[code] > 1 {
			d.metrics.recordDroppedRepeat()
			return
		}
		if code.IsMouse() && !d.bindings.Has(code) && !key.IsConsoleKey(code) {
			d.collab.Printer.Printf("%s is unbound, hit F4 to set.\n", key.ToString(code))
		}
	} else {
		d.repeats[code] = 0
	}

	if d.override(code, down) {
		d.metrics.recordOverride()
		return
	}

	d.down[code] = down
	if down {
		if d.repeats[code] == 1 {
			d.anyKeyDown++
		}
	} else if d.anyKeyDown > 0 {
		d.anyKeyDown--
	}

	dest := d.router.Destination()

	// Demo freelook in windowed mode needs the mouse grabbed while SHIFT
	// changes state.
	if dest.IsGame() && code == key.Shift && d.collab.Session.Replaying() {
		d.collab.Mouse.Activate()
	}

	if dest.IsGame() ||
		(dest.Has(mode.Console) && !key.IsConsoleKey(code)) ||
		(dest.Has(mode.Menu) && key.IsMenuBound(code)) {
		d.execBinding(code, down, time)
		return
	}

	// Surfaces only care about presses.
	if !down {
		return
	}

	target := d.focused(dest)
	if target == nil {
		return
	}
	target.KeyDown(code)
	d.metrics.recordSurfaceKey()

	if ch, ok := d.strategy.Synthesize(code, d.Modifiers()); ok {
		target.CharEvent(ch)
		d.metrics.recordSurfaceChar()
	}
}

// CharEvent routes a character decoded by the platform to the focused
// surface.
func (d *Dispatcher) CharEvent(ch rune) {
	d.metrics.recordCharEvent()
	if !d.strategy.AcceptChar(ch, d.Modifiers()) {
		return
	}
	target := d.focused(d.router.Destination())
	if target == nil {
		return
	}
	target.CharEvent(ch)
	d.metrics.recordSurfaceChar()
}

// override runs the hardcoded keys that can never be rebound and reports
// whether the event was consumed.
func (d *Dispatcher) override(code key.Code, down bool) bool {
	switch {
	case isToggleKey(code) && !d.down[key.Shift]:
		if down {
			d.collab.Console.Toggle()
		}
		return true

	case code == key.Enter && d.down[key.Alt]:
		if down {
			d.collab.Display.ToggleFullscreen()
		}
		return true

	case code == key.Escape:
		if down {
			d.escape()
		}
		return true
	}
	return false
}

// escape handles an ESCAPE press.
func (d *Dispatcher) escape() {
	dest := d.router.Destination()
	sess := d.collab.Session
	repeats := d.repeats[key.Escape]

	if dest.IsGame() && sess.OverlayActive() && !sess.Replaying() {
		switch repeats {
		case 1:
			// put away help computer / inventory
			d.collab.Server.ClientCommand("putaway")
		case 2:
			// escape held: force the menu
			d.collab.Menu.Open(MenuGame)
		}
		return
	}

	if repeats > 1 {
		return
	}

	switch {
	case dest.Has(mode.Console):
		if !sess.Active() && !dest.Has(mode.Menu) {
			d.collab.Menu.Open(MenuMain)
		} else {
			d.collab.Console.Close(true)
		}
	case dest.Has(mode.Menu):
		d.collab.Menu.KeyDown(key.Escape)
	case dest.Has(mode.Message):
		d.collab.Message.KeyDown(key.Escape)
	case sess.Active():
		d.collab.Menu.Open(MenuGame)
	default:
		d.collab.Menu.Open(MenuMain)
	}
}

// execBinding appends the binding of code to the command queue.
//
// Only button bindings act on release. Both halves of a button command
// carry the physical key code and timestamp so the interpreter can pair
// multiple presses of the same button.
func (d *Dispatcher) execBinding(code key.Code, down bool, time uint32) {
	alias := d.strategy.Alias(code)

	if !down {
		d.release(code, code, time)
		if alias != code {
			d.release(alias, code, time)
		}
		return
	}

	if d.repeats[code] > 1 {
		return
	}

	lookup := code
	if alias != code && d.down[key.Shift] && d.bindings.Has(alias) {
		lookup = alias
	}

	text, ok := d.bindings.Get(lookup)
	if !ok {
		return
	}
	if binding.IsButton(text) {
		d.enqueue(fmt.Sprintf("%s %d %d\n", text, int(code), time))
	} else {
		d.enqueue(text + "\n")
	}
}

// release enqueues the release half of the button bound to lookup.
func (d *Dispatcher) release(lookup, code key.Code, time uint32) {
	text, ok := d.bindings.Get(lookup)
	if !ok || !binding.IsButton(text) {
		return
	}
	d.enqueue(fmt.Sprintf("-%s %d %d\n", text[1:], int(code), time))
}

func (d *Dispatcher) enqueue(text string) {
	d.collab.Queue.AddText(text)
	d.metrics.recordCommand()
}

// focused returns the surface with input priority, or nil in gameplay.
func (d *Dispatcher) focused(dest mode.Destination) Surface {
	switch {
	case dest.Has(mode.Console):
		return d.collab.Console
	case dest.Has(mode.Menu):
		return d.collab.Menu
	case dest.Has(mode.Message):
		return d.collab.Message
	default:
		return nil
	}
}

func edgeRune(down bool) rune {
	if down {
		return '+'
	}
	return '-'
}
