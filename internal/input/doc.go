// Package input routes raw key transitions to bindings and UI surfaces.
//
// A platform event pump calls Dispatcher.Dispatch once per key transition.
// Each event runs a fixed pipeline:
//
//  1. An armed wait hook may swallow a key press ("press a key to bind").
//  2. Autorepeat is counted per key and dropped during gameplay, except
//     for scrolling and editing keys.
//  3. Hardcoded overrides run: the console toggle key, ALT+ENTER for
//     fullscreen and ESCAPE for menus.
//  4. Held-key state is updated.
//  5. In gameplay (and for keys the console or menu does not consume)
//     the key's binding is appended to the command queue. Button bindings
//     ("+attack") fire on press and send a matching "-attack" on release,
//     both carrying the key code and timestamp.
//  6. Otherwise the key press goes to the console, menu or message entry,
//     in that order of priority.
//
// Text entry depends on the platform. A Strategy selected at startup
// either synthesizes characters from key presses using a shift table, or
// relies on the platform's decoded characters delivered through
// Dispatcher.CharEvent.
//
// # Usage
//
//	d := input.NewDispatcher(store, router, input.NewRemapStrategy(), collab)
//
//	for ev := range events {
//	    d.Dispatch(ev.Code, ev.Down, ev.Time)
//	}
//
// The dispatcher is single-threaded: every method must be called from the
// goroutine that owns the event pump, never from a signal handler.
package input
