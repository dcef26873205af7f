package app

import (
	"github.com/tidwall/sjson"

	"github.com/dshills/keyroute/internal/input/key"
)

// Status returns a JSON report of the client state: session, destination,
// pause and pointer state, held keys and buttons, binding count and
// dispatcher metrics.
func (app *Application) Status() (string, error) {
	m := app.dispatcher.Metrics().Snapshot()

	held := []string{}
	for _, c := range app.dispatcher.HeldKeys() {
		held = append(held, key.ToString(c))
	}
	buttons := app.buttons.Held()
	if buttons == nil {
		buttons = []string{}
	}

	fields := []struct {
		path  string
		value any
	}{
		{"session", app.sessionID},
		{"version", app.version()},
		{"connected", app.session.connected},
		{"destination", app.router.Destination().String()},
		{"paused", app.paused},
		{"strategy", app.dispatcher.Strategy().Name()},
		{"bindings", app.store.Len()},
		{"input.held", held},
		{"input.any_key_down", app.dispatcher.AnyKeyDown()},
		{"input.buttons", buttons},
		{"input.mouse_active", app.mouseActive},
		{"queue.pending", app.queue.Len()},
		{"queue.dropped", app.queue.Dropped()},
		{"metrics.key_events", m.KeyEvents},
		{"metrics.char_events", m.CharEvents},
		{"metrics.dropped_repeats", m.DroppedRepeats},
		{"metrics.hook_rejections", m.HookRejections},
		{"metrics.overrides", m.Overrides},
		{"metrics.commands", m.Commands},
		{"frames", app.frames},
	}

	json := "{}"
	for _, f := range fields {
		var err error
		json, err = sjson.Set(json, f.path, f.value)
		if err != nil {
			return "", NewOperationError("status", f.path, err)
		}
	}
	return json, nil
}
