package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dshills/keyroute/internal/command"
	"github.com/dshills/keyroute/internal/config"
	"github.com/dshills/keyroute/internal/config/watcher"
	"github.com/dshills/keyroute/internal/input/mode"
	"github.com/dshills/keyroute/internal/platform/terminal"
)

const frameTime = time.Second / 60

// Run processes platform events and executes queued commands once per
// frame until ctx is done, events is closed, or a quit is requested.
// It returns the error passed to Fatal, if any.
func (app *Application) Run(ctx context.Context, events <-chan terminal.Event) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	var (
		watchEvents <-chan watcher.Event
		watchErrs   <-chan error
	)
	if app.watcher != nil {
		watchEvents = app.watcher.Events()
		watchErrs = app.watcher.Errors()
	}

	app.updateStatus()
	for {
		select {
		case <-ctx.Done():
			return app.fatalErr

		case <-app.done:
			return app.fatalErr

		case ev, ok := <-events:
			if !ok {
				return app.fatalErr
			}
			app.handleEvent(ev)
			if app.quit {
				_ = app.frame()
				return app.fatalErr
			}

		case ev, ok := <-watchEvents:
			if !ok {
				watchEvents = nil
				continue
			}
			app.reloadBindings(ev)

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			app.log.WithComponent("watcher").Warn("%v", err)

		case <-ticker.C:
			if errors.Is(app.frame(), ErrQuit) {
				return app.fatalErr
			}
		}
	}
}

// handleEvent routes one platform event to the dispatcher.
func (app *Application) handleEvent(ev terminal.Event) {
	defer func() {
		if r := recover(); r != nil {
			app.Fatal(&RecoveredPanicError{Value: r, Stack: string(debug.Stack())})
		}
	}()

	switch ev.Kind {
	case terminal.KindKey:
		app.dispatcher.Dispatch(ev.Code, ev.Down, ev.Time)
	case terminal.KindChar:
		app.dispatcher.CharEvent(ev.Char)
	case terminal.KindFocus:
		if !ev.Down {
			app.dispatcher.ClearStates()
		}
	case terminal.KindResize:
		app.updateStatus()
	case terminal.KindQuit:
		app.quit = true
	}
}

// frame executes everything queued since the last frame.
func (app *Application) frame() error {
	app.frames++

	if text := app.queue.Drain(); text != "" {
		if err := app.registry.Execute(text); err != nil {
			app.reportCommandErrors(err)
		}
	}
	app.updateStatus()

	if app.quit {
		return ErrQuit
	}
	return nil
}

func (app *Application) reportCommandErrors(err error) {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var unknown *command.UnknownCommandError
		if errors.As(e, &unknown) {
			app.Printf("Unknown command \"%s\"\n", unknown.Name)
			continue
		}
		app.Printf("%v\n", e)
	}
}

func (app *Application) updateStatus() {
	if app.screen == nil {
		return
	}
	app.screen.SetStatus(app.statusLine())
}

func (app *Application) statusLine() string {
	dest := app.router.Destination()
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", dest)

	switch {
	case dest.Has(mode.Console):
		fmt.Fprintf(&b, " ]%s_", app.console.Input())
	case dest.Has(mode.Menu):
		fmt.Fprintf(&b, " %s menu: > %s", app.menu.current, app.menu.Selected())
	case dest.Has(mode.Message):
		prompt := "say"
		if app.message.team {
			prompt = "say_team"
		}
		fmt.Fprintf(&b, " %s: %s_", prompt, string(app.message.buf))
	default:
		if held := app.buttons.Held(); len(held) > 0 {
			fmt.Fprintf(&b, " +%s", strings.Join(held, " +"))
		}
	}
	if app.session.overlay {
		b.WriteString(" [inventory]")
	}
	if app.paused {
		b.WriteString(" [paused]")
	}
	return b.String()
}

// Shutdown stops the watcher and saves bindings. Call it after Run has
// returned. It is safe to call more than once.
func (app *Application) Shutdown() error {
	select {
	case <-app.done:
		return nil
	default:
	}
	close(app.done)

	var errs ErrorList
	if app.watcher != nil {
		errs.Add(app.watcher.Close())
	}
	if path := app.cfg.Bindings.File; path != "" {
		if err := config.WriteBindings(path, app.store); err != nil {
			errs.Add(NewOperationError("writebindings", path, err))
		}
	}
	app.log.Info("client stopped after %d frames", app.frames)
	return errs.AsError()
}
