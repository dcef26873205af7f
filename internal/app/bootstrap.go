package app

import (
	"context"
	"errors"
	"os"

	"github.com/dshills/keyroute/internal/cmdqueue"
	"github.com/dshills/keyroute/internal/command"
	"github.com/dshills/keyroute/internal/config"
	"github.com/dshills/keyroute/internal/config/watcher"
	"github.com/dshills/keyroute/internal/input"
	"github.com/dshills/keyroute/internal/input/binding"
	"github.com/dshills/keyroute/internal/input/mode"
)

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	if err := app.cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if err := app.initInput(); err != nil {
		return err
	}
	app.initCommands()

	if err := app.loadBindings(); err != nil {
		app.log.Warn("loading bindings: %v", err)
	}
	if app.cfg.Bindings.Watch && app.cfg.Bindings.File != "" {
		if err := app.initWatcher(); err != nil {
			app.log.Warn("binding watcher disabled: %v", err)
		}
	}

	app.menu.Open(input.MenuMain)
	app.log.Info("client started (strategy %s)", app.dispatcher.Strategy().Name())
	return nil
}

func (app *Application) initInput() error {
	strategy, err := input.StrategyByName(app.cfg.Input.Strategy)
	if err != nil {
		return &InitError{Component: "input", Err: err}
	}

	app.store = binding.NewStore()
	app.session = &session{app: app}
	app.router = mode.NewRouter(app.session)
	app.queue = cmdqueue.New(app.cfg.Input.QueueCapacity)
	app.queue.OnOverflow = func(err error, text string) {
		app.log.WithComponent("cmdqueue").Warn("%v: dropped %d bytes", err, len(text))
	}

	app.console = &console{app: app}
	app.menu = &menu{app: app}
	app.message = &messageLine{app: app}

	collab := input.Collaborators{
		Queue:   app.queue,
		Console: app.console,
		Menu:    app.menu,
		Message: app.message,
		Display: app,
		Mouse:   app,
		Session: app.session,
		Server:  app.session,
		Printer: app,
		Fatal:   app,
	}
	if app.cfg.Input.DebugEvents {
		collab.Logger = app.log.WithComponent("dispatch")
	}
	app.dispatcher = input.NewDispatcher(app.store, app.router, strategy, collab)

	app.router.OnChange(func(from, to mode.Destination) {
		app.log.Debug("destination %s -> %s", from, to)
		app.Activate()
		app.checkPause()
	})
	return nil
}

func (app *Application) initCommands() {
	app.registry = command.NewRegistry()
	command.RegisterKeyCommands(app.registry, app.store, app)
	app.buttons = newButtons(app)
	app.registry.Register(app.buttons.Commands()...)
	app.registry.Register(app.clientCommands()...)
}

// loadBindings executes the binding file, or the defaults when it does not
// exist, then the binding script.
func (app *Application) loadBindings() error {
	var errs ErrorList

	if path := app.cfg.Bindings.File; path != "" {
		err := config.ExecFile(path, app.registry)
		switch {
		case errors.Is(err, config.ErrFileNotFound) && app.cfg.Bindings.Defaults:
			app.log.Info("no bindings at %s, using defaults", path)
			errs.Add(app.registry.Execute(config.DefaultBindings))
		case err != nil:
			errs.Add(NewOperationError("exec", path, err))
		}
	}

	if path := app.cfg.Bindings.Script; path != "" {
		s := &config.Script{Store: app.store, Exec: app.registry, Printer: app}
		if err := s.RunFile(context.Background(), path); err != nil {
			errs.Add(NewOperationError("script", path, err))
		}
	}
	return errs.AsError()
}

func (app *Application) initWatcher() error {
	w, err := watcher.New()
	if err != nil {
		return NewComponentError("watcher", "start", err)
	}
	if err := w.Watch(app.cfg.Bindings.File); err != nil {
		_ = w.Close()
		return NewComponentError("watcher", "watch", err)
	}
	app.watcher = w
	return nil
}

// reloadBindings replaces every binding with the contents of the binding
// file after it changed on disk.
func (app *Application) reloadBindings(ev watcher.Event) {
	log := app.log.WithComponent("watcher")
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		log.Debug("%s %s, keeping bindings", ev.Path, ev.Op)
		return
	}
	if _, err := os.Stat(ev.Path); err != nil {
		return
	}

	app.dispatcher.ClearStates()
	app.store.ClearAll()
	if err := config.ExecFile(ev.Path, app.registry); err != nil {
		log.Warn("reloading %s: %v", ev.Path, err)
	}
	log.Info("reloaded %d bindings from %s", app.store.Len(), ev.Path)
	app.Printf("bindings reloaded\n")
}
