// Package app wires the key dispatcher to its collaborators and runs the
// client loop. It owns every piece of mutable client state; input events,
// command execution and binding reloads all happen on the goroutine that
// calls Run.
package app

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/keyroute/internal/cmdqueue"
	"github.com/dshills/keyroute/internal/command"
	"github.com/dshills/keyroute/internal/config"
	"github.com/dshills/keyroute/internal/config/watcher"
	"github.com/dshills/keyroute/internal/input"
	"github.com/dshills/keyroute/internal/input/binding"
	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/mode"
)

// Screen is where the client prints console output and its status line.
type Screen interface {
	Printf(format string, args ...any)
	SetStatus(status string)
}

// Options configures the application.
type Options struct {
	// Config is the loaded configuration. Nil uses config.Default.
	Config *config.Config

	// Screen receives console output. Nil sends output to the logger.
	Screen Screen

	// Logger is the base logger. Nil uses GetLogger.
	Logger *Logger

	// Version is reported by the version command and status.
	Version string
}

// Application is the client: bindings, routing, dispatch and the command
// interpreter, plus the demo surfaces they drive.
type Application struct {
	opts      Options
	cfg       *config.Config
	log       *Logger
	screen    Screen
	sessionID string

	store      *binding.Store
	router     *mode.Router
	dispatcher *input.Dispatcher
	registry   *command.Registry
	queue      *cmdqueue.Buffer
	buttons    *Buttons
	watcher    *watcher.Watcher

	session *session
	console *console
	menu    *menu
	message *messageLine

	fullscreen  bool
	mouseActive bool

	// paused is set while a connected game is behind the console or a
	// menu, or after the pause command.
	paused         bool
	pauseRequested bool

	frames   uint64
	quit     bool
	fatalErr error
	running  atomic.Bool
	done     chan struct{}
}

// New creates and bootstraps an Application.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	base := opts.Logger
	if base == nil {
		base = GetLogger()
	}

	app := &Application{
		opts:      opts,
		cfg:       cfg,
		screen:    opts.Screen,
		sessionID: uuid.NewString(),
		done:      make(chan struct{}),
	}
	app.log = base.WithField("session", app.sessionID)

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SessionID identifies this client run in logs and status reports.
func (app *Application) SessionID() string {
	return app.sessionID
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Bindings returns the binding store.
func (app *Application) Bindings() *binding.Store {
	return app.store
}

// Router returns the destination router.
func (app *Application) Router() *mode.Router {
	return app.router
}

// Dispatcher returns the key dispatcher.
func (app *Application) Dispatcher() *input.Dispatcher {
	return app.dispatcher
}

// Registry returns the command registry.
func (app *Application) Registry() *command.Registry {
	return app.registry
}

// Buttons returns the game button state.
func (app *Application) Buttons() *Buttons {
	return app.buttons
}

// Logger returns the session logger.
func (app *Application) Logger() *Logger {
	return app.log
}

// IsRunning returns true if Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Printf prints console output.
func (app *Application) Printf(format string, args ...any) {
	if app.screen != nil {
		app.screen.Printf(format, args...)
		return
	}
	app.log.Printf(format, args...)
}

// Fatal records an unrecoverable error and stops the client at the end of
// the current event.
func (app *Application) Fatal(err error) {
	app.log.Error("fatal: %v", err)
	if app.fatalErr == nil {
		app.fatalErr = err
	}
	app.quit = true
}

// ToggleFullscreen flips the display mode.
func (app *Application) ToggleFullscreen() {
	app.fullscreen = !app.fullscreen
	app.log.Info("fullscreen %t", app.fullscreen)
}

// Activate recomputes pointer capture. The mouse is grabbed unless the
// console or a menu is up; during demo playback it is grabbed only while
// SHIFT is held, for freelook.
func (app *Application) Activate() {
	grab := !app.router.Destination().HasAny(mode.Console | mode.Menu)
	if grab && app.session.Replaying() && !app.dispatcher.IsDown(key.Shift) {
		grab = false
	}
	if grab == app.mouseActive {
		return
	}
	app.mouseActive = grab
	app.log.Debug("mouse grabbed %t", grab)
}

// MouseActive reports whether the pointer is grabbed.
func (app *Application) MouseActive() bool {
	return app.mouseActive
}

// checkPause pauses a connected game while the console or a menu is up
// or a pause was requested.
func (app *Application) checkPause() {
	paused := app.session.Active() &&
		(app.pauseRequested || app.router.Destination().HasAny(mode.Console|mode.Menu))
	if paused == app.paused {
		return
	}
	app.paused = paused
	app.log.Info("paused %t", paused)
}

// Paused reports whether the game is paused.
func (app *Application) Paused() bool {
	return app.paused
}
