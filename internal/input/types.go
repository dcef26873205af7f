package input

import "github.com/dshills/keyroute/internal/input/key"

// MenuID identifies a top-level menu.
type MenuID int

const (
	// MenuMain is the main menu shown while disconnected.
	MenuMain MenuID = iota
	// MenuGame is the in-game menu.
	MenuGame
)

// String returns the menu name.
func (m MenuID) String() string {
	switch m {
	case MenuMain:
		return "main"
	case MenuGame:
		return "game"
	default:
		return "unknown"
	}
}

// CommandQueue is the interpreter's command buffer. Text is appended in
// event order.
type CommandQueue interface {
	AddText(text string)
}

// Surface is a focusable UI element that takes key presses and characters.
type Surface interface {
	KeyDown(code key.Code)
	CharEvent(ch rune)
}

// Console is the drop-down console.
type Console interface {
	Surface
	Toggle()
	Close(force bool)
}

// MenuSystem is the menu UI.
type MenuSystem interface {
	Surface
	Open(menu MenuID)
}

// Display controls the video mode.
type Display interface {
	ToggleFullscreen()
}

// Mouse controls pointer capture.
type Mouse interface {
	Activate()
}

// Session exposes the read-only client state the dispatcher consults.
type Session interface {
	// Active reports whether the connection is fully in game.
	Active() bool
	// OverlayActive reports whether a game overlay (help computer,
	// inventory) is shown.
	OverlayActive() bool
	// Replaying reports whether a recorded demo is playing back.
	Replaying() bool
}

// Server sends fire-and-forget commands to the game server.
type Server interface {
	ClientCommand(cmd string)
}

// Printer prints informational lines to the console.
type Printer interface {
	Printf(format string, args ...any)
}

// FatalReporter reports unrecoverable contract violations.
type FatalReporter interface {
	Fatal(err error)
}

// Logger receives the per-event trace.
type Logger interface {
	Debug(msg string, args ...any)
}

// Collaborators are the external components the dispatcher drives.
// Nil members are replaced with no-op implementations, except Fatal
// which defaults to panicking.
type Collaborators struct {
	Queue   CommandQueue
	Console Console
	Menu    MenuSystem
	Message Surface
	Display Display
	Mouse   Mouse
	Session Session
	Server  Server
	Printer Printer
	Fatal   FatalReporter
	Logger  Logger
}

func (c Collaborators) withDefaults() Collaborators {
	if c.Queue == nil {
		c.Queue = nopQueue{}
	}
	if c.Console == nil {
		c.Console = nopConsole{}
	}
	if c.Menu == nil {
		c.Menu = nopMenu{}
	}
	if c.Message == nil {
		c.Message = nopSurface{}
	}
	if c.Display == nil {
		c.Display = nopDisplay{}
	}
	if c.Mouse == nil {
		c.Mouse = nopMouse{}
	}
	if c.Session == nil {
		c.Session = nopSession{}
	}
	if c.Server == nil {
		c.Server = nopServer{}
	}
	if c.Printer == nil {
		c.Printer = nopPrinter{}
	}
	if c.Fatal == nil {
		c.Fatal = panicReporter{}
	}
	if c.Logger == nil {
		c.Logger = nopLogger{}
	}
	return c
}

type nopQueue struct{}

func (nopQueue) AddText(string) {}

type nopSurface struct{}

func (nopSurface) KeyDown(key.Code) {}
func (nopSurface) CharEvent(rune)   {}

type nopConsole struct{ nopSurface }

func (nopConsole) Toggle()    {}
func (nopConsole) Close(bool) {}

type nopMenu struct{ nopSurface }

func (nopMenu) Open(MenuID) {}

type nopDisplay struct{}

func (nopDisplay) ToggleFullscreen() {}

type nopMouse struct{}

func (nopMouse) Activate() {}

type nopSession struct{}

func (nopSession) Active() bool        { return false }
func (nopSession) OverlayActive() bool { return false }
func (nopSession) Replaying() bool     { return false }

type nopServer struct{}

func (nopServer) ClientCommand(string) {}

type nopPrinter struct{}

func (nopPrinter) Printf(string, ...any) {}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

type panicReporter struct{}

func (panicReporter) Fatal(err error) { panic(err) }
