package app

import (
	"context"
	"sort"
	"strings"

	"github.com/dshills/keyroute/internal/command"
	"github.com/dshills/keyroute/internal/config"
	"github.com/dshills/keyroute/internal/input"
	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/mode"
)

// clientCommands returns the commands the client itself implements.
func (app *Application) clientCommands() []command.Command {
	cmds := []command.Command{
		{Name: "connect", Run: func(command.Args) { app.connect() }},
		{Name: "disconnect", Run: func(command.Args) { app.disconnect() }},
		{Name: "demo", Run: func(command.Args) {
			app.session.replaying = !app.session.replaying
			app.Printf("demo playback %s\n", onOff(app.session.replaying))
			app.Activate()
		}},
		{Name: "pause", Run: func(command.Args) {
			if !app.session.Active() {
				return
			}
			app.pauseRequested = !app.pauseRequested
			app.checkPause()
		}},
		{Name: "centerview", Run: func(command.Args) { app.log.Debug("view centered") }},
		{Name: "screenshot", Run: app.screenshotCmd},
		{Name: "cmd", Run: func(args command.Args) { app.forward(args.From(1)) }},
		{Name: "quit", Run: func(command.Args) { app.quit = true }},
		{Name: "toggleconsole", Run: func(command.Args) { app.console.Toggle() }},
		{Name: "togglemenu", Run: func(command.Args) {
			if app.router.Destination().Has(mode.Menu) {
				app.menu.close()
				return
			}
			if app.session.Active() {
				app.menu.Open(input.MenuGame)
			} else {
				app.menu.Open(input.MenuMain)
			}
		}},
		{Name: "menu_close", Run: func(command.Args) { app.menu.close() }},
		{Name: "messagemode", Run: func(command.Args) { app.message.open(false) }},
		{Name: "messagemode2", Run: func(command.Args) { app.message.open(true) }},
		{Name: "say", Run: func(args command.Args) { app.Printf("player: %s\n", args.From(1)) }},
		{Name: "say_team", Run: func(args command.Args) { app.Printf("(player): %s\n", args.From(1)) }},
		{Name: "inven", Run: func(command.Args) {
			app.session.overlay = !app.session.overlay
			app.Printf("inventory %s\n", onOff(app.session.overlay))
		}},
		{Name: "echo", Run: func(args command.Args) { app.Printf("%s\n", args.From(1)) }},
		{Name: "exec", Run: app.execCmd},
		{Name: "writebindings", Run: app.writeBindingsCmd},
		{Name: "bindnext", Run: app.bindNextCmd},
		{Name: "menu_keys", Run: app.menuKeysCmd},
		{Name: "keylist", Run: func(command.Args) {
			for _, n := range key.Names() {
				app.Printf("%s\n", n.Name)
			}
		}},
		{Name: "cmdlist", Run: func(command.Args) {
			names := app.registry.Names()
			for _, n := range names {
				app.Printf("%s\n", n)
			}
			app.Printf("%d commands\n", len(names))
		}},
		{Name: "status", Run: func(command.Args) {
			report, err := app.Status()
			if err != nil {
				app.Printf("status: %v\n", err)
				return
			}
			app.Printf("%s\n", report)
		}},
		{Name: "metrics", Run: app.metricsCmd},
		{Name: "version", Run: func(command.Args) { app.Printf("keyroute %s\n", app.version()) }},
	}
	for _, name := range forwardedCommands {
		cmds = append(cmds, command.Command{Name: name, Run: func(args command.Args) { app.forward(args.From(0)) }})
	}
	return cmds
}

// forwardedCommands are game commands the server implements.
var forwardedCommands = []string{
	"use", "drop", "weapnext", "weapprev", "weaplast",
	"invuse", "invnext", "invprev", "invdrop", "kill",
}

// forward sends a command line to the server.
func (app *Application) forward(line string) {
	if line == "" {
		return
	}
	if !app.session.Active() {
		app.Printf("Can't \"%s\", not connected\n", line)
		return
	}
	app.session.ClientCommand(line)
}

// screenshotCmd records the client state in the log.
func (app *Application) screenshotCmd(command.Args) {
	report, err := app.Status()
	if err != nil {
		app.Printf("screenshot: %v\n", err)
		return
	}
	app.log.WithField("status", report).Info("screenshot")
	app.Printf("wrote client state to the log\n")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (app *Application) version() string {
	if app.opts.Version == "" {
		return "dev"
	}
	return app.opts.Version
}

func (app *Application) connect() {
	if app.session.connected {
		app.Printf("already connected\n")
		return
	}
	app.session.connected = true
	app.log.Info("connected")
	app.router.SetDestination(mode.Game)
	app.Printf("connected\n")
}

func (app *Application) disconnect() {
	if !app.session.connected {
		return
	}
	app.session.connected = false
	app.session.overlay = false
	app.pauseRequested = false
	app.buttons.Release()
	app.log.Info("disconnected")
	app.router.SetDestination(mode.Game)
	app.Printf("disconnected\n")
}

func (app *Application) execCmd(args command.Args) {
	if args.Argc() != 2 {
		app.Printf("exec <filename> : execute a script file\n")
		return
	}
	path := args.Argv(1)
	var err error
	if strings.HasSuffix(path, ".lua") {
		s := &config.Script{Store: app.store, Exec: app.registry, Printer: app}
		err = s.RunFile(context.Background(), path)
	} else {
		err = config.ExecFile(path, app.registry)
	}
	if err != nil {
		app.Printf("couldn't exec %s: %v\n", path, err)
		return
	}
	app.Printf("execing %s\n", path)
}

func (app *Application) writeBindingsCmd(args command.Args) {
	path := app.cfg.Bindings.File
	if args.Argc() > 1 {
		path = args.Argv(1)
	}
	if path == "" {
		app.Printf("writebindings <filename> : save key bindings\n")
		return
	}
	if err := config.WriteBindings(path, app.store); err != nil {
		app.Printf("couldn't write %s: %v\n", path, err)
		return
	}
	app.Printf("wrote %s\n", path)
}

// bindNextCmd binds the next key pressed to the rest of the line.
// ESCAPE cancels.
func (app *Application) bindNextCmd(args command.Args) {
	if args.Argc() < 2 {
		app.Printf("bindnext <command> : bind the next key pressed\n")
		return
	}
	text := args.From(1)
	app.Printf("press a key for \"%s\", ESCAPE to cancel\n", text)
	app.dispatcher.WaitKey(func(_ any, code key.Code) bool {
		if code == key.Escape {
			app.Printf("cancelled\n")
			return false
		}
		app.store.Set(code, text)
		app.Printf("%s = \"%s\"\n", key.ToString(code), text)
		return false
	}, nil)
}

// menuKeysCmd lists the keys bound to each button command.
func (app *Application) menuKeysCmd(command.Args) {
	for _, name := range buttonNames {
		app.Printf("%-10s %s\n", name, app.store.FirstKeyName("+"+name))
	}
}

func (app *Application) metricsCmd(command.Args) {
	s := app.dispatcher.Metrics().Snapshot()
	app.Printf("key events      %d\n", s.KeyEvents)
	app.Printf("char events     %d\n", s.CharEvents)
	app.Printf("dropped repeats %d\n", s.DroppedRepeats)
	app.Printf("hook rejections %d\n", s.HookRejections)
	app.Printf("overrides       %d\n", s.Overrides)
	app.Printf("commands        %d\n", s.Commands)
	held := app.dispatcher.HeldKeys()
	names := make([]string, 0, len(held))
	for _, c := range held {
		names = append(names, key.ToString(c))
	}
	sort.Strings(names)
	app.Printf("held keys       %s\n", strings.Join(names, " "))
}
