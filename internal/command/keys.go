package command

import (
	"github.com/dshills/keyroute/internal/input/binding"
	"github.com/dshills/keyroute/internal/input/key"
)

// KeyCommands returns the bind, unbind, unbindall and bindlist commands
// operating on store. Output and diagnostics go to p; malformed input
// never changes the store.
func KeyCommands(store *binding.Store, p Printer, r *Registry) []Command {
	return []Command{
		{
			Name: "bind",
			Run:  func(args Args) { bind(store, p, args) },
			Complete: func(args Args, argnum int) []string {
				if argnum == 1 {
					return key.CompleteNames(args.Argv(1))
				}
				if argnum == 2 && r != nil {
					return completePrefix(r.Names(), args.Argv(2))
				}
				return nil
			},
		},
		{
			Name: "unbind",
			Run:  func(args Args) { unbind(store, p, args) },
			Complete: func(args Args, argnum int) []string {
				if argnum == 1 {
					return store.BoundNames(args.Argv(1))
				}
				return nil
			},
		},
		{
			Name: "unbindall",
			Run:  func(Args) { store.ClearAll() },
		},
		{
			Name: "bindlist",
			Run: func(Args) {
				store.Each(func(c key.Code, text string) {
					p.Printf("%s \"%s\"\n", key.ToString(c), text)
				})
			},
		},
	}
}

// RegisterKeyCommands registers the key binding commands with r.
func RegisterKeyCommands(r *Registry, store *binding.Store, p Printer) {
	r.Register(KeyCommands(store, p, r)...)
}

func bind(store *binding.Store, p Printer, args Args) {
	if args.Argc() < 2 {
		p.Printf("bind <key> [command] : attach a command to a key\n")
		return
	}
	c := key.FromString(args.Argv(1))
	if c == key.None {
		p.Printf("\"%s\" isn't a valid key\n", args.Argv(1))
		return
	}

	if args.Argc() == 2 {
		if text, ok := store.Get(c); ok {
			p.Printf("\"%s\" = \"%s\"\n", args.Argv(1), text)
		} else {
			p.Printf("\"%s\" is not bound\n", args.Argv(1))
		}
		return
	}

	store.Set(c, args.From(2))
}

func unbind(store *binding.Store, p Printer, args Args) {
	if args.Argc() != 2 {
		p.Printf("unbind <key> : remove commands from a key\n")
		return
	}
	c := key.FromString(args.Argv(1))
	if c == key.None {
		p.Printf("\"%s\" isn't a valid key\n", args.Argv(1))
		return
	}
	store.Clear(c)
}
