package app

import (
	"sort"
	"strconv"

	"github.com/dshills/keyroute/internal/command"
	"github.com/dshills/keyroute/internal/input/key"
)

// buttonNames are the game buttons registered as +name/-name commands.
var buttonNames = []string{
	"attack", "use",
	"forward", "back", "left", "right",
	"moveleft", "moveright", "moveup", "movedown",
	"lookup", "lookdown", "strafe", "speed",
	"klook", "mlook",
}

// button is held while any of up to two keys bound to it are down.
type button struct {
	keys     [2]key.Code
	active   bool
	downTime uint32
	held     uint32
}

// Buttons tracks continuous game actions driven by button commands.
type Buttons struct {
	printer command.Printer
	buttons map[string]*button
}

func newButtons(p command.Printer) *Buttons {
	b := &Buttons{printer: p, buttons: make(map[string]*button, len(buttonNames))}
	for _, name := range buttonNames {
		b.buttons[name] = &button{keys: [2]key.Code{key.None, key.None}}
	}
	return b
}

// Commands returns the +name and -name commands for every button.
func (b *Buttons) Commands() []command.Command {
	cmds := make([]command.Command, 0, 2*len(buttonNames))
	for _, name := range buttonNames {
		btn := b.buttons[name]
		cmds = append(cmds,
			command.Command{Name: "+" + name, Run: func(args command.Args) { b.down(btn, args) }},
			command.Command{Name: "-" + name, Run: func(args command.Args) { b.up(btn, args) }},
		)
	}
	return cmds
}

// Held returns the names of active buttons, sorted.
func (b *Buttons) Held() []string {
	var held []string
	for name, btn := range b.buttons {
		if btn.active {
			held = append(held, name)
		}
	}
	sort.Strings(held)
	return held
}

// HeldTime returns the milliseconds name was held during completed
// presses plus the current one measured to now.
func (b *Buttons) HeldTime(name string, now uint32) uint32 {
	btn, ok := b.buttons[name]
	if !ok {
		return 0
	}
	total := btn.held
	if btn.active && btn.downTime != 0 && now > btn.downTime {
		total += now - btn.downTime
	}
	return total
}

// Release drops every button, as when the connection goes away.
func (b *Buttons) Release() {
	for _, btn := range b.buttons {
		*btn = button{keys: [2]key.Code{key.None, key.None}}
	}
}

// down handles "+name [key] [time]". Without a key argument the button was
// typed at the console and stays down until a bare "-name".
func (b *Buttons) down(btn *button, args command.Args) {
	k := key.None
	if args.Argc() > 1 {
		if n, err := strconv.Atoi(args.Argv(1)); err == nil {
			k = key.Code(n)
		}
	}

	if k != key.None {
		if k == btn.keys[0] || k == btn.keys[1] {
			return
		}
		switch {
		case btn.keys[0] == key.None:
			btn.keys[0] = k
		case btn.keys[1] == key.None:
			btn.keys[1] = k
		default:
			b.printer.Printf("Three keys down for a button!\n")
			return
		}
	}

	if btn.active {
		return
	}
	btn.active = true
	btn.downTime = parseTime(args.Argv(2))
}

// up handles "-name [key] [time]".
func (b *Buttons) up(btn *button, args command.Args) {
	if args.Argc() < 2 {
		btn.keys = [2]key.Code{key.None, key.None}
		btn.active = false
		return
	}

	n, err := strconv.Atoi(args.Argv(1))
	if err != nil {
		return
	}
	k := key.Code(n)
	switch k {
	case btn.keys[0]:
		btn.keys[0] = key.None
	case btn.keys[1]:
		btn.keys[1] = key.None
	default:
		// key up without a matching press, e.g. after a binding change
		return
	}
	if btn.keys[0] != key.None || btn.keys[1] != key.None {
		return
	}
	if !btn.active {
		return
	}
	btn.active = false

	if up := parseTime(args.Argv(2)); up != 0 && btn.downTime != 0 && up > btn.downTime {
		btn.held += up - btn.downTime
	}
	btn.downTime = 0
}

func parseTime(s string) uint32 {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}
