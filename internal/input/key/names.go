package key

import "strings"

// Sentinel strings returned by ToString.
const (
	NotFound = "<KEY NOT FOUND>"
	Unknown  = "<UNKNOWN KEYNUM>"
)

// Name pairs a canonical key name with its code.
type Name struct {
	Name string
	Code Code
}

// names is the static name table, in canonical order.
var names = []Name{
	{"BACKSPACE", Backspace},
	{"TAB", Tab},
	{"ENTER", Enter},
	{"PAUSE", Pause},
	{"ESCAPE", Escape},
	{"SPACE", Space},

	{"UPARROW", UpArrow},
	{"DOWNARROW", DownArrow},
	{"LEFTARROW", LeftArrow},
	{"RIGHTARROW", RightArrow},

	{"ALT", Alt},
	{"LALT", LAlt},
	{"RALT", RAlt},
	{"CTRL", Ctrl},
	{"LCTRL", LCtrl},
	{"RCTRL", RCtrl},
	{"SHIFT", Shift},
	{"LSHIFT", LShift},
	{"RSHIFT", RShift},

	{"F1", F1},
	{"F2", F2},
	{"F3", F3},
	{"F4", F4},
	{"F5", F5},
	{"F6", F6},
	{"F7", F7},
	{"F8", F8},
	{"F9", F9},
	{"F10", F10},
	{"F11", F11},
	{"F12", F12},

	{"INS", Ins},
	{"DEL", Del},
	{"PGDN", PgDn},
	{"PGUP", PgUp},
	{"HOME", Home},
	{"END", End},

	{"NUMLOCK", NumLock},
	{"CAPSLOCK", CapsLock},
	{"SCROLLOCK", ScrollLock},
	{"LWINKEY", LWinKey},
	{"RWINKEY", RWinKey},
	{"MENU", Menu},

	{"KP_HOME", KPHome},
	{"KP_UPARROW", KPUpArrow},
	{"KP_PGUP", KPPgUp},
	{"KP_LEFTARROW", KPLeftArrow},
	{"KP_5", KP5},
	{"KP_RIGHTARROW", KPRightArrow},
	{"KP_END", KPEnd},
	{"KP_DOWNARROW", KPDownArrow},
	{"KP_PGDN", KPPgDn},
	{"KP_ENTER", KPEnter},
	{"KP_INS", KPIns},
	{"KP_DEL", KPDel},
	{"KP_SLASH", KPSlash},
	{"KP_MINUS", KPMinus},
	{"KP_PLUS", KPPlus},
	{"KP_MULTIPLY", KPMultiply},

	{"MOUSE1", Mouse1},
	{"MOUSE2", Mouse2},
	{"MOUSE3", Mouse3},
	{"MOUSE4", Mouse4},
	{"MOUSE5", Mouse5},
	{"MOUSE6", Mouse6},
	{"MOUSE7", Mouse7},
	{"MOUSE8", Mouse8},

	{"MWHEELUP", MWheelUp},
	{"MWHEELDOWN", MWheelDown},
	{"MWHEELRIGHT", MWheelRight},
	{"MWHEELLEFT", MWheelLeft},

	// A raw semicolon separates commands and a raw double quote opens an
	// argument in a binding file, so both are always written out by name.
	{"SEMICOLON", ';'},
	{"DOUBLEQUOTE", '"'},
}

// byCode is the reverse index of names.
var byCode = func() map[Code]string {
	m := make(map[Code]string, len(names))
	for _, n := range names {
		m[n.Code] = n.Name
	}
	return m
}()

// FromString returns the key code for name, or None.
// A single character names itself; anything longer is matched
// case-insensitively against the name table.
func FromString(name string) Code {
	switch len(name) {
	case 0:
		return None
	case 1:
		return Code(name[0])
	}
	for _, n := range names {
		if strings.EqualFold(name, n.Name) {
			return n.Code
		}
	}
	return None
}

// ToString returns the name used for c in binding files and listings:
// the table name if c has one, the character itself for printable ASCII,
// NotFound for None and Unknown for anything else.
func ToString(c Code) string {
	if c == None {
		return NotFound
	}
	if name, ok := byCode[c]; ok {
		return name
	}
	if c > ASCIIFirst && c <= ASCIILast {
		return string(rune(c))
	}
	return Unknown
}

// Names returns a copy of the name table.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names)
	return out
}

// CompleteNames returns the table names starting with prefix, compared
// case-insensitively, in table order.
func CompleteNames(prefix string) []string {
	var matches []string
	for _, n := range names {
		if hasPrefixFold(n.Name, prefix) {
			matches = append(matches, n.Name)
		}
	}
	return matches
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
