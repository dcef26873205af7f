package key

// consoleKeys marks keys the console consumes itself. Any other key is
// still sent to the command interpreter while the console is up.
var consoleKeys [NumCodes]bool

// menuBound marks keys that execute their binding even while a menu is up.
var menuBound [NumCodes]bool

// shifted is the character produced by each key with SHIFT held.
var shifted [NumCodes]Code

// keypadASCII maps keypad keys to the character they type.
var keypadASCII = map[Code]Code{
	KPSlash:      '/',
	KPMultiply:   '*',
	KPMinus:      '-',
	KPPlus:       '+',
	KPHome:       '7',
	KPUpArrow:    '8',
	KPPgUp:       '9',
	KPLeftArrow:  '4',
	KP5:          '5',
	KPRightArrow: '6',
	KPEnd:        '1',
	KPDownArrow:  '2',
	KPPgDn:       '3',
	KPIns:        '0',
	KPDel:        '.',
}

func init() {
	for c := ASCIIFirst; c <= ASCIILast; c++ {
		consoleKeys[c] = true
	}
	for _, c := range []Code{
		Backspace, Tab, Enter,
		UpArrow, DownArrow, LeftArrow, RightArrow,
		Alt, LAlt, RAlt, Ctrl, LCtrl, RCtrl, Shift, LShift, RShift,
		Ins, Del, PgDn, PgUp, Home, End,
		Mouse3, MWheelUp, MWheelDown,
	} {
		consoleKeys[c] = true
	}
	for c := KPHome; c <= KPMultiply; c++ {
		consoleKeys[c] = true
	}

	menuBound[Escape] = true
	for c := F1; c <= F12; c++ {
		menuBound[c] = true
	}

	for c := range shifted {
		shifted[c] = Code(c)
	}
	for c := Code('a'); c <= 'z'; c++ {
		shifted[c] = c - 'a' + 'A'
	}
	for base, s := range map[Code]Code{
		'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
		'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
		'-': '_', '=': '+', ',': '<', '.': '>', '/': '?',
		';': ':', '\'': '"', '[': '{', ']': '}', '`': '~',
		'\\': '|',
	} {
		shifted[base] = s
	}
}

// IsConsoleKey reports whether the console handles c itself instead of
// passing it to the key's binding.
func IsConsoleKey(c Code) bool {
	return c.Valid() && consoleKeys[c]
}

// IsMenuBound reports whether c runs its binding while a menu is up.
func IsMenuBound(c Code) bool {
	return c.Valid() && menuBound[c]
}

// Shifted returns the code c produces with SHIFT held, or c itself.
func Shifted(c Code) Code {
	if !c.Valid() {
		return c
	}
	return shifted[c]
}

// Unshifted returns the key that produces c with SHIFT held.
// The boolean is false if c is not a shifted character.
func Unshifted(c Code) (Code, bool) {
	if !c.Valid() {
		return c, false
	}
	for base, s := range shifted {
		if s == c && Code(base) != c {
			return Code(base), true
		}
	}
	return c, false
}

// KeypadASCII returns the character typed by a keypad key, or c itself.
func KeypadASCII(c Code) Code {
	if a, ok := keypadASCII[c]; ok {
		return a
	}
	return c
}
