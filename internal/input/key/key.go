package key

// Code identifies a physical key or pointing-device input.
type Code int

// NumCodes is the size of every per-key table.
const NumCodes = 256

// None is the sentinel code for "no such key".
const None Code = -1

// Keys below ASCIIFirst and the ASCII keys are reported with their ASCII
// value; letters are always lower case.
const (
	Tab       Code = 9
	Enter     Code = 13
	Pause     Code = 19
	Escape    Code = 27
	Space     Code = 32
	Backspace Code = 127

	ASCIIFirst Code = 32
	ASCIILast  Code = 126
)

// Named special keys.
const (
	UpArrow Code = 128 + iota
	DownArrow
	LeftArrow
	RightArrow

	Alt
	Ctrl
	Shift

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	Ins
	Del
	PgDn
	PgUp
	Home
	End

	LAlt
	RAlt
	LCtrl
	RCtrl
	LShift
	RShift

	NumLock
	CapsLock
	ScrollLock
	LWinKey
	RWinKey
	Menu

	KPHome
	KPUpArrow
	KPPgUp
	KPLeftArrow
	KP5
	KPRightArrow
	KPEnd
	KPDownArrow
	KPPgDn
	KPEnter
	KPIns
	KPDel
	KPSlash
	KPMinus
	KPPlus
	KPMultiply
)

// Pointing-device buttons and wheel directions.
const (
	Mouse1 Code = 200 + iota
	Mouse2
	Mouse3
	Mouse4
	Mouse5
	Mouse6
	Mouse7
	Mouse8

	MWheelUp
	MWheelDown
	MWheelRight
	MWheelLeft

	MouseFirst = Mouse1
	MouseLast  = MWheelLeft
)

// Valid reports whether c indexes a per-key table.
func (c Code) Valid() bool {
	return c >= 0 && c < NumCodes
}

// IsPrintable reports whether c is a printable ASCII character, space included.
func (c Code) IsPrintable() bool {
	return c >= ASCIIFirst && c <= ASCIILast
}

// IsMouse reports whether c is a pointing-device button or wheel direction.
func (c Code) IsMouse() bool {
	return c >= MouseFirst && c <= MouseLast
}

// IsFunctionKey reports whether c is one of F1 through F12.
func (c Code) IsFunctionKey() bool {
	return c >= F1 && c <= F12
}

// IsKeypad reports whether c is a keypad key.
func (c Code) IsKeypad() bool {
	return c >= KPHome && c <= KPMultiply
}

// String returns the canonical name of the key. See ToString.
func (c Code) String() string {
	return ToString(c)
}
