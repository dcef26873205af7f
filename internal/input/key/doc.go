// Package key defines key codes and the static key name table.
//
// A key code is an integer in [0, NumCodes). The sub-ranges are:
//
//   - Printable ASCII (32 through 126): letters are always reported in
//     lower case and name themselves ("a", "7", "[").
//   - Named special keys: editing and navigation keys, modifiers,
//     function keys and the keypad.
//   - Pointing-device buttons and wheel directions, starting at MouseFirst.
//
// None (-1) is the sentinel for "no such key". Every conversion in this
// package is total: unknown names map to None and unknown codes map to
// the NotFound or Unknown strings.
package key
