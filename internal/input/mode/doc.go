// Package mode tracks which input surfaces are up.
//
// The destination is a bitmask over the console, message entry and menu
// surfaces; Game is the empty mask. Several surfaces can be up at once,
// for example the console over a menu. A Router owns the mask and runs
// the side effects of changing it: releasing held keys when the console
// comes up, and notifying listeners (mouse capture, pause) when the
// console or menu is raised or lowered.
package mode
