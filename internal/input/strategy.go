package input

import (
	"fmt"

	"github.com/dshills/keyroute/internal/input/key"
)

// Strategy names accepted by StrategyByName.
const (
	StrategyRemap = "remap"
	StrategyChars = "chars"
)

// Strategy is the text-input behavior of the platform. It is chosen once
// at startup and consulted by the dispatcher at fixed pipeline steps.
type Strategy interface {
	// Name returns the strategy name.
	Name() string

	// Alias returns the key whose binding is consulted alongside code
	// while SHIFT is held, or code itself.
	Alias(code key.Code) key.Code

	// Synthesize derives the character typed by a key press that was
	// forwarded to a surface.
	Synthesize(code key.Code, mods key.Modifier) (rune, bool)

	// AcceptChar reports whether a character decoded by the platform is
	// forwarded to a surface.
	AcceptChar(ch rune, mods key.Modifier) bool
}

// StrategyByName returns the strategy registered under name.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case StrategyRemap, "":
		return NewRemapStrategy(), nil
	case StrategyChars:
		return NewCharStrategy(), nil
	default:
		return nil, fmt.Errorf("unknown input strategy %q", name)
	}
}

// RemapStrategy serves platforms that only report key transitions.
// Characters are synthesized from key presses with the shift table, and
// SHIFT+key may run the binding of the shifted character.
type RemapStrategy struct{}

// NewRemapStrategy creates a RemapStrategy.
func NewRemapStrategy() *RemapStrategy {
	return &RemapStrategy{}
}

// Name implements Strategy.
func (*RemapStrategy) Name() string { return StrategyRemap }

// Alias implements Strategy.
func (*RemapStrategy) Alias(code key.Code) key.Code {
	return key.Shifted(code)
}

// Synthesize implements Strategy.
func (*RemapStrategy) Synthesize(code key.Code, mods key.Modifier) (rune, bool) {
	if mods.HasCtrl() || mods.HasAlt() {
		return 0, false
	}
	code = key.KeypadASCII(code)
	if !code.IsPrintable() {
		return 0, false
	}
	if mods.HasShift() {
		code = key.Shifted(code)
	}
	return rune(code), true
}

// AcceptChar implements Strategy. The platform never decodes characters
// for this strategy, so stray ones are dropped.
func (*RemapStrategy) AcceptChar(rune, key.Modifier) bool {
	return false
}

// CharStrategy serves platforms that deliver decoded characters.
type CharStrategy struct{}

// NewCharStrategy creates a CharStrategy.
func NewCharStrategy() *CharStrategy {
	return &CharStrategy{}
}

// Name implements Strategy.
func (*CharStrategy) Name() string { return StrategyChars }

// Alias implements Strategy.
func (*CharStrategy) Alias(code key.Code) key.Code {
	return code
}

// Synthesize implements Strategy.
func (*CharStrategy) Synthesize(key.Code, key.Modifier) (rune, bool) {
	return 0, false
}

// AcceptChar implements Strategy. The character produced by the console
// toggle key is dropped unless SHIFT is held, matching the key-level
// toggle which only fires without SHIFT.
func (*CharStrategy) AcceptChar(ch rune, mods key.Modifier) bool {
	if isToggleKey(key.Code(ch)) && !mods.HasShift() {
		return false
	}
	return true
}

func isToggleKey(code key.Code) bool {
	return code == '`' || code == '~'
}
