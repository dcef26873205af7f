package input

import "github.com/dshills/keyroute/internal/input/key"

// WaitFunc intercepts the next key press. It receives the argument given
// to Arm and returns false to swallow the key.
type WaitFunc func(arg any, code key.Code) bool

// WaitHook is a one-shot key press interceptor used by "press a key to
// bind" flows. At most one hook is armed at a time.
type WaitHook struct {
	fn  WaitFunc
	arg any
}

// Arm installs fn, replacing any armed hook. A nil fn disarms.
func (h *WaitHook) Arm(fn WaitFunc, arg any) {
	h.fn = fn
	h.arg = arg
}

// Disarm removes the armed hook.
func (h *WaitHook) Disarm() {
	h.Arm(nil, nil)
}

// Armed reports whether a hook is installed.
func (h *WaitHook) Armed() bool {
	return h.fn != nil
}

// intercept runs the armed hook for code and reports whether the key was
// swallowed. The hook is disarmed before it runs, so it may re-arm itself.
func (h *WaitHook) intercept(code key.Code) bool {
	if h.fn == nil {
		return false
	}
	fn, arg := h.fn, h.arg
	h.Disarm()
	return !fn(arg, code)
}
