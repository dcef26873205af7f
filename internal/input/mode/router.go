package mode

// Connection reports whether the client has an active game session.
type Connection interface {
	Active() bool
}

// ChangeCallback is called after the console or menu surface was raised
// or lowered.
type ChangeCallback func(from, to Destination)

// Router holds the active destination and the console overstrike flag and
// applies the side effects of switching destinations.
//
// Router is not safe for concurrent use; it belongs to the goroutine that
// dispatches key events.
type Router struct {
	conn       Connection
	dest       Destination
	overstrike bool

	// release drops every held key before the console comes up.
	release func()

	// callbacks are notified when the console or menu bit changes.
	callbacks []ChangeCallback
}

// NewRouter creates a router in the Game destination.
func NewRouter(conn Connection) *Router {
	return &Router{conn: conn}
}

// SetReleaser sets the function that releases all held keys.
func (r *Router) SetReleaser(release func()) {
	r.release = release
}

// OnChange registers a callback for console or menu transitions.
// Returns a function to unregister the callback.
func (r *Router) OnChange(callback ChangeCallback) func() {
	r.callbacks = append(r.callbacks, callback)
	index := len(r.callbacks) - 1

	return func() {
		// Remove callback by setting to nil (preserves indices)
		if index < len(r.callbacks) {
			r.callbacks[index] = nil
		}
	}
}

// Destination returns the active destination.
func (r *Router) Destination() Destination {
	return r.dest
}

// SetDestination switches to dest.
//
// Without an active connection the console is forced up unless dest
// already raises the menu or console. Held keys are released, still
// routed to the old destination, before the console comes up.
func (r *Router) SetDestination(dest Destination) {
	if !r.connected() && !dest.HasAny(Menu|Console) {
		dest |= Console
	}

	diff := r.dest ^ dest
	if diff&Console != 0 && dest&Console != 0 && r.release != nil {
		r.release()
	}

	from := r.dest
	r.dest = dest

	if diff&(Console|Menu) != 0 {
		for _, cb := range r.callbacks {
			if cb != nil {
				cb(from, dest)
			}
		}
	}
}

// Overstrike returns the console insert-versus-overwrite flag.
func (r *Router) Overstrike() bool {
	return r.overstrike
}

// SetOverstrike sets the console insert-versus-overwrite flag.
func (r *Router) SetOverstrike(on bool) {
	r.overstrike = on
}

func (r *Router) connected() bool {
	return r.conn != nil && r.conn.Active()
}
