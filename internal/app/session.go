package app

// session is the connection state the dispatcher and router consult.
// It also stands in for the game server, answering client commands
// locally.
type session struct {
	app *Application

	connected bool
	overlay   bool
	replaying bool
}

func (s *session) Active() bool        { return s.connected }
func (s *session) OverlayActive() bool { return s.overlay }
func (s *session) Replaying() bool     { return s.replaying }

// ClientCommand handles a command addressed to the server.
func (s *session) ClientCommand(cmd string) {
	s.app.log.Debug("client command %q", cmd)
	switch cmd {
	case "putaway":
		s.overlay = false
		s.app.Printf("inventory closed\n")
	default:
		s.app.Printf("server: %s\n", cmd)
	}
}
