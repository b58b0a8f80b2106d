package views

// LoggedIn is emitted by the auth view once a session is established.
type LoggedIn struct {
	Username string
}
