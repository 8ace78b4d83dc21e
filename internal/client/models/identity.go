package models

// Identity is the locally persisted account of the current session.
type Identity struct {
	// UserID is the server-assigned user identifier.
	UserID Optional[string]

	// Email is the login email; set together with UserID.
	Email Optional[string]

	// AuthToken is the bearer token issued by the gateway, if any.
	AuthToken Optional[string]
}

// LoggedIn reports whether both user id and email are known.
func (i Identity) LoggedIn() bool {
	return i.UserID.Present && i.Email.Present
}
