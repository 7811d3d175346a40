// Package nav abstracts "send the user somewhere" so the session layer can
// force a return to the login view without knowing what the frontend is.
package nav

// Navigator redirects the user to a named location. returnTo, when
// non-empty, is the location to restore after re-authentication.
type Navigator interface {
	ToLogin(returnTo string)
}

// Nop ignores navigation requests. Useful in tests and batch tooling.
type Nop struct{}

func (Nop) ToLogin(string) {}
