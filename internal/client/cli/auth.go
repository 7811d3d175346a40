package cli

import (
	"context"
	"fmt"
	"strings"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and a "stay signed in" choice, then
// authenticates through the session manager. When a session expired earlier
// and the user was pointed to login, a successful login reminds them where
// they left off.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	stay, err := getSimpleText(a.reader, "Stay signed in on this terminal? (y/N)", a.out)
	if err != nil {
		return err
	}
	remember := strings.EqualFold(stay, "y") || strings.EqualFold(stay, "yes")

	user, err := a.session.Login(ctx, email, string(password), remember)
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", user.Name, user.Role)
	if rt := a.takeReturnTo(); rt != "" {
		fmt.Fprintf(a.out, "You were last on: %s\n", rt)
	}
	return nil
}

// Logout ends the session on the server (best effort) and clears all local
// session state.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Whoami prints the currently signed-in user.
func (a *App) Whoami(_ context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", u.Name, u.Email, u.Role)
	return nil
}
