package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, exchanges them for a bearer token and
// persists the session. Failures surface as an error notification; the user
// stays at the logged-out prompt and can retry.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.client.Authenticate(ctx, userName, password)
	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}

	if err := a.session.Set(token); err != nil {
		// The in-memory session is live either way; only persistence failed.
		a.log.Warn(ctx, "could not persist session", "error", err)
	}

	if exp, ok := a.session.ExpiresAt(); ok {
		fmt.Fprintf(a.out, "Logged in (session expires %s)\n", exp.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintln(a.out, "Logged in")
	}
	return nil
}

// Logout clears the session, in memory and on disk.
func (a *App) Logout() {
	a.session.Clear()
	fmt.Fprintln(a.out, "Logged out")
}
