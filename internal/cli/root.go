package cli

import (
	"context"
	"fmt"
	"strings"
)

// Run starts the top-level REPL and blocks until the user exits. A persisted
// session is used when present; otherwise the user is prompted to log in
// right away, matching the dashboard's login-first boundary.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to rmosdesk (type 'help' for commands)")

	if a.isLoggedIn() {
		if exp, ok := a.session.ExpiresAt(); ok {
			fmt.Fprintf(a.out, "Restored session (expires %s)\n", exp.Format("2006-01-02 15:04"))
		} else {
			fmt.Fprintln(a.out, "Restored session")
		}
	} else {
		_ = a.Login(ctx)
	}

	for {
		fmt.Fprintf(a.out, "rmos %s> ", a.getStatus())
		line, ok := a.readLine()
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: blacklist, forecast, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			a.Logout()

		case "blacklist":
			a.BlacklistPage(ctx)

		case "forecast":
			a.ForecastPage(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}

// readLine reads one input line; ok is false on EOF.
func (a *App) readLine() (string, bool) {
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}
