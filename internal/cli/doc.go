// Package cli provides the interactive rmosdesk terminal client.
//
// It wires configuration, the session store, the RMOS API client and the two
// page controllers into a REPL. Typical flow: restore or prompt for a
// session, then move between the blacklist and forecast pages, each with its
// own command loop.
//
// Key features:
//   - Login / Logout against the RMOS token service
//   - Blacklist page: filter, browse, create and edit flagged-guest records
//   - Forecast page: run the report, view it as a table and a bar chart
//   - XLSX export of the current result set
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
