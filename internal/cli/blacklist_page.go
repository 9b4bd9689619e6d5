package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hkaraca/rmosdesk/internal/blacklist"
	"github.com/hkaraca/rmosdesk/internal/export"
	"github.com/hkaraca/rmosdesk/internal/render"
	"github.com/hkaraca/rmosdesk/internal/table"
)

// BlacklistPage runs the blacklist command loop: filter, browse, create and
// edit flagged-guest records.
func (a *App) BlacklistPage(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return
	}

	fmt.Fprintln(a.out, "Blacklist (type 'help' for page commands)")
	fmt.Fprintln(a.out, "Loading...")
	_ = a.blacklistCtl.InitialLoad(ctx)
	a.renderPage(a.blacklistCtl, blacklist.RenderSpec())

	for {
		if !a.isLoggedIn() {
			return
		}
		fmt.Fprint(a.out, "blacklist> ")
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
			fmt.Fprintln(a.out, "Commands: set <field> <value>, fields, filter, clear, list, new, edit <n>, show <n>, export <file.xlsx>, back")

		case "fields":
			a.printCriteria(a.blacklistCtl, blacklist.FilterFields)

		case "set":
			a.setCriterion(a.blacklistCtl, blacklist.FilterFields, parts[1:])

		case "filter":
			fmt.Fprintln(a.out, "Loading...")
			_ = a.blacklistCtl.Submit(ctx)
			a.renderPage(a.blacklistCtl, blacklist.RenderSpec())

		case "clear":
			fmt.Fprintln(a.out, "Loading...")
			_ = a.blacklistCtl.Clear(ctx)
			a.renderPage(a.blacklistCtl, blacklist.RenderSpec())

		case "list":
			a.renderPage(a.blacklistCtl, blacklist.RenderSpec())

		case "new":
			a.editor.OpenForCreate()
			a.runEditor(ctx)

		case "edit":
			row, ok := a.pickRow(a.blacklistCtl, parts[1:])
			if !ok {
				continue
			}
			if err := a.editor.OpenForEdit(row); err != nil {
				fmt.Fprintln(a.out, "[error]", err)
				continue
			}
			a.runEditor(ctx)

		case "show":
			row, ok := a.pickRow(a.blacklistCtl, parts[1:])
			if !ok {
				continue
			}
			render.Detail(a.out, row, blacklist.RenderSpec())

		case "export":
			a.exportPage(a.blacklistCtl, "Blacklist", parts[1:])

		case "back", "exit":
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}

// runEditor drives the create/edit workflow: a first pass prompting every
// editable field (Enter keeps the current value), then a small loop with
// set/save/cancel until the editor closes.
func (a *App) runEditor(ctx context.Context) {
	if a.editor.Mode() == blacklist.ModeEdit {
		fmt.Fprintln(a.out, "Editing record (Enter keeps the shown value)")
	} else {
		fmt.Fprintln(a.out, "New record (Enter leaves a field empty)")
	}

	for _, field := range blacklist.EditableFields() {
		current := a.editor.Field(field)
		value, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", field, current), a.out)
		if err != nil {
			a.editor.Close()
			return
		}
		if value != "" {
			a.editor.SetField(field, value)
		}
	}

	for a.editor.IsOpen() {
		fmt.Fprint(a.out, "edit (set <field> <value>, fields, save, cancel)> ")
		line, ok := a.readLine()
		if !ok {
			a.editor.Close()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "fields":
			for _, field := range blacklist.EditableFields() {
				fmt.Fprintf(a.out, "%s = %q\n", field, a.editor.Field(field))
			}

		case "set":
			if len(parts) < 2 {
				fmt.Fprintln(a.out, "Usage: set <field> <value>")
				continue
			}
			field := parts[1]
			if !contains(blacklist.EditableFields(), field) {
				fmt.Fprintln(a.out, "Unknown field:", field)
				continue
			}
			a.editor.SetField(field, strings.Join(parts[2:], " "))

		case "save":
			err := a.editor.Submit(ctx)
			var verrs blacklist.ValidationErrors
			if errors.As(err, &verrs) {
				for field, msg := range verrs {
					fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
				}
				continue
			}
			// Other failures already raised a notification; the editor
			// stays open with the draft intact so the user can retry.

		case "cancel":
			a.editor.Close()

		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
	a.renderPage(a.blacklistCtl, blacklist.RenderSpec())
}

// renderPage prints the controller's snapshot per the rendering contract:
// the error message in the failed state, the table (or a row count of zero)
// on success.
func (a *App) renderPage(ctl *table.Controller, spec render.FieldSpec) {
	snap := ctl.Snapshot()
	switch snap.State {
	case table.StateFailed:
		fmt.Fprintln(a.out, "[error]", snap.Err)
	case table.StateSuccess:
		if len(snap.Rows) == 0 {
			fmt.Fprintln(a.out, "0 records")
			return
		}
		render.Table(a.out, snap, spec)
		fmt.Fprintf(a.out, "%d record(s)\n", len(snap.Rows))
	}
}

func (a *App) printCriteria(ctl *table.Controller, fields []string) {
	for _, f := range fields {
		fmt.Fprintf(a.out, "%s = %q\n", f, ctl.Field(f))
	}
}

func (a *App) setCriterion(ctl *table.Controller, fields []string, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: set <field> [value]")
		return
	}
	field := args[0]
	if !contains(fields, field) {
		fmt.Fprintln(a.out, "Unknown field:", field)
		return
	}
	ctl.SetField(field, strings.Join(args[1:], " "))
}

func (a *App) pickRow(ctl *table.Controller, args []string) (*table.Row, bool) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: <command> <row number>")
		return nil, false
	}
	n, err := strconv.Atoi(args[0])
	snap := ctl.Snapshot()
	if err != nil || n < 1 || n > len(snap.Rows) {
		fmt.Fprintln(a.out, "No such row:", args[0])
		return nil, false
	}
	return &snap.Rows[n-1], true
}

func (a *App) exportPage(ctl *table.Controller, sheet string, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: export <file.xlsx>")
		return
	}
	if err := export.ToXLSX(args[0], sheet, ctl.Snapshot()); err != nil {
		a.notifier.Error("export failed: " + err.Error())
		return
	}
	a.notifier.Success("exported to " + args[0])
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
