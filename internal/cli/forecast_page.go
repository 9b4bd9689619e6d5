package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/hkaraca/rmosdesk/internal/forecast"
	"github.com/hkaraca/rmosdesk/internal/render"
)

// ForecastPage runs the forecast report loop: adjust the query parameters,
// run the report, view the result as a table or a bar chart.
func (a *App) ForecastPage(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return
	}

	fmt.Fprintln(a.out, "Forecast (type 'help' for page commands)")
	fmt.Fprintln(a.out, "Loading...")
	_ = a.forecastCtl.InitialLoad(ctx)
	a.renderPage(a.forecastCtl, forecast.RenderSpec())

	for {
		if !a.isLoggedIn() {
			return
		}
		fmt.Fprint(a.out, "forecast> ")
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
			fmt.Fprintln(a.out, "Commands: set <field> <value>, fields, run, list, chart, export <file.xlsx>, back")

		case "fields":
			a.printCriteria(a.forecastCtl, forecast.Fields)

		case "set":
			a.setCriterion(a.forecastCtl, forecast.Fields, parts[1:])

		case "run":
			fmt.Fprintln(a.out, "Loading...")
			_ = a.forecastCtl.Submit(ctx)
			a.renderPage(a.forecastCtl, forecast.RenderSpec())

		case "list":
			a.renderPage(a.forecastCtl, forecast.RenderSpec())

		case "chart":
			snap := a.forecastCtl.Snapshot()
			if len(snap.Rows) == 0 {
				fmt.Fprintln(a.out, "nothing to chart")
				continue
			}
			render.BarChart(a.out, snap, forecast.LabelField)

		case "export":
			a.exportPage(a.forecastCtl, "Forecast", parts[1:])

		case "back", "exit":
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}
