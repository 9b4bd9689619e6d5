// Package forecast specializes the generic table workflow for the occupancy
// forecast report: a fixed parameter set drives one stored-procedure
// endpoint, and the result renders as a table plus a bar chart. Read-only.
package forecast

import (
	"context"
	"strconv"

	"github.com/hkaraca/rmosdesk/internal/api"
	"github.com/hkaraca/rmosdesk/internal/logging"
	"github.com/hkaraca/rmosdesk/internal/render"
	"github.com/hkaraca/rmosdesk/internal/table"
)

// User-editable query parameters.
const (
	FieldStartDate = "xBas_Tar"
	FieldEndDate   = "xBit_Tar"
	FieldRoomType  = "kon1"
	FieldCompany   = "xRez_Sirket"
	FieldType      = "xtip"
)

// Fields lists the editable parameters in display order.
var Fields = []string{FieldStartDate, FieldEndDate, FieldRoomType, FieldCompany, FieldType}

// Defaults are the dashboard's initial query values.
var Defaults = map[string]string{
	FieldStartDate: "2024-06-01",
	FieldEndDate:   "2024-06-08",
	FieldRoomType:  "ALL",
	FieldCompany:   "9",
	FieldType:      "1",
}

// LabelField is the date column labeling the chart's x-axis.
const LabelField = "Tarih"

// constants is the server-specific parameter block the stored procedure
// requires verbatim on every call. Opaque to this client.
func constants() map[string]any {
	return map[string]any{
		"db_Id":                 9,
		"kon2":                  "BB",
		"xchkFis_Fazla_otel_10": 0,
		"bas_Yil":               2022,
		"bit_Yil":               2022,
		"fisrci_Kapalioda_10":   0,
		"xRez_C_W":              "C",
		"xSistem_Tarihi":        "2024-01-01",
		"xAlis_Tarihi":          "2024-01-01",
		"sistem_Bas1":           "2020-01-01",
		"sistem_Bit1":           "2029-01-01",
		"pmdahil_10":            0,
		"tip_1":                 "001",
		"xFis_Bela_tutar_10":    0,
		"trace_Dus_10":          0,
		"cev_01":                nil,
	}
}

// BuildPayload merges the constant block with the editable parameters.
// Unlike the blacklist filter, every parameter is always sent; the numeric
// type selector and company code are coerced back to numbers, since the
// procedure rejects them as strings.
func BuildPayload(criteria map[string]string) map[string]any {
	payload := constants()
	payload[FieldStartDate] = criteria[FieldStartDate]
	payload[FieldEndDate] = criteria[FieldEndDate]
	payload[FieldRoomType] = criteria[FieldRoomType]
	payload[FieldCompany] = numeric(criteria[FieldCompany], 9)
	payload[FieldType] = numeric(criteria[FieldType], 1)
	return payload
}

func numeric(s string, fallback int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return fallback
}

// Lister is the slice of the api client the page needs.
type Lister interface {
	PostValue(ctx context.Context, endpoint string, payload any, out any) error
}

// NewController builds the forecast table controller.
func NewController(client Lister, log logging.Logger) *table.Controller {
	fetch := func(ctx context.Context, payload map[string]any) ([]table.Row, error) {
		var rows []table.Row
		if err := client.PostValue(ctx, api.EndpointForecast, payload, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	return table.NewController(Defaults, BuildPayload, fetch, log)
}

// RenderSpec carries the forecast page's formatting tags.
func RenderSpec() render.FieldSpec {
	return render.FieldSpec{
		Dates: render.Fields(LabelField),
	}
}
