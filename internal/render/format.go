// Package render turns row snapshots into terminal output: a column-aligned
// table and a horizontal bar chart. It is purely presentational; column
// choice and data loading happen in the controller.
package render

import (
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/hkaraca/rmosdesk/internal/table"
)

// DateDisplayLayout is how date-tagged cells render, matching the dashboard's
// day-first locale.
const DateDisplayLayout = "02.01.2006"

// numPrinter formats numbers with tr-TR digit grouping.
var numPrinter = message.NewPrinter(language.Turkish)

// FieldSpec carries the per-page semantic tags driving cell formatting:
// long-text fields truncate, date fields render as localized dates. Fields
// not named render as-is (numbers still get digit grouping).
type FieldSpec struct {
	LongText map[string]bool
	Dates    map[string]bool

	// TruncateAt is the rune budget for long-text cells; 0 means the default.
	TruncateAt int
}

const defaultTruncateAt = 28

// Fields builds a set from a list of field names.
func Fields(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// CellText renders one cell according to the page's field tags.
func (fs FieldSpec) CellText(field string, v table.Value) string {
	switch v.Kind {
	case table.KindNull:
		return ""
	case table.KindNumber:
		return FormatNumber(v.Number, v.Text)
	case table.KindDate:
		if fs.Dates[field] {
			return v.Date.Format(DateDisplayLayout)
		}
	}
	text := v.Text
	if fs.LongText[field] {
		text = truncate(text, fs.truncateAt())
	}
	return text
}

func (fs FieldSpec) truncateAt() int {
	if fs.TruncateAt > 0 {
		return fs.TruncateAt
	}
	return defaultTruncateAt
}

// FormatNumber renders a numeric cell with locale-aware grouping. Integers
// keep no decimals; fractional values keep the precision the server sent.
func FormatNumber(f float64, raw string) string {
	if f == math.Trunc(f) {
		return numPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(0)))
	}
	scale := 0
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		scale = len(raw) - i - 1
	}
	return numPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(scale), number.MinFractionDigits(scale)))
}

func truncate(s string, at int) string {
	if utf8.RuneCountInString(s) <= at {
		return s
	}
	runes := []rune(s)
	return string(runes[:at-1]) + "…"
}
