// Package blacklist specializes the generic table workflow for the flagged
// guest list: filter criteria, the ALL? wildcard payload, and the create/edit
// workflow against Kara/Ekle.
//
// The API speaks two naming conventions for the same fields: the form names
// used by filters ("Ad", "TCKN") and the server column names used by stored
// rows and the save payload ("Adi", "Tcno"). The translation lives in one
// mapping table below; both the edit-open path and the submit path consume
// it, nothing translates inline.
package blacklist

import (
	"time"

	"github.com/hkaraca/rmosdesk/internal/table"
)

// Fixed server constants on every blacklist request.
const (
	DatabaseID = 9 // db_Id, the target database
	QueryType  = 9 // Tip, the query type code
	Wildcard   = "ALL?"
)

// Filter criteria, by form name. Ad is the primary name field: when empty it
// is sent as the wildcard instead of being omitted.
const (
	FieldAd          = "Ad"
	FieldSoyadi      = "Soyadi"
	FieldTCKN        = "TCKN"
	FieldKimlikNo    = "KimlikNo"
	FieldDogumTarihi = "DogumTarihi"
)

// FilterFields lists the filter criteria in display order.
var FilterFields = []string{FieldAd, FieldSoyadi, FieldDogumTarihi, FieldKimlikNo, FieldTCKN}

// filterPayloadNames maps filter form names to list-request keys. Only the
// primary name field differs; the server grew the other keys later and kept
// the form spelling.
var filterPayloadNames = map[string]string{
	FieldAd:          "Adi",
	FieldSoyadi:      "Soyadi",
	FieldTCKN:        "TCKN",
	FieldKimlikNo:    "KimlikNo",
	FieldDogumTarihi: "DogumTarihi",
}

// fieldMap is the bidirectional form↔server mapping for editable fields, in
// modal display order. Server names are the stored row columns and the
// Kara/Ekle payload keys.
var fieldMap = []struct {
	Form   string
	Server string
}{
	{"Ad", "Adi"},
	{"Soyadi", "Soy"},
	{"TCKN", "Tcno"},
	{"KimlikNo", "Kimlik_no"},
	{"DogumTarihi", "Dogum_tarihi"},
	{"Aciklama", "Aciklama"},
	{"Sistem_grubu", "Sistem_grubu"},
	{"Otel_kodu", "Otel_kodu"},
	{"Ulke_xml", "Ulke_xml"},
	{"Acenta", "Acenta"},
}

// EditableFields lists the modal's form field names in display order.
func EditableFields() []string {
	out := make([]string, len(fieldMap))
	for i, f := range fieldMap {
		out[i] = f.Form
	}
	return out
}

// draftValueFromRow extracts the form value for one editable field from a
// stored row, accepting either naming convention (older rows carry form
// names). Server date timestamps are reduced to the YYYY-MM-DD the date
// input expects.
func draftValueFromRow(row *table.Row, form, server string) string {
	v, ok := row.Get(server)
	if !ok || v.Kind == table.KindNull || v.Text == "" {
		v, ok = row.Get(form)
		if !ok || v.Kind == table.KindNull {
			return ""
		}
	}
	if form == FieldDogumTarihi && v.Kind == table.KindDate {
		return v.Date.Format(dateInputLayout)
	}
	return v.Text
}

const dateInputLayout = "2006-01-02"

// nowISO mirrors the dashboard's creation timestamp: current time in UTC,
// ISO-8601 with millisecond precision.
func nowISO(now time.Time) string {
	return now.UTC().Format("2006-01-02T15:04:05.000Z")
}
