package blacklist

import (
	"context"

	"github.com/hkaraca/rmosdesk/internal/api"
	"github.com/hkaraca/rmosdesk/internal/logging"
	"github.com/hkaraca/rmosdesk/internal/render"
	"github.com/hkaraca/rmosdesk/internal/table"
)

// Lister is the slice of the api client the page needs. *api.Client
// satisfies it.
type Lister interface {
	PostValue(ctx context.Context, endpoint string, payload any, out any) error
}

// NewController builds the blacklist table controller: empty criteria by
// default, payload per BuildListPayload, fetch against Kara/Getir_Kod.
func NewController(client Lister, log logging.Logger) *table.Controller {
	defaults := make(map[string]string, len(FilterFields))
	for _, f := range FilterFields {
		defaults[f] = ""
	}
	fetch := func(ctx context.Context, payload map[string]any) ([]table.Row, error) {
		var rows []table.Row
		if err := client.PostValue(ctx, api.EndpointBlacklistGet, payload, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	return table.NewController(defaults, BuildListPayload, fetch, log)
}

// BuildListPayload shapes the Kara/Getir_Kod request: fixed constants plus
// the criteria translated to list-request keys, empty Ad replaced by the
// wildcard, other empty criteria omitted.
func BuildListPayload(criteria map[string]string) map[string]any {
	translated := make(map[string]string, len(criteria))
	for form, v := range criteria {
		key, ok := filterPayloadNames[form]
		if !ok {
			key = form
		}
		translated[key] = v
	}
	return table.MergePayload(map[string]any{
		"db_Id": DatabaseID,
		"Tip":   QueryType,
	}, translated, "Adi", Wildcard)
}

// RenderSpec carries the blacklist page's formatting tags: the description
// column truncates, the two server timestamps render as dates.
func RenderSpec() render.FieldSpec {
	return render.FieldSpec{
		LongText: render.Fields("Aciklama"),
		Dates:    render.Fields("Dogum_tarihi", "Sistem_tarihi", "DogumTarihi", "SistemTarihi"),
	}
}
