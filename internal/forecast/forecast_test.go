package forecast

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkaraca/rmosdesk/internal/logging"
	"github.com/hkaraca/rmosdesk/internal/table"
)

type fakeLister struct {
	endpoint string
	payload  map[string]any
	rows     string
}

func (f *fakeLister) PostValue(_ context.Context, endpoint string, payload any, out any) error {
	f.endpoint = endpoint
	raw, _ := json.Marshal(payload)
	_ = json.Unmarshal(raw, &f.payload)
	return json.Unmarshal([]byte(f.rows), out)
}

func TestBuildPayload_Defaults(t *testing.T) {
	payload := BuildPayload(Defaults)

	assert.Equal(t, "2024-06-01", payload[FieldStartDate])
	assert.Equal(t, "2024-06-08", payload[FieldEndDate])
	assert.Equal(t, "ALL", payload[FieldRoomType])
	assert.Equal(t, 9, payload[FieldCompany])
	assert.Equal(t, 1, payload[FieldType])

	// The procedure's fixed parameter block rides along unchanged.
	assert.Equal(t, 9, payload["db_Id"])
	assert.Equal(t, "BB", payload["kon2"])
	assert.Equal(t, "C", payload["xRez_C_W"])
	assert.Equal(t, "001", payload["tip_1"])
	assert.Nil(t, payload["cev_01"])
	assert.Contains(t, payload, "cev_01")
}

func TestBuildPayload_NumericCoercion(t *testing.T) {
	criteria := map[string]string{
		FieldStartDate: "2024-07-01",
		FieldEndDate:   "2024-07-08",
		FieldRoomType:  "STD",
		FieldCompany:   "12",
		FieldType:      "abc",
	}
	payload := BuildPayload(criteria)

	assert.Equal(t, 12, payload[FieldCompany])
	assert.Equal(t, 1, payload[FieldType], "unparsable selector falls back to the default")
}

func TestNewController_RunsProcedure(t *testing.T) {
	lister := &fakeLister{rows: `[
		{"Tarih": "2024-06-01T00:00:00", "Oda": 40, "Gelir": 1250.5},
		{"Tarih": "2024-06-02T00:00:00", "Oda": 38, "Gelir": 1100}
	]`}
	ctrl := NewController(lister, logging.NewTextLogger(io.Discard, false))

	require.NoError(t, ctrl.Submit(context.Background()))

	assert.Equal(t, "/api/Procedure/StpRmforKlasik_2", lister.endpoint)
	assert.Equal(t, "ALL", lister.payload[FieldRoomType])
	assert.EqualValues(t, 9, lister.payload[FieldCompany])

	snap := ctrl.Snapshot()
	assert.Equal(t, table.StateSuccess, snap.State)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, []string{"Tarih", "Oda", "Gelir"}, snap.Columns())
}

func TestController_SetFieldChangesPayload(t *testing.T) {
	lister := &fakeLister{rows: `[]`}
	ctrl := NewController(lister, logging.NewTextLogger(io.Discard, false))

	ctrl.SetField(FieldStartDate, "2024-08-01")
	require.NoError(t, ctrl.Submit(context.Background()))
	assert.Equal(t, "2024-08-01", lister.payload[FieldStartDate])

	// Clear restores the defaults and refetches.
	require.NoError(t, ctrl.Clear(context.Background()))
	assert.Equal(t, "2024-06-01", lister.payload[FieldStartDate])
}
