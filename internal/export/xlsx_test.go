package export

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hkaraca/rmosdesk/internal/table"
)

func snapFromJSON(t *testing.T, data string) table.Snapshot {
	t.Helper()
	var rows []table.Row
	require.NoError(t, json.Unmarshal([]byte(data), &rows))
	return table.Snapshot{State: table.StateSuccess, Rows: rows}
}

func TestToXLSX_EmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	err := ToXLSX(path, "Rapor", table.Snapshot{State: table.StateSuccess})
	assert.ErrorIs(t, err, ErrNoData)
	assert.NoFileExists(t, path)
}

func TestToXLSX_WritesWorkbook(t *testing.T) {
	snap := snapFromJSON(t, `[
		{"Adi": "Mehmet", "Oda": 40, "Not": null},
		{"Adi": "Ayşe", "Oda": 38.5}
	]`)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, ToXLSX(path, "Rapor", snap))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Rapor"}, f.GetSheetList())

	rows, err := f.GetRows("Rapor")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Adi", "Oda", "Not"}, rows[0])
	assert.Equal(t, "Mehmet", rows[1][0])

	// Numbers keep their scale on the way through.
	v, err := f.GetCellValue("Rapor", "B2")
	require.NoError(t, err)
	assert.Equal(t, "40", v)
	v, err = f.GetCellValue("Rapor", "B3")
	require.NoError(t, err)
	assert.Equal(t, "38.5", v)
}

func TestToXLSX_DefaultSheetName(t *testing.T) {
	snap := snapFromJSON(t, `[{"Adi": "Mehmet"}]`)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, ToXLSX(path, "", snap))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}
