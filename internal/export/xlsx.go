// Package export writes the current result snapshot to an .xlsx workbook.
package export

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hkaraca/rmosdesk/internal/table"
)

// ErrNoData is returned when the snapshot has nothing to export.
var ErrNoData = errors.New("nothing to export")

// ToXLSX writes the snapshot to path, one sheet, header row first. Columns
// follow the table's policy: the first row's key set. Numeric cells keep
// their numeric type; dates and text go in verbatim.
func ToXLSX(path, sheet string, snap table.Snapshot) error {
	cols := snap.Columns()
	if len(cols) == 0 {
		return ErrNoData
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = "Sheet1"
	} else {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	for ci, col := range cols {
		cell, err := excelize.CoordinatesToCellName(ci+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	for ri := range snap.Rows {
		row := &snap.Rows[ri]
		for ci, col := range cols {
			v, ok := row.Get(col)
			if !ok || v.Kind == table.KindNull {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return err
			}
			var cellValue any = v.Text
			if v.Kind == table.KindNumber {
				cellValue = v.Number
			}
			if err := f.SetCellValue(sheet, cell, cellValue); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
