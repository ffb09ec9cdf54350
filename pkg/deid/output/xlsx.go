// Package output writes tables and reports.
package output

import (
	"github.com/ukaji3/xlsdeid/pkg/deid/models"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// WriteXLSX writes a table to an xlsx workbook with a header row.
// The sheet keeps the table's sheet name when it is a valid Excel sheet name.
func WriteXLSX(t *models.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := defaultSheet
	if t.SheetName != "" && t.SheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, t.SheetName); err == nil {
			sheet = t.SheetName
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(t.Columns))
	for i, name := range t.ColumnNames() {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for r := 0; r < t.RowCount(); r++ {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, t.Row(r)); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
