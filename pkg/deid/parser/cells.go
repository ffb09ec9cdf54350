// Package parser reads spreadsheet sources into tables.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsdeid/pkg/deid/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads a sheet into a Table.
// The first non-empty row is the header; the rows below it are data.
// Text cells stay strings; numeric cells keep their stored value.
func ReadSheet(f *excelize.File, sheetName string) (*models.Table, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var cellErr error
	t := buildTable(rows, false, func(rowIdx, colIdx int, s string) interface{} {
		ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
		if err != nil {
			cellErr = err
			return s
		}
		typ, err := f.GetCellType(sheetName, ref)
		if err != nil {
			cellErr = err
			return s
		}
		return sheetValue(typ, s, cellAt(raw, rowIdx, colIdx))
	})
	if cellErr != nil {
		return nil, cellErr
	}
	t.SheetName = sheetName
	return t, nil
}

// sheetValue types a workbook cell from its formatted and raw values.
func sheetValue(typ excelize.CellType, formatted, raw string) interface{} {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
	default:
		return formatted
	}
	if raw == "" {
		return formatted
	}
	if formatted != raw && !sameNumber(formatted, raw) {
		// A number format such as a date or percentage is part of the value.
		return formatted
	}
	v := parseValue(raw)
	if _, ok := v.(string); ok {
		// The stored value is a double, so a float keeps it exactly.
		if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return v
}

// sameNumber reports whether formatted is raw shown with fewer significant digits.
func sameNumber(formatted, raw string) bool {
	a, err := strconv.ParseFloat(formatted, 64)
	if err != nil {
		return false
	}
	b, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	return math.Abs(a-b) <= 1e-14*math.Max(math.Abs(a), math.Abs(b))
}

func cellAt(rows [][]string, rowIdx, colIdx int) string {
	if rowIdx < len(rows) && colIdx < len(rows[rowIdx]) {
		return rows[rowIdx][colIdx]
	}
	return ""
}

// BuildTable converts text records into a Table.
// Leading blank rows and columns are skipped, short rows are padded with nulls.
// Every record after the header is a data row, including trailing blank ones.
func BuildTable(rows [][]string) *models.Table {
	return buildTable(rows, true, func(_, _ int, s string) interface{} {
		return parseValue(s)
	})
}

func buildTable(rows [][]string, keepTrailing bool, value func(rowIdx, colIdx int, s string) interface{}) *models.Table {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return &models.Table{}
	}
	if keepTrailing {
		maxRow = len(rows) - 1
	}

	names := HeaderNames(sliceRow(rows[minRow], minCol, maxCol))
	cols := make([]models.Column, len(names))
	for i, name := range names {
		cols[i] = models.Column{
			Name:   name,
			Values: make([]interface{}, 0, maxRow-minRow),
		}
	}

	for rowIdx := minRow + 1; rowIdx <= maxRow; rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol; colIdx++ {
			var v interface{}
			if colIdx < len(row) && row[colIdx] != "" {
				v = value(rowIdx, colIdx, row[colIdx])
			}
			cols[colIdx-minCol].Values = append(cols[colIdx-minCol].Values, v)
		}
	}

	return &models.Table{Columns: cols}
}

func sliceRow(row []string, minCol, maxCol int) []string {
	out := make([]string, maxCol-minCol+1)
	for i := range out {
		if minCol+i < len(row) {
			out[i] = row[minCol+i]
		}
	}
	return out
}

// HeaderNames turns header cells into unique column names.
// Blank cells become "Unnamed: <i>" and repeated names get a ".<k>" suffix.
func HeaderNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if seen[name] {
			for k := 1; ; k++ {
				candidate := name + "." + strconv.Itoa(k)
				if !seen[candidate] {
					name = candidate
					break
				}
			}
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

// parseValue types a text cell as int64 or float64 when the number prints back
// as exactly the same text, and keeps it as a string otherwise.
// "1.50", "1e3", "007", "+5", "-0" and integers beyond int64 stay strings.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) == s {
			return i
		}
		return s
	}
	if isInteger(s) {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	if strconv.FormatFloat(f, 'f', -1, 64) != s {
		return s
	}
	return f
}

func isInteger(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
