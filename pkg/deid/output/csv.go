package output

import (
	"encoding/csv"
	"os"

	"github.com/ukaji3/xlsdeid/pkg/deid/models"
)

// WriteCSV writes a table as comma-separated records with a header row.
func WriteCSV(t *models.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.ColumnNames()); err != nil {
		f.Close()
		return err
	}

	record := make([]string, len(t.Columns))
	for r := 0; r < t.RowCount(); r++ {
		for i, v := range t.Row(r) {
			record[i] = cellText(v)
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// cellText formats a cell without trimming so string cells are written unchanged.
func cellText(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	s, _ := models.CellString(v)
	return s
}
