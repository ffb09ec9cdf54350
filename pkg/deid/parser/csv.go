package parser

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/ukaji3/xlsdeid/pkg/deid/models"
)

const utf8BOM = "\ufeff"

// ReadCSV reads comma-separated records into a Table.
// Records may have differing field counts.
func ReadCSV(r io.Reader) (*models.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	return BuildTable(records), nil
}
