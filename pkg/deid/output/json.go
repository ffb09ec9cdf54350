package output

import (
	"encoding/json"

	"github.com/ukaji3/xlsdeid/pkg/deid/models"
)

// ToJSON serializes a report to JSON.
func ToJSON(r *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(r, "", "  ")
	}
	return json.Marshal(r)
}
