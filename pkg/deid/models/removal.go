package models

// RemovalRecord represents the columns removed in pass one and their captured values.
type RemovalRecord struct {
	// Columns are the removed column names in table order.
	Columns []string `json:"columns"`
	// Values maps each removed column to its distinct non-null values, trimmed and sorted.
	Values map[string][]string `json:"values,omitempty"`
}

// Empty reports whether nothing was removed.
func (r *RemovalRecord) Empty() bool {
	return r == nil || len(r.Columns) == 0
}
