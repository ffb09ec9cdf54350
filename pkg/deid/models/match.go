package models

// NameMatch represents a column flagged by name in pass one.
type NameMatch struct {
	// Column is the matched column name.
	Column string `json:"column"`
	// Matched lists the identifying strings found in the column name.
	Matched []string `json:"matched"`
}

// OverlapMatch represents a column flagged by value overlap in pass two.
type OverlapMatch struct {
	// Column is the flagged column name.
	Column string `json:"column"`
	// Values lists the known values found in the column, normalized and sorted.
	Values []string `json:"values,omitempty"`
	// Sources lists the removed columns the overlapping values were captured from.
	Sources []string `json:"sources,omitempty"`
}

// NameMatchColumns returns the column names of the matches in order.
func NameMatchColumns(matches []NameMatch) []string {
	cols := make([]string, len(matches))
	for i, m := range matches {
		cols[i] = m.Column
	}
	return cols
}

// OverlapMatchColumns returns the column names of the matches in order.
func OverlapMatchColumns(matches []OverlapMatch) []string {
	cols := make([]string, len(matches))
	for i, m := range matches {
		cols[i] = m.Column
	}
	return cols
}
