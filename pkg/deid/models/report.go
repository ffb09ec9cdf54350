package models

// Report represents the outcome of a de-identification session.
type Report struct {
	// SessionID identifies the session that produced the report.
	SessionID string `json:"session_id"`
	// Source is the input file path or SQL table name.
	Source string `json:"source"`
	// SheetName is the sheet the table was read from.
	SheetName string `json:"sheet_name,omitempty"`
	// State is the session state when the report was taken.
	State string `json:"state"`
	// IdentifyingStrings are the substrings used for pass one.
	IdentifyingStrings []string `json:"identifying_strings"`
	// PassOne holds the pass one matches (nil if pass one was not run).
	PassOne []NameMatch `json:"pass_one,omitempty"`
	// Removal is the pass one removal record.
	Removal *RemovalRecord `json:"removal,omitempty"`
	// PassTwo holds the pass two matches (nil if pass two was not run).
	PassTwo []OverlapMatch `json:"pass_two,omitempty"`
	// PassTwoRemoved lists the columns removed in pass two.
	PassTwoRemoved []string `json:"pass_two_removed,omitempty"`
	// Columns are the surviving column names.
	Columns []string `json:"columns"`
	// Rows is the number of data rows.
	Rows int `json:"rows"`
	// Output is the written file path, if any.
	Output string `json:"output,omitempty"`
}
