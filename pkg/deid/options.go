// Package deid removes personally identifying columns from spreadsheets.
package deid

import "github.com/ukaji3/xlsdeid/pkg/deid/match"

// DefaultIdentifyingStrings are the name substrings a new session starts with.
var DefaultIdentifyingStrings = []string{"name", "dob"}

// DefaultPreviewRows is the number of rows shown in previews.
const DefaultPreviewRows = 10

// Options configures a de-identification session.
type Options struct {
	// Sheet names the sheet to read. Empty means the first sheet.
	Sheet string
	// IdentifyingStrings seeds the identifying string set.
	// If nil, DefaultIdentifyingStrings is used.
	IdentifyingStrings []string
	// CaseInsensitiveValues compares pass two values ignoring case.
	CaseInsensitiveValues bool
	// CanonicalNumbers compares numeric text by value in pass two.
	// If nil, defaults to true.
	CanonicalNumbers *bool
	// PreviewRows limits previews. Zero means DefaultPreviewRows.
	PreviewRows int
}

// DefaultOptions returns default session options.
func DefaultOptions() Options {
	return Options{}
}

// InitialIdentifyingStrings returns the identifying strings a session starts with.
func (o Options) InitialIdentifyingStrings() []string {
	if o.IdentifyingStrings != nil {
		return o.IdentifyingStrings
	}
	return DefaultIdentifyingStrings
}

// ShouldCanonicalizeNumbers returns whether numeric text is compared by value.
func (o Options) ShouldCanonicalizeNumbers() bool {
	if o.CanonicalNumbers != nil {
		return *o.CanonicalNumbers
	}
	return true
}

// Normalization returns the pass two value comparison rule.
func (o Options) Normalization() match.Normalization {
	return match.Normalization{
		CaseInsensitive:  o.CaseInsensitiveValues,
		CanonicalNumbers: o.ShouldCanonicalizeNumbers(),
	}
}

// PreviewLimit returns the number of rows shown in previews.
func (o Options) PreviewLimit() int {
	if o.PreviewRows > 0 {
		return o.PreviewRows
	}
	return DefaultPreviewRows
}
