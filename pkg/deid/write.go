package deid

import (
	"path/filepath"
	"strings"

	"github.com/ukaji3/xlsdeid/pkg/deid/models"
	"github.com/ukaji3/xlsdeid/pkg/deid/output"
)

// FileWriter writes xlsx and csv files, chosen by extension.
type FileWriter struct{}

// Write writes t to path. Any failure is returned as a *WriteError.
func (FileWriter) Write(t *models.Table, path string) error {
	if strings.TrimSpace(path) == "" {
		return NewWriteError(path, ErrEmptyOutputName)
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		err = output.WriteXLSX(t, path)
	case ".csv":
		err = output.WriteCSV(t, path)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return NewWriteError(path, err)
	}
	return nil
}

// DefaultOutputName returns "<base>_deidentified<ext>" for an input path.
// Templates (.xltx, .xltm) are written as workbooks (.xlsx, .xlsm).
// Sources without a spreadsheet extension (database tables) get ".xlsx".
func DefaultOutputName(input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	switch strings.ToLower(ext) {
	case ".xltx":
		return strings.TrimSuffix(base, ext) + "_deidentified.xlsx"
	case ".xltm":
		return strings.TrimSuffix(base, ext) + "_deidentified.xlsm"
	}
	if !writable(ext) {
		return base + "_deidentified.xlsx"
	}
	return strings.TrimSuffix(base, ext) + "_deidentified" + ext
}

func writable(ext string) bool {
	switch strings.ToLower(ext) {
	case ".xlsx", ".xlsm", ".csv":
		return true
	}
	return false
}

// OutputName resolves the requested output name so it never equals the input name.
// A name matching the input's base name is prefixed with "deidentified_".
func OutputName(input, requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return ""
	}
	base := filepath.Base(requested)
	if base == filepath.Base(input) {
		return filepath.Join(filepath.Dir(requested), "deidentified_"+base)
	}
	return requested
}
