// Package models defines data structures for spreadsheet de-identification.
package models

import (
	"strconv"
	"strings"
)

// CellString returns the string form of a cell value used for comparison.
// It reports false for null cells and cells that are blank after trimming.
func CellString(v interface{}) (string, bool) {
	var s string
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s = x
	case int64:
		s = strconv.FormatInt(x, 10)
	case int:
		s = strconv.Itoa(x)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(x)
	case []byte:
		s = string(x)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}
