package match

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-set/v2"
	"github.com/ukaji3/xlsdeid/pkg/deid/models"
)

// Normalization controls how cell values are compared in pass two.
// Values are always trimmed; null and blank cells are never compared.
type Normalization struct {
	// CaseInsensitive compares values after lowercasing.
	CaseInsensitive bool
	// CanonicalNumbers compares numeric text by value, so "5", "5.0" and "5.00" are equal.
	// Text with a leading zero ("007") or an explicit plus sign is never treated as a number.
	CanonicalNumbers bool
}

// Normalize returns the comparison key for an already stringified value.
func (n Normalization) Normalize(s string) string {
	s = strings.TrimSpace(s)
	if n.CanonicalNumbers {
		if c, ok := canonicalNumber(s); ok {
			return c
		}
	}
	if n.CaseInsensitive {
		s = strings.ToLower(s)
	}
	return s
}

func canonicalNumber(s string) (string, bool) {
	if s == "" || s[0] == '+' {
		return "", false
	}
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return "", false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10), true
	}
	if strings.Trim(digits, "0123456789") == "" {
		// integer beyond int64; compare as text
		return "", false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	if f == 0 {
		f = 0 // drop negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// Distinct returns the distinct normalized non-null values of a column.
func Distinct(values []interface{}, n Normalization) *set.Set[string] {
	out := set.New[string](len(values))
	for _, v := range values {
		if s, ok := models.CellString(v); ok {
			out.Insert(n.Normalize(s))
		}
	}
	return out
}

// Values returns the columns whose distinct values intersect known.
// known must hold keys produced by the same Normalization.
// Each match lists the overlapping values, sorted.
func Values(columns []models.Column, known *set.Set[string], n Normalization) []models.OverlapMatch {
	if known == nil || known.Empty() {
		return nil
	}

	var matches []models.OverlapMatch
	for _, col := range columns {
		var hits []string
		for _, v := range Distinct(col.Values, n).Slice() {
			if known.Contains(v) {
				hits = append(hits, v)
			}
		}
		if len(hits) == 0 {
			continue
		}
		sort.Strings(hits)
		matches = append(matches, models.OverlapMatch{Column: col.Name, Values: hits})
	}
	return matches
}
