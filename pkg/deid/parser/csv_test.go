package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeffName,DOB,City\nAlice,1990-01-01,Paris\nBob,,\n"

	table, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if got := table.ColumnNames(); !reflect.DeepEqual(got, []string{"Name", "DOB", "City"}) {
		t.Errorf("Unexpected columns %v", got)
	}
	city, _ := table.Column("City")
	if !reflect.DeepEqual(city.Values, []interface{}{"Paris", nil}) {
		t.Errorf("Unexpected City values %v", city.Values)
	}
}

func TestReadCSVTrailingBlankRecord(t *testing.T) {
	input := "Name,DOB,City,Zip\nAlice,1990,Paris,02134\nBob,1985,Rome,10001\n,,,\n"

	table, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if table.RowCount() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.RowCount())
	}
	if row := table.Row(2); !reflect.DeepEqual(row, []interface{}{nil, nil, nil, nil}) {
		t.Errorf("Expected an all-null last row, got %v", row)
	}
}

func TestReadCSVMalformed(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("a,\"b\nc")); err == nil {
		t.Error("Expected error for unterminated quote")
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"people", "`people`"},
		{"crm.people", "`crm`.`people`"},
		{"we`ird", "`we``ird`"},
	}

	for _, tt := range tests {
		if result := QuoteIdent(tt.input); result != tt.expected {
			t.Errorf("QuoteIdent(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}
