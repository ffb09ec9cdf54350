package output

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ukaji3/xlsdeid/pkg/deid/models"
	"github.com/ukaji3/xlsdeid/pkg/deid/parser"
	"github.com/xuri/excelize/v2"
)

func sampleTable() *models.Table {
	return &models.Table{
		SheetName: "People",
		Columns: []models.Column{
			{Name: "Name", Values: []interface{}{"Alice", "Bob", "Carol"}},
			{Name: "Age", Values: []interface{}{int64(30), nil, int64(41)}},
			{Name: "Score", Values: []interface{}{1.5, 2.25, nil}},
			{Name: "Zip", Values: []interface{}{"02134", "10001", "x"}},
		},
	}
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	table := sampleTable().Drop([]string{"Name"})
	path := filepath.Join(t.TempDir(), "out.xlsx")

	if err := WriteXLSX(table, path); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); !reflect.DeepEqual(sheets, []string{"People"}) {
		t.Errorf("Expected sheet People, got %v", sheets)
	}

	got, err := parser.ReadSheet(f, "People")
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}

	if !reflect.DeepEqual(got.ColumnNames(), []string{"Age", "Score", "Zip"}) {
		t.Errorf("Unexpected columns %v", got.ColumnNames())
	}
	if got.RowCount() != table.RowCount() {
		t.Fatalf("Expected %d rows, got %d", table.RowCount(), got.RowCount())
	}
	for i, col := range table.Columns {
		if !reflect.DeepEqual(got.Columns[i].Values, col.Values) {
			t.Errorf("Column %s: expected %v, got %v", col.Name, col.Values, got.Columns[i].Values)
		}
	}
}

func TestCSVRoundTripKeepsText(t *testing.T) {
	input := "Price,Member,Count\n1.50,12345678901234567890,1e3\n2.00,98765432109876543210,-0\n,,\n"

	table, err := parser.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(table, path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != input {
		t.Errorf("Expected output %q, got %q", input, string(data))
	}
}

func TestXLSXRoundTripKeepsText(t *testing.T) {
	table, err := parser.ReadCSV(strings.NewReader("Price,Member,Count\n1.50,12345678901234567890,1e3\n2.00,98765432109876543210,-0\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteXLSX(table, path); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	got, err := parser.ReadSheet(f, defaultSheet)
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}
	for i, col := range table.Columns {
		if !reflect.DeepEqual(got.Columns[i].Values, col.Values) {
			t.Errorf("Column %s: expected %v, got %v", col.Name, col.Values, got.Columns[i].Values)
		}
	}
}

func TestWriteXLSXInvalidSheetName(t *testing.T) {
	table := sampleTable()
	table.SheetName = "bad/name"
	path := filepath.Join(t.TempDir(), "out.xlsx")

	if err := WriteXLSX(table, path); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); !reflect.DeepEqual(sheets, []string{"Sheet1"}) {
		t.Errorf("Expected fallback sheet Sheet1, got %v", sheets)
	}
}

func TestWriteXLSXBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.xlsx")
	if err := WriteXLSX(sampleTable(), path); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := WriteCSV(sampleTable().Select([]string{"Age", "Zip"}), path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	expected := "Age,Zip\n30,02134\n,10001\n41,x\n"
	if string(data) != expected {
		t.Errorf("Expected %q, got %q", expected, string(data))
	}

	got, err := parser.ReadCSV(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if got.RowCount() != 3 {
		t.Errorf("Expected 3 rows, got %d", got.RowCount())
	}
}

func TestToJSON(t *testing.T) {
	r := &models.Report{SessionID: "abc", Columns: []string{"City"}, Rows: 2}

	data, err := ToJSON(r, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	expected := `{"session_id":"abc","source":"","state":"","identifying_strings":null,"columns":["City"],"rows":2}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}

	pretty, err := ToJSON(r, true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"rows\": 2") {
		t.Errorf("Expected indented output, got %s", pretty)
	}
}
