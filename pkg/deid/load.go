package deid

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/xlsdeid/pkg/deid/models"
	"github.com/ukaji3/xlsdeid/pkg/deid/parser"
	"github.com/xuri/excelize/v2"
)

// FileLoader reads xlsx and csv files.
type FileLoader struct {
	// Sheet names the sheet to read. Empty means the first sheet.
	Sheet string
}

// Load reads the file at path into a table.
// Any failure, including a table with no columns, is returned as a *LoadError.
func (l FileLoader) Load(path string) (*models.Table, error) {
	t, err := l.load(path)
	if err != nil {
		return nil, NewLoadError(path, err)
	}
	if len(t.Columns) == 0 {
		return nil, NewLoadError(path, ErrEmptyTable)
	}
	return t, nil
}

func (l FileLoader) load(path string) (*models.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrFileNotFound
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return l.loadWorkbook(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return parser.ReadCSV(f)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func (l FileLoader) loadWorkbook(path string) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheetName := l.Sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyTable
		}
		sheetName = sheets[0]
	}

	return parser.ReadSheet(f, sheetName)
}

// SQLLoader reads database tables. The source passed to Load is a table name.
type SQLLoader struct {
	DB *sql.DB
}

// Load reads every row of the named table.
// Any failure, including a table with no columns, is returned as a *LoadError.
func (l SQLLoader) Load(table string) (*models.Table, error) {
	t, err := parser.ReadSQLTable(l.DB, table)
	if err != nil {
		return nil, NewLoadError(table, err)
	}
	if len(t.Columns) == 0 {
		return nil, NewLoadError(table, ErrEmptyTable)
	}
	return t, nil
}
