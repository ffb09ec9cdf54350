package models

// Column represents a named column of cell values.
type Column struct {
	// Name is the header text of the column, unique within its table.
	Name string `json:"name"`
	// Values holds one cell per row. Empty cells are nil, others are int64, float64 or string.
	Values []interface{} `json:"values"`
}

// Table represents a sheet as an ordered sequence of equally long columns.
type Table struct {
	// SheetName is the sheet (or SQL table) the data was read from.
	SheetName string `json:"sheet_name,omitempty"`
	// Columns are the table columns in sheet order.
	Columns []Column `json:"columns"`
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	if i := t.Index(name); i >= 0 {
		return t.Columns[i], true
	}
	return Column{}, false
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) []interface{} {
	row := make([]interface{}, len(t.Columns))
	for c, col := range t.Columns {
		if i < len(col.Values) {
			row[c] = col.Values[i]
		}
	}
	return row
}

// Drop returns a new table without the named columns.
// Names not present are ignored; the receiver is not modified.
func (t *Table) Drop(names []string) *Table {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := &Table{SheetName: t.SheetName, Columns: make([]Column, 0, len(t.Columns))}
	for _, c := range t.Columns {
		if _, ok := drop[c.Name]; ok {
			continue
		}
		out.Columns = append(out.Columns, c)
	}
	return out
}

// Select returns a new table with only the named columns, in table order.
func (t *Table) Select(names []string) *Table {
	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	out := &Table{SheetName: t.SheetName}
	for _, c := range t.Columns {
		if _, ok := keep[c.Name]; ok {
			out.Columns = append(out.Columns, c)
		}
	}
	return out
}

// Head returns a new table limited to the first n rows.
func (t *Table) Head(n int) *Table {
	out := &Table{SheetName: t.SheetName, Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		vals := c.Values
		if n >= 0 && len(vals) > n {
			vals = vals[:n]
		}
		out.Columns[i] = Column{Name: c.Name, Values: vals}
	}
	return out
}
