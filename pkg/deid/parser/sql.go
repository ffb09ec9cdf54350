package parser

import (
	"database/sql"
	"strings"

	"github.com/ukaji3/xlsdeid/pkg/deid/models"
)

// ReadSQLTable reads every row of a database table into a Table.
// NULL becomes a null cell; other values are typed like sheet cells.
func ReadSQLTable(db *sql.DB, table string) (*models.Table, error) {
	rows, err := db.Query("SELECT * FROM " + QuoteIdent(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	names = HeaderNames(names)
	cols := make([]models.Column, len(names))
	for i, name := range names {
		cols[i].Name = name
	}

	raw := make([]sql.RawBytes, len(names))
	dest := make([]interface{}, len(names))
	for i := range raw {
		dest[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		for i, b := range raw {
			var v interface{}
			if len(b) > 0 {
				v = parseValue(string(b))
			}
			cols[i].Values = append(cols[i].Values, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.Table{SheetName: table, Columns: cols}, nil
}

// QuoteIdent quotes a possibly schema-qualified MySQL identifier.
func QuoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
	}
	return strings.Join(parts, ".")
}
