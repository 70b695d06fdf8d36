package schema

import (
	"strings"

	"github.com/koustreak/json2sqlite/internal/database"
)

// CreateTableSQL renders an idempotent CREATE TABLE for t.
func CreateTableSQL(t Table) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS ")
	sb.WriteString(database.QuoteIdent(t.Name))
	sb.WriteString(" (")
	for i, c := range t.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(database.QuoteIdent(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(string(c.Type))
	}
	sb.WriteString(")")
	return sb.String()
}

// InsertSQL renders a positional INSERT binding every column of t in order.
func InsertSQL(t Table) string {
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = database.QuoteIdent(c.Name)
		marks[i] = "?"
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(database.QuoteIdent(t.Name))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(strings.Join(marks, ", "))
	sb.WriteString(")")
	return sb.String()
}
