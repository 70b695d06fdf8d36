package database

import (
	"fmt"
	"strings"
)

// SelectBuilder constructs a parameterized SELECT query using a fluent API.
// Values are never interpolated into the SQL string; they are passed as args.
//
// Usage:
//
//	sql, args, err := Select("locations").
//	    Columns("id", "name").
//	    Limit(3).
//	    Build()
type SelectBuilder struct {
	table   string
	columns []string
	limit   *int
	offset  *int
}

// Select starts a new SelectBuilder for the given table.
func Select(table string) *SelectBuilder {
	return &SelectBuilder{table: table}
}

// Columns restricts the SELECT to the specified columns.
// If not called, SELECT * is used.
func (b *SelectBuilder) Columns(cols ...string) *SelectBuilder {
	b.columns = cols
	return b
}

// Limit sets the maximum number of rows to return.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

// Offset sets the number of rows to skip.
func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = &n
	return b
}

// Build produces the final SQL string and argument slice.
func (b *SelectBuilder) Build() (string, []any, error) {
	if b.table == "" {
		return "", nil, errInvalidInput("select: table name is empty")
	}
	if b.limit != nil && *b.limit < 0 {
		return "", nil, errInvalidInput(fmt.Sprintf("select: negative limit %d", *b.limit))
	}
	if b.offset != nil && *b.offset < 0 {
		return "", nil, errInvalidInput(fmt.Sprintf("select: negative offset %d", *b.offset))
	}

	cols := "*"
	if len(b.columns) > 0 {
		quoted := make([]string, len(b.columns))
		for i, c := range b.columns {
			quoted[i] = QuoteIdent(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(cols)
	sb.WriteString(" FROM ")
	sb.WriteString(QuoteIdent(b.table))

	var args []any

	// SQLite only accepts OFFSET after a LIMIT; -1 means unbounded.
	if b.limit != nil || b.offset != nil {
		limit := -1
		if b.limit != nil {
			limit = *b.limit
		}
		sb.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	if b.offset != nil {
		sb.WriteString(" OFFSET ?")
		args = append(args, *b.offset)
	}

	return sb.String(), args, nil
}

// QuoteIdent wraps a SQL identifier in double quotes, doubling embedded
// quotes, so names taken from JSON keys stay valid even with spaces or
// reserved words.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
