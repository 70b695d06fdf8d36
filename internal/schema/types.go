package schema

// ColumnType is the SQLite declared type given to an inferred column.
type ColumnType string

const (
	TypeInteger ColumnType = "INTEGER"
	TypeReal    ColumnType = "REAL"
	TypeText    ColumnType = "TEXT"
)

// Column is one inferred column.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table is the column schema of one output table. It is computed once from
// the first row and drives both CREATE TABLE and INSERT.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// ColumnNames returns the column names in schema order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnInfo describes a column as reported by the database catalog.
type ColumnInfo struct {
	Name         string
	DataType     string // declared type: INTEGER, REAL, TEXT, …
	IsNullable   bool
	IsPrimaryKey bool
	DefaultValue *string // nil if no default
}

// TableInfo describes a table read back from the catalog.
type TableInfo struct {
	Name    string
	Columns []ColumnInfo
}

// Column returns the named column, if present.
func (t *TableInfo) Column(name string) (ColumnInfo, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnInfo{}, false
}
