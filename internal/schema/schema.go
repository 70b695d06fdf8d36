package schema

import "context"

// Reader is the interface for introspecting a database file's schema.
type Reader interface {
	// ListTables returns user tables in catalog order. SQLite's internal
	// sqlite_% tables are never included.
	ListTables(ctx context.Context) ([]string, error)

	// TableExists checks whether a table exists.
	TableExists(ctx context.Context, table string) (bool, error)

	// InspectTable returns column info for a table in declaration order.
	InspectTable(ctx context.Context, table string) (*TableInfo, error)
}
