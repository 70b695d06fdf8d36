package schema

import (
	"context"
	"fmt"

	"github.com/koustreak/json2sqlite/internal/database"
	"github.com/koustreak/json2sqlite/internal/errs"
)

// Introspector implements Reader for SQLite using sqlite_master and
// pragma_table_info.
type Introspector struct {
	db database.DB
}

// NewIntrospector creates a new SQLite schema introspector.
func NewIntrospector(db database.DB) *Introspector {
	return &Introspector{db: db}
}

// ListTables returns all user-defined table names in creation order.
func (s *Introspector) ListTables(ctx context.Context) ([]string, error) {
	const q = `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		  AND name NOT LIKE 'sqlite\_%' ESCAPE '\'
		ORDER BY rowid`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.Wrap(errs.ErrKindReadFailure, "scan table name", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// TableExists checks whether a specific table exists.
func (s *Introspector) TableExists(ctx context.Context, table string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ?
		)`

	var exists bool
	if err := s.db.QueryRow(ctx, q, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("table exists check: %w", err)
	}
	return exists, nil
}

// InspectTable returns column details for a single table.
func (s *Introspector) InspectTable(ctx context.Context, table string) (*TableInfo, error) {
	const q = `
		SELECT name, type, "notnull", dflt_value, pk
		FROM pragma_table_info(?)
		ORDER BY cid`

	rows, err := s.db.Query(ctx, q, table)
	if err != nil {
		return nil, fmt.Errorf("inspect table %s: %w", table, err)
	}
	defer rows.Close()

	info := &TableInfo{Name: table}
	for rows.Next() {
		var (
			col        ColumnInfo
			notNull    bool
			defaultVal *string
			pk         int
		)
		if err := rows.Scan(&col.Name, &col.DataType, &notNull, &defaultVal, &pk); err != nil {
			return nil, errs.Wrap(errs.ErrKindReadFailure, "scan column", err)
		}
		col.IsNullable = !notNull
		col.IsPrimaryKey = pk > 0
		col.DefaultValue = defaultVal
		info.Columns = append(info.Columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(info.Columns) == 0 {
		return nil, errs.Newf(errs.ErrKindInputNotFound, "table %s not found or has no columns", table)
	}
	return info, nil
}
