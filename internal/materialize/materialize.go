// Package materialize turns one resolved table spec into a SQLite table.
//
// For each table it normalizes GUID-shaped strings, infers the column
// schema from the first row, creates the table if it does not exist and
// inserts every row through a single prepared statement. The create and
// the inserts share one transaction, so a failing table leaves nothing
// behind and does not affect other tables written on the same connection.
package materialize

import (
	"context"
	"fmt"

	"github.com/koustreak/json2sqlite/internal/database"
	"github.com/koustreak/json2sqlite/internal/document"
	"github.com/koustreak/json2sqlite/internal/errs"
	"github.com/koustreak/json2sqlite/internal/schema"
	"github.com/koustreak/json2sqlite/internal/shape"
)

// Result describes a table that was written.
type Result struct {
	Table   string          `json:"table"`
	Rows    int             `json:"rows"`
	Columns []schema.Column `json:"columns"`
}

// Materialize creates spec.Name on db and inserts spec.Rows in order.
//
// spec.Rows must be non-empty; an empty spec returns an InvalidInput error
// without touching the database. Any storage failure is returned as a
// PersistenceFailure after the table's transaction has been rolled back.
func Materialize(ctx context.Context, db database.DB, spec shape.TableSpec) (*Result, error) {
	if len(spec.Rows) == 0 {
		return nil, errs.Newf(errs.ErrKindInvalidInput, "table %q has no rows", spec.Name)
	}

	rows := make([]*document.Object, len(spec.Rows))
	for i, r := range spec.Rows {
		rows[i] = NormalizeRow(r)
	}
	tbl := schema.Infer(spec.Name, rows[0])
	if len(tbl.Columns) == 0 {
		return nil, errs.Newf(errs.ErrKindInvalidInput, "table %q has no columns", spec.Name)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, persistence(spec.Name, "begin transaction", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback()

	if _, err := tx.Exec(ctx, schema.CreateTableSQL(tbl)); err != nil {
		return nil, persistence(spec.Name, "create table", err)
	}

	stmt, err := tx.Prepare(ctx, schema.InsertSQL(tbl))
	if err != nil {
		return nil, persistence(spec.Name, "prepare insert", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		args, err := bindRow(tbl.Columns, row)
		if err != nil {
			return nil, persistence(spec.Name, fmt.Sprintf("bind row %d", i), err)
		}
		if err := stmt.Exec(ctx, args...); err != nil {
			return nil, persistence(spec.Name, fmt.Sprintf("insert row %d", i), err)
		}
	}

	if err := stmt.Close(); err != nil {
		return nil, persistence(spec.Name, "close insert", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, persistence(spec.Name, "commit", err)
	}

	return &Result{Table: spec.Name, Rows: len(rows), Columns: tbl.Columns}, nil
}

func persistence(table, step string, cause error) *errs.Error {
	return errs.Wrap(errs.ErrKindPersistence, fmt.Sprintf("table %q: %s failed", table, step), cause)
}
