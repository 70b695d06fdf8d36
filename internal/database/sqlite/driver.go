// Package sqlite is the SQLite implementation of database.DB.
//
// Build modes:
//   - default: pure Go modernc.org/sqlite (driver name "sqlite")
//   - -tags cgo_sqlite: mattn/go-sqlite3 (driver name "sqlite3", needs CGO)
//
// Usage:
//
//	db, err := sqlite.New(ctx, database.DefaultConfig("out.sqlite"))
//	if err != nil { ... }
//	defer db.Close()
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/koustreak/json2sqlite/internal/database"
	"github.com/koustreak/json2sqlite/internal/errs"
)

// Driver is a SQLite implementation of database.DB backed by database/sql.
type Driver struct {
	db   *sql.DB
	path string

	closeOnce sync.Once
	closeErr  error
}

// New opens the database file described by cfg and returns a Driver.
// It calls Ping to validate the connection before returning.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "sqlite: database path is empty")
	}

	db, err := sql.Open(driverName, dsn(cfg))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to open "+cfg.Path, err)
	}

	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(0)

	d := &Driver{db: db, path: cfg.Path}

	if err := d.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if cfg.BusyTimeout > 0 {
		q := fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds())
		if _, err := db.ExecContext(ctx, q); err != nil {
			db.Close()
			return nil, mapError(err, "failed to set busy timeout", errs.ErrKindConnectionFailed)
		}
	}

	return d, nil
}

// Backend reports which SQLite driver the binary was built with.
func Backend() string {
	return driverType
}

// Path returns the database file this driver was opened on.
func (d *Driver) Path() string {
	return d.path
}

// --- database.DB implementation ---

// Ping verifies the database file can be opened.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping failed", errs.ErrKindConnectionFailed)
	}
	return nil
}

// Close releases the connection. Subsequent calls return the first result.
func (d *Driver) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = d.db.Close()
	})
	return d.closeErr
}

// Exec runs a statement that returns no rows.
func (d *Driver) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, "exec failed", errs.ErrKindPersistence)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Query executes a SQL statement that returns multiple rows.
func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query failed", errs.ErrKindReadFailure)
	}
	return &sqlRows{rows: rows}, nil
}

// QueryRow executes a SQL statement expected to return at most one row.
func (d *Driver) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return &sqlRow{row: d.db.QueryRowContext(ctx, query, args...)}
}

// Begin starts a transaction.
func (d *Driver) Begin(ctx context.Context) (database.Tx, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapError(err, "begin failed", errs.ErrKindPersistence)
	}
	return &sqlTx{tx: tx}, nil
}

// --- database/sql type wrappers ---

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, "exec failed", errs.ErrKindPersistence)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (t *sqlTx) Prepare(ctx context.Context, query string) (database.Stmt, error) {
	stmt, err := t.tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, mapError(err, "prepare failed", errs.ErrKindPersistence)
	}
	return &sqlStmt{stmt: stmt}, nil
}

func (t *sqlTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return mapError(err, "commit failed", errs.ErrKindPersistence)
	}
	return nil
}

func (t *sqlTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return mapError(err, "rollback failed", errs.ErrKindPersistence)
	}
	return nil
}

type sqlStmt struct {
	stmt *sql.Stmt
}

func (s *sqlStmt) Exec(ctx context.Context, args ...any) error {
	if _, err := s.stmt.ExecContext(ctx, args...); err != nil {
		return mapError(err, "exec failed", errs.ErrKindPersistence)
	}
	return nil
}

func (s *sqlStmt) Close() error {
	return s.stmt.Close()
}

// sqlRows wraps *sql.Rows to satisfy database.Rows.
type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool                 { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error     { return r.rows.Scan(dest...) }
func (r *sqlRows) Columns() ([]string, error) { return r.rows.Columns() }
func (r *sqlRows) Close()                     { r.rows.Close() }
func (r *sqlRows) Err() error                 { return r.rows.Err() }

// sqlRow wraps *sql.Row to satisfy database.Row.
type sqlRow struct {
	row *sql.Row
}

func (r *sqlRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		return mapError(err, "scan failed", errs.ErrKindReadFailure)
	}
	return nil
}

// --- helpers ---

var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// dsn renders cfg as a SQLite URI filename so the open mode is honoured by
// both drivers.
func dsn(cfg *database.Config) string {
	mode := cfg.Mode
	if mode == "" {
		mode = database.ModeReadWriteCreate
	}
	return "file:" + uriEscaper.Replace(filepath.ToSlash(cfg.Path)) + "?mode=" + string(mode)
}
