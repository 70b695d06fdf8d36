package database

import "context"

// DB is the storage collaborator a conversion writes through: one
// connection to one database file, owned by whoever opened it.
// All layers above this package talk only to this interface; they never
// import a driver package directly.
type DB interface {
	// Ping verifies the database file can be opened.
	Ping(ctx context.Context) error

	// Close releases the connection. Safe to call more than once.
	Close() error

	// Exec runs a statement that returns no rows and reports rows affected.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)

	// Query executes a SQL statement that returns multiple rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// QueryRow executes a SQL statement that returns at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// Begin starts a transaction on the connection.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a transaction. Exactly one of Commit or Rollback must be called;
// Rollback after Commit is a no-op.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)

	// Prepare compiles sql once for repeated execution inside the transaction.
	Prepare(ctx context.Context, sql string) (Stmt, error)

	Commit() error
	Rollback() error
}

// Stmt is a prepared statement bound to a transaction.
type Stmt interface {
	Exec(ctx context.Context, args ...any) error
	Close() error
}

// Rows is an abstraction over a database result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row.
	// Returns false when no more rows exist or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Columns returns the column names of the result set.
	Columns() ([]string, error)

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}

// Row is an abstraction over a single database row.
type Row interface {
	Scan(dest ...any) error
}
