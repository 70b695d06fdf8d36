package database

import "time"

// Mode is the SQLite open mode.
type Mode string

const (
	// ModeReadWriteCreate opens the file for writing, creating it if missing.
	ModeReadWriteCreate Mode = "rwc"

	// ModeReadOnly opens an existing file without write access.
	ModeReadOnly Mode = "ro"
)

// Config holds the settings needed to open a database file.
type Config struct {
	// Path is the database file on disk.
	Path string

	// Mode selects read-write-create or read-only access.
	Mode Mode

	// BusyTimeout is how long SQLite waits on a locked file before failing.
	BusyTimeout time.Duration

	// MaxOpenConns caps the connection pool. A conversion holds exactly one
	// connection, so the default is 1.
	MaxOpenConns int
}

// DefaultConfig returns the settings a conversion uses for its output file.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:         path,
		Mode:         ModeReadWriteCreate,
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 1,
	}
}

// ReadOnlyConfig returns the settings used by preview.
func ReadOnlyConfig(path string) *Config {
	cfg := DefaultConfig(path)
	cfg.Mode = ModeReadOnly
	return cfg
}
