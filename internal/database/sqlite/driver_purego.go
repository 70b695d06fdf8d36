//go:build !cgo_sqlite

package sqlite

import (
	"errors"

	msqlite "modernc.org/sqlite" // pure Go SQLite driver
)

const (
	driverName = "sqlite"
	driverType = "purego"
)

// resultCode extracts the extended SQLite result code from a modernc error.
func resultCode(err error) (int, bool) {
	var se *msqlite.Error
	if errors.As(err, &se) {
		return se.Code(), true
	}
	return 0, false
}
