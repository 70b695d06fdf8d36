package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/koustreak/json2sqlite/internal/errs"
)

// Primary SQLite result codes (read-relevant and write-relevant only).
// Full list: https://www.sqlite.org/rescode.html
const (
	codeError      = 1
	codePerm       = 3
	codeBusy       = 5
	codeReadOnly   = 8
	codeCantOpen   = 14
	codeConstraint = 19
	codeMismatch   = 20
	codeAuth       = 23
	codeNotADB     = 26
)

// mapError translates a driver error into *errs.Error. fallback is the kind
// used for ordinary SQL failures, which depends on whether the caller was
// reading or writing.
func mapError(err error, msg string, fallback errs.ErrKind) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.ErrKindReadFailure, msg, err)
	}

	code, ok := resultCode(err)
	if !ok {
		return errs.Wrap(fallback, msg, err)
	}

	switch code & 0xff {
	case codeCantOpen:
		return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
	case codeNotADB:
		return errs.Wrap(errs.ErrKindReadFailure, msg, err)
	case codePerm, codeAuth, codeReadOnly:
		return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
	case codeBusy:
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	default:
		// codeError, codeConstraint, codeMismatch and the rest
		return errs.Wrap(fallback, msg, err)
	}
}
