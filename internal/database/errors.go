package database

import "github.com/koustreak/json2sqlite/internal/errs"

// --- Constructor helpers shared by the row scanner and the query builder ---

func errQuery(msg string, cause error) *errs.Error {
	return errs.Wrap(errs.ErrKindReadFailure, msg, cause)
}

func errInvalidInput(msg string) *errs.Error {
	return errs.New(errs.ErrKindInvalidInput, msg)
}
