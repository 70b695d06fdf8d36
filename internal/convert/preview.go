package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/koustreak/json2sqlite/internal/database"
	"github.com/koustreak/json2sqlite/internal/document"
	"github.com/koustreak/json2sqlite/internal/errs"
	"github.com/koustreak/json2sqlite/internal/schema"
)

// DefaultPreviewLimit is the number of rows shown by Preview.
const DefaultPreviewLimit = 3

// Preview is the first rows of the first table of a database file.
type Preview struct {
	Path    string             `json:"path"`
	Tables  []string           `json:"tables"`
	Table   string             `json:"table,omitempty"`
	Columns []string           `json:"columns,omitempty"`
	Rows    []*document.Object `json:"rows"`
}

// Empty reports whether the database has no tables.
func (p *Preview) Empty() bool {
	return len(p.Tables) == 0
}

// String renders the preview as the table name followed by the rows as
// indented JSON.
func (p *Preview) String() string {
	if p.Empty() {
		return "No tables found in " + p.Path
	}
	body, err := json.MarshalIndent(p.Rows, "", "  ")
	if err != nil {
		body = []byte(err.Error())
	}
	return fmt.Sprintf("Table: %s\n%s", p.Table, body)
}

// Preview opens path read-only and returns up to limit rows of its first
// table in catalog order. limit <= 0 uses the converter default.
func (c *Converter) Preview(ctx context.Context, path string, limit int) (*Preview, error) {
	if path == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "database path is empty")
	}
	if limit <= 0 {
		limit = c.previewLimit
	}

	// A missing file opened read-only surfaces as CANTOPEN.
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrKindInputNotFound, "database not found: "+path, err)
		}
		return nil, errs.Wrap(errs.ErrKindReadFailure, "cannot access "+path, err)
	}
	if st.IsDir() {
		return nil, errs.Newf(errs.ErrKindReadFailure, "%s is a directory", path)
	}

	db, err := c.open(ctx, database.ReadOnlyConfig(path))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tables, err := schema.NewIntrospector(db).ListTables(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindReadFailure, "failed to list tables in "+path, err)
	}

	p := &Preview{Path: path, Tables: tables, Rows: []*document.Object{}}
	if len(tables) == 0 {
		return p, nil
	}
	p.Table = tables[0]

	query, args, err := database.Select(p.Table).Limit(limit).Build()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	p.Columns, p.Rows, err = database.ScanRows(rows)
	if err != nil {
		return nil, err
	}

	c.log.With().Str("path", path).Str("table", p.Table).Int("rows", len(p.Rows)).Logger().Debug("preview")
	return p, nil
}
