// Package convert runs a JSON to SQLite conversion end to end.
//
// A conversion reads one source, classifies it, resolves the table plan,
// then writes every table through one SQLite connection that is closed
// before Convert returns. Errors that stop the whole conversion (missing
// source, bad JSON, unsupported shape, duplicate table names) are returned
// before the output file is opened, so they never create one. Failures of
// individual tables are recorded in the Report and do not stop the others.
package convert

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/koustreak/json2sqlite/internal/database"
	"github.com/koustreak/json2sqlite/internal/database/sqlite"
	"github.com/koustreak/json2sqlite/internal/document"
	"github.com/koustreak/json2sqlite/internal/errs"
	"github.com/koustreak/json2sqlite/internal/filestore"
	"github.com/koustreak/json2sqlite/internal/filestore/local"
	"github.com/koustreak/json2sqlite/internal/logger"
	"github.com/koustreak/json2sqlite/internal/materialize"
	"github.com/koustreak/json2sqlite/internal/shape"
)

// Request describes one conversion.
type Request struct {
	// Source is a local path or an s3:// / minio:// object URL.
	Source string

	UseFilenameAsTableName bool
	CustomTableName        string
}

// Opener opens the database a conversion or preview works on.
type Opener func(ctx context.Context, cfg *database.Config) (database.DB, error)

// Converter runs conversions and previews. It is safe for concurrent use;
// conversions writing the same output file are serialized.
type Converter struct {
	local        filestore.Store
	objects      filestore.Store
	outputDir    string
	previewLimit int
	open         Opener
	log          *logger.Logger
	locks        *pathLocks
}

// Option configures a Converter.
type Option func(*Converter)

// WithObjectStore enables s3:// and minio:// sources.
func WithObjectStore(s filestore.Store) Option {
	return func(c *Converter) { c.objects = s }
}

// WithLocalStore replaces the default local filesystem store.
func WithLocalStore(s filestore.Store) Option {
	return func(c *Converter) { c.local = s }
}

// WithOutputDir sets where databases for object sources are written.
func WithOutputDir(dir string) Option {
	return func(c *Converter) { c.outputDir = dir }
}

// WithPreviewLimit sets the default number of preview rows.
func WithPreviewLimit(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.previewLimit = n
		}
	}
}

// WithOpener replaces the SQLite opener.
func WithOpener(open Opener) Option {
	return func(c *Converter) { c.open = open }
}

// New returns a Converter logging to log.
func New(log *logger.Logger, opts ...Option) *Converter {
	if log == nil {
		log = logger.Nop()
	}
	c := &Converter{
		local:        local.New(""),
		outputDir:    ".",
		previewLimit: DefaultPreviewLimit,
		open:         openSQLite,
		log:          log,
		locks:        newPathLocks(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func openSQLite(ctx context.Context, cfg *database.Config) (database.DB, error) {
	db, err := sqlite.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Convert runs req and returns its report. A non-nil error means nothing
// was written.
func (c *Converter) Convert(ctx context.Context, req Request) (*Report, error) {
	started := time.Now()
	report := &Report{
		ID:        uuid.NewString(),
		Source:    req.Source,
		Tables:    []TableOutcome{},
		Warnings:  []shape.Warning{},
		StartedAt: started.UTC(),
	}
	log := c.log.With().Str("conversion_id", report.ID).Str("source", req.Source).Logger()

	plan, loc, err := c.prepare(ctx, req, report)
	if err != nil {
		log.ErrorWith("conversion rejected", err, map[string]any{"kind": errs.KindOf(err).String()})
		return nil, err
	}
	report.Shape = plan.Kind
	report.Warnings = append(report.Warnings, plan.Warnings...)
	for _, w := range plan.Warnings {
		log.WarnWith("table skipped", map[string]any{"table": w.Table, "reason": w.Reason})
	}

	if len(plan.Tables) == 0 {
		report.Duration = time.Since(started)
		log.Warn("no tables to write")
		return report, nil
	}

	report.Output = OutputPath(loc, c.outputDir)
	log = log.With().Str("output", report.Output).Logger()

	if err := c.write(ctx, log, plan, report); err != nil {
		log.ErrorWith("conversion failed", err, nil)
		return nil, err
	}

	report.Duration = time.Since(started)
	log.InfoWith("conversion finished", map[string]any{
		"shape":    plan.Kind.String(),
		"created":  report.Created(),
		"warned":   len(report.Warnings),
		"failed":   report.Failed(),
		"duration": report.Duration.String(),
	})
	return report, nil
}

// prepare reads, parses and plans the source without touching the output.
func (c *Converter) prepare(ctx context.Context, req Request, report *Report) (*shape.Plan, filestore.Location, error) {
	loc, err := filestore.ParseLocation(req.Source)
	if err != nil {
		return nil, loc, err
	}

	raw, err := c.read(ctx, loc)
	if err != nil {
		return nil, loc, err
	}
	sum := blake3.Sum256(raw)
	report.SourceHash = hex.EncodeToString(sum[:])

	doc, err := document.Read(bytes.NewReader(raw))
	if err != nil {
		return nil, loc, err
	}

	s, err := shape.Classify(doc, shape.Options{
		UseFilenameAsTableName: req.UseFilenameAsTableName,
		CustomTableName:        req.CustomTableName,
		SourceName:             loc.Name(),
	})
	if err != nil {
		return nil, loc, err
	}

	plan, err := shape.Resolve(s)
	if err != nil {
		return nil, loc, err
	}
	if len(plan.Tables) == 0 && len(plan.Warnings) == 0 {
		return nil, loc, errs.New(errs.ErrKindEmptyInput, "document contains no tables")
	}
	return plan, loc, nil
}

func (c *Converter) read(ctx context.Context, loc filestore.Location) ([]byte, error) {
	store := c.local
	if loc.IsObject() {
		if c.objects == nil {
			return nil, errs.Newf(errs.ErrKindInvalidInput, "%s: object store is not configured", loc)
		}
		store = c.objects
	}

	obj, err := store.GetObject(ctx, loc.Bucket, loc.Key)
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindReadFailure, "failed to read "+loc.String(), err)
	}
	return raw, nil
}

// write materializes every planned table through one connection.
func (c *Converter) write(ctx context.Context, log *logger.Logger, plan *shape.Plan, report *Report) error {
	release, err := c.locks.acquire(ctx, report.Output)
	if err != nil {
		return err
	}
	defer release()

	db, err := c.open(ctx, database.DefaultConfig(report.Output))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorWith("failed to close database", err, nil)
		}
	}()

	for _, spec := range plan.Tables {
		res, err := materialize.Materialize(ctx, db, spec)
		if err != nil {
			log.ErrorWith("table failed", err, map[string]any{"table": spec.Name})
			report.Tables = append(report.Tables, TableOutcome{
				Name:   spec.Name,
				Status: StatusFailed,
				Reason: err.Error(),
			})
			continue
		}
		log.InfoWith("table created", map[string]any{"table": res.Table, "rows": res.Rows})
		report.Tables = append(report.Tables, TableOutcome{
			Name:    res.Table,
			Status:  StatusCreated,
			Rows:    res.Rows,
			Columns: res.Columns,
		})
	}
	return nil
}
