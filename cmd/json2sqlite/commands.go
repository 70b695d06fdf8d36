package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/koustreak/json2sqlite/internal/config"
	"github.com/koustreak/json2sqlite/internal/convert"
	"github.com/koustreak/json2sqlite/internal/database/sqlite"
	"github.com/koustreak/json2sqlite/internal/filestore"
	"github.com/koustreak/json2sqlite/internal/filestore/minio"
	"github.com/koustreak/json2sqlite/internal/logger"
	"github.com/koustreak/json2sqlite/internal/server"
)

// Globals are flags shared by every command.
type Globals struct {
	Config    string `name:"config" short:"c" help:"Path to a YAML config file" type:"path" env:"JSON2SQLITE_CONFIG"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error, off)"`
	LogFormat string `name:"log-format" help:"Log format (json, console)"`

	stdout io.Writer
}

func (g *Globals) out() io.Writer {
	if g.stdout == nil {
		return os.Stdout
	}
	return g.stdout
}

// setup loads configuration and builds the logger.
func (g *Globals) setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.New(cfg.LoggerConfig())
	logger.SetGlobal(log)
	return cfg, log, nil
}

// newConverter wires the converter. The object store is connected only
// when withObjects is set and an endpoint is configured.
func newConverter(ctx context.Context, cfg *config.Config, log *logger.Logger, withObjects bool) (*convert.Converter, error) {
	opts := []convert.Option{
		convert.WithOutputDir(cfg.OutputDir),
		convert.WithPreviewLimit(cfg.PreviewLimit),
	}
	if fc := cfg.FileStoreConfig(); withObjects && fc != nil {
		store, err := minio.New(ctx, fc)
		if err != nil {
			return nil, err
		}
		opts = append(opts, convert.WithObjectStore(store))
	}
	return convert.New(log, opts...), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// ConvertCmd converts one source.
type ConvertCmd struct {
	Source        string `arg:"" help:"JSON file path, or s3://bucket/key when an object store is configured"`
	TableName     string `name:"table-name" short:"t" help:"Name for a single-table document (disables file-name naming)"`
	NoUseFilename bool   `name:"no-use-filename" help:"Do not name a single-table document after its file"`
	OutputDir     string `name:"output-dir" help:"Directory for databases converted from object sources" type:"path"`
	JSON          bool   `name:"json" help:"Print the report as JSON"`
}

func (c *ConvertCmd) Run(g *Globals) error {
	cfg, log, err := g.setup()
	if err != nil {
		return err
	}
	if c.OutputDir != "" {
		cfg.OutputDir = c.OutputDir
	}

	req := convert.Request{
		Source:                 c.Source,
		UseFilenameAsTableName: cfg.UseFilenameAsTableName && !c.NoUseFilename,
		CustomTableName:        cfg.CustomTableName,
	}
	if c.TableName != "" {
		req.UseFilenameAsTableName = false
		req.CustomTableName = c.TableName
	}

	ctx, cancel := signalContext()
	defer cancel()

	loc, err := filestore.ParseLocation(c.Source)
	if err != nil {
		return err
	}
	conv, err := newConverter(ctx, cfg, log, loc.IsObject())
	if err != nil {
		return err
	}

	report, err := conv.Convert(ctx, req)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(g.out(), report.Message())
	}

	if !report.OK() {
		return fmt.Errorf("%d of %d tables failed", report.Failed(), len(report.Tables))
	}
	return nil
}

// PreviewCmd prints the first rows of a database.
type PreviewCmd struct {
	Path  string `arg:"" help:"SQLite database file"`
	Limit int    `name:"limit" short:"n" help:"Number of rows (default from config, 3)"`
	JSON  bool   `name:"json" help:"Print the preview as JSON"`
}

func (c *PreviewCmd) Run(g *Globals) error {
	cfg, log, err := g.setup()
	if err != nil {
		return err
	}
	if c.Limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	ctx, cancel := signalContext()
	defer cancel()

	conv, err := newConverter(ctx, cfg, log, false)
	if err != nil {
		return err
	}
	p, err := conv.Preview(ctx, c.Path, c.Limit)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	fmt.Fprintln(g.out(), p.String())
	return nil
}

// ServeCmd runs the HTTP API until interrupted.
type ServeCmd struct {
	Addr string `name:"addr" help:"Listen address (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, log, err := g.setup()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}

	ctx, cancel := signalContext()
	defer cancel()

	conv, err := newConverter(ctx, cfg, log, true)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:                   cfg.Server.Addr,
		ReadTimeout:            cfg.Server.ReadTimeout,
		WriteTimeout:           cfg.Server.WriteTimeout,
		ShutdownTimeout:        cfg.Server.ShutdownTimeout,
		UseFilenameAsTableName: cfg.UseFilenameAsTableName,
		CustomTableName:        cfg.CustomTableName,
	}, conv, log)
	return srv.Run(ctx)
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.out(), "json2sqlite version %s (sqlite: %s)\n", version, sqlite.Backend())
	return nil
}
