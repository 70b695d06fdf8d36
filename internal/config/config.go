// Package config loads json2sqlite settings.
//
// Precedence, lowest first: built-in defaults, the YAML file, then
// JSON2SQLITE_* environment variables. Command-line flags are applied by
// the caller on top of the returned Config.
//
// Example file:
//
//	useFilenameAsTableName: false
//	customTableName: records
//	outputDir: /var/lib/json2sqlite
//	log:
//	  level: debug
//	  format: console
//	server:
//	  addr: ":8080"
//	minio:
//	  endpoint: localhost:9000
//	  accessKey: minioadmin
//	  secretKey: minioadmin
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/koustreak/json2sqlite/internal/errs"
	"github.com/koustreak/json2sqlite/internal/filestore"
	"github.com/koustreak/json2sqlite/internal/logger"
)

const envPrefix = "JSON2SQLITE_"

// Config is the complete runtime configuration.
type Config struct {
	// UseFilenameAsTableName names single-table documents after the source
	// file. Defaults to true.
	UseFilenameAsTableName bool `yaml:"useFilenameAsTableName"`

	// CustomTableName is the single-table name when the file name is not
	// used. Empty means "data".
	CustomTableName string `yaml:"customTableName"`

	// OutputDir receives databases converted from object-store sources.
	// Local sources are always written next to the input file.
	OutputDir string `yaml:"outputDir"`

	// PreviewLimit is the number of rows returned by preview.
	PreviewLimit int `yaml:"previewLimit"`

	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	MinIO  MinIOConfig  `yaml:"minio"`
}

// LogConfig mirrors logger.Config for the file format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// MinIOConfig enables s3:// and minio:// sources when Endpoint is set.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL"`
	Region    string `yaml:"region"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UseFilenameAsTableName: true,
		OutputDir:              ".",
		PreviewLimit:           3,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    5 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load reads path (optional) and applies environment overrides.
// An empty path skips the file; a named file that does not exist is an
// InputNotFound error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, errs.Wrap(errs.ErrKindInputNotFound, "config file not found: "+path, err)
			}
			return nil, errs.Wrap(errs.ErrKindReadFailure, "failed to open config file "+path, err)
		}
		defer f.Close()

		if err := decode(f, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return errs.Wrap(errs.ErrKindReadFailure, "failed to read config", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return errs.Wrap(errs.ErrKindInvalidInput, "invalid config", err)
	}
	return nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.PreviewLimit <= 0 {
		return errs.Newf(errs.ErrKindInvalidInput, "previewLimit must be positive, got %d", c.PreviewLimit)
	}
	if c.MinIO.Endpoint != "" && (c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "") {
		return errs.New(errs.ErrKindInvalidInput, "minio endpoint is set but accessKey/secretKey are missing")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "console":
	default:
		return errs.Newf(errs.ErrKindInvalidInput, "unknown log format %q", c.Log.Format)
	}
	return nil
}

// LoggerConfig converts the log section for logger.New.
func (c *Config) LoggerConfig() *logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	return lc
}

// FileStoreConfig returns the object-store settings, or nil when no
// endpoint is configured.
func (c *Config) FileStoreConfig() *filestore.Config {
	if c.MinIO.Endpoint == "" {
		return nil
	}
	fc := filestore.DefaultConfig(c.MinIO.Endpoint, c.MinIO.AccessKey, c.MinIO.SecretKey)
	fc.UseSSL = c.MinIO.UseSSL
	fc.Region = c.MinIO.Region
	return fc
}
