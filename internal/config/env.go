package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func applyEnv(c *Config) {
	c.UseFilenameAsTableName = getenvBool("USE_FILENAME_AS_TABLE_NAME", c.UseFilenameAsTableName)
	c.CustomTableName = getenv("CUSTOM_TABLE_NAME", c.CustomTableName)
	c.OutputDir = getenv("OUTPUT_DIR", c.OutputDir)
	c.PreviewLimit = getenvInt("PREVIEW_LIMIT", c.PreviewLimit)

	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getenv("LOG_FORMAT", c.Log.Format)

	c.Server.Addr = getenv("SERVER_ADDR", c.Server.Addr)
	c.Server.ReadTimeout = getenvDuration("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getenvDuration("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)

	c.MinIO.Endpoint = getenv("MINIO_ENDPOINT", c.MinIO.Endpoint)
	c.MinIO.AccessKey = getenv("MINIO_ACCESS_KEY", c.MinIO.AccessKey)
	c.MinIO.SecretKey = getenv("MINIO_SECRET_KEY", c.MinIO.SecretKey)
	c.MinIO.UseSSL = getenvBool("MINIO_USE_SSL", c.MinIO.UseSSL)
	c.MinIO.Region = getenv("MINIO_REGION", c.MinIO.Region)
}

func getenv(k, def string) string {
	v := os.Getenv(envPrefix + k)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(envPrefix + k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(envPrefix + k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getenvBool(k string, def bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(envPrefix + k)))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
