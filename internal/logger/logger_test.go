package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "default config", config: nil},
		{name: "custom json config", config: &Config{Level: "debug", Format: "json", Output: io.Discard}},
		{name: "console config", config: &Config{Level: "info", Format: "console", Output: io.Discard}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, New(tt.config))
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", Output: buf})

	log.Info("conversion finished")

	entry := decodeEntry(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "conversion finished", entry["message"])
	assert.NotEmpty(t, entry["time"])
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", Output: buf})

	child := log.With().
		Str("table", "locations").
		Int("rows", 2).
		Logger()

	child.Info("table created")

	entry := decodeEntry(t, buf)
	assert.Equal(t, "locations", entry["table"])
	assert.Equal(t, float64(2), entry["rows"])
	assert.Equal(t, "table created", entry["message"])
}

func TestLogger_ErrorWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "error", Format: "json", Output: buf})

	log.ErrorWith("table failed", errors.New("UNIQUE constraint failed"), map[string]any{
		"table": "users",
	})

	entry := decodeEntry(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "table failed", entry["message"])
	assert.Equal(t, "UNIQUE constraint failed", entry["error"])
	assert.Equal(t, "users", entry["table"])
}

func TestLogger_Context(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", Output: buf})

	ctx := log.WithContext(context.Background())
	FromContext(ctx).Info("from context")

	entry := decodeEntry(t, buf)
	assert.Equal(t, "from context", entry["message"])
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.Same(t, Global(), FromContext(context.Background()))
}

func TestLogger_Request(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", Output: buf})

	log.Request(http.MethodPost, "/v1/convert", http.StatusInternalServerError, 15*time.Millisecond, "req-1")

	entry := decodeEntry(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "/v1/convert", entry["path"])
	assert.Equal(t, float64(500), entry["status"])
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFunc  func(*Logger)
		expected bool
	}{
		{"debug level logs debug", "debug", func(l *Logger) { l.Debug("debug message") }, true},
		{"info level skips debug", "info", func(l *Logger) { l.Debug("debug message") }, false},
		{"warn level logs warn", "warn", func(l *Logger) { l.Warn("warn message") }, true},
		{"error level logs error", "error", func(l *Logger) { l.Error("error message") }, true},
		{"error level skips info", "error", func(l *Logger) { l.Info("info message") }, false},
		{"off disables everything", "off", func(l *Logger) { l.Error("error message") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := New(&Config{Level: tt.level, Format: "json", Output: buf})

			tt.logFunc(log)

			if tt.expected {
				assert.NotEmpty(t, buf.String(), "expected log output")
			} else {
				assert.Empty(t, buf.String(), "expected no log output")
			}
		})
	}
}

func TestNop(t *testing.T) {
	// must not panic
	Nop().ErrorWith("ignored", errors.New("x"), nil)
}

func BenchmarkLogger_WithFields(b *testing.B) {
	log := New(&Config{Level: "info", Format: "json", Output: io.Discard})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.With().
			Str("table", "locations").
			Int("row", i).
			Logger().
			Info("row inserted")
	}
}
