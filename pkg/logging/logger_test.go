package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, Field{"key", "value"}, LogField("key", "value"))
	assert.Equal(t, Field{"name", "test"}, StringField("name", "test"))
	assert.Equal(t, Field{"count", 42}, IntField("count", 42))
	assert.Equal(t, Field{"score", 3.14}, Float64Field("score", 3.14))
	assert.Equal(t, Field{"enabled", true}, BoolField("enabled", true))
	assert.Equal(t, Field{"took", 1.5}, DurationField("took", 1500*time.Millisecond))
	assert.Equal(t, Field{"error", "boom"}, ErrorField(errors.New("boom")))
	assert.Equal(t, Field{"error", "<nil>"}, ErrorField(nil))
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: &buf,
		Fields: map[string]any{"suite": "HTMLDocumentTest"},
	})
	require.NoError(t, err)

	l.Info("unit_finished",
		StringField("target", "hu-FF78"),
		IntField("attempts", 2),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "unit_finished", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "hu-FF78", entry["target"])
	assert.Equal(t, float64(2), entry["attempts"])
	assert.Equal(t, "HTMLDocumentTest", entry["suite"])
}

func TestNew_TextFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: LevelWarn, Output: &buf})
	require.NoError(t, err)

	l.Debug("hidden-debug")
	l.Info("hidden-info")
	l.Warn("shown-warn", StringField("k", "v"))
	l.Error("shown-error")

	out := buf.String()
	assert.NotContains(t, out, "hidden-debug")
	assert.NotContains(t, out, "hidden-info")
	assert.Contains(t, out, "shown-warn")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "shown-error")
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: LevelDebug, Output: &buf})
	require.NoError(t, err)

	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestNew_OutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.log")
	l, err := New(Config{OutputPath: path, Format: FormatJSON})
	require.NoError(t, err)

	l.Info("written")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"written"`))
}

func TestLogrusLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	child := l.WithFields(StringField("target", "chrome"))
	child.Info("child")
	assert.NoError(t, child.Close())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "chrome", entry["target"])
}
