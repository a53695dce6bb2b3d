package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewSlog_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newSlog(SlogConfig{Level: "info", Format: "json"}, &buf)

	l.Debug("hidden")
	l.Info("user created", "user_id", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "user created", rec["msg"])
	assert.EqualValues(t, 7, rec["user_id"])
	assert.NotEmpty(t, rec["time"])
}

func TestNewSlog_Text(t *testing.T) {
	var buf bytes.Buffer
	l := newSlog(SlogConfig{Level: "warn", Format: "text"}, &buf)

	l.Info("skipped")
	l.Warn("email taken", "email", "a@x.com")

	out := buf.String()
	assert.NotContains(t, out, "skipped")
	assert.Contains(t, out, "email=a@x.com")
}
