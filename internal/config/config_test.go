package config

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "linkspark.db", cfg.DBPath)
	assert.Equal(t, "linkspark-events.db", cfg.EventsDBPath)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
	assert.Equal(t, time.Second, cfg.ContactDelay)
	assert.True(t, cfg.Analytics)
	assert.False(t, cfg.Verbose)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("LINKSPARK_DB", "/tmp/history.db")
	t.Setenv("LINKSPARK_DEBOUNCE", "1s")
	t.Setenv("LINKSPARK_ANALYTICS", "false")
	t.Setenv("LINKSPARK_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/history.db", cfg.DBPath)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.False(t, cfg.Analytics)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{name: "bad duration", key: "LINKSPARK_DEBOUNCE", value: "soon", want: "parse env:"},
		{name: "bad bool", key: "LINKSPARK_VERBOSE", value: "loud", want: "parse env:"},
		{name: "negative delay", key: "LINKSPARK_CONTACT_DELAY", value: "-1s", want: "contact delay"},
		{name: "unknown zone", key: "LINKSPARK_TIMEZONE", value: "Mars/Olympus", want: "invalid time zone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegisterFlags_OverrideEnv(t *testing.T) {
	t.Setenv("LINKSPARK_DB", "env.db")
	cfg, err := Load()
	require.NoError(t, err)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--db", "flag.db", "--verbose", "--debounce", "50ms"}))

	assert.Equal(t, "flag.db", cfg.DBPath)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce)
	// Не заданный флагом параметр сохраняет значение по умолчанию
	assert.Equal(t, "linkspark-events.db", cfg.EventsDBPath)
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{}
	assert.False(t, cfg.Logger(&buf).Enabled(context.Background(), slog.LevelDebug))

	cfg.Verbose = true
	logger := cfg.Logger(&buf)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger.Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
}
