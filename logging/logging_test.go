package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Output: &buf})

	log.Debug().Str("kind", "sandstorm").Uint64("tick", 1000).Msg("event triggered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "outpost", entry["service"])
	assert.Equal(t, "sandstorm", entry["kind"])
	assert.Equal(t, float64(1000), entry["tick"])
}

func TestNewLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "loud", Output: &buf})

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNilOutputDiscards(t *testing.T) {
	log := New(Config{})
	log.Error().Msg("nowhere")
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	f, err := OpenFile(dir, "outpost.log")
	require.NoError(t, err)
	log := New(Config{Output: f})
	log.Info().Msg("first")
	require.NoError(t, f.Close())

	f, err = OpenFile(dir, "outpost.log")
	require.NoError(t, err)
	log = New(Config{Output: f})
	log.Info().Msg("second")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.Join(dir, "outpost.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}
