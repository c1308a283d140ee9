package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSONWithComponent(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log, err := Init(Config{JSON: true, Component: "catalog", Output: &buf})
	require.NoError(t, err)

	log.Info("Catalog loaded", "count", 150)
	log.Debug("hidden at info level")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "Catalog loaded", line["msg"])
	assert.Equal(t, "catalog", line["component"])
	assert.EqualValues(t, 150, line["count"])
}

func TestInit_FileRotationTarget(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	var buf bytes.Buffer
	log, err := Init(Config{LogDir: dir, Debug: true, Output: &buf})
	require.NoError(t, err)

	log.Debug("Detail loaded", "id", 1)
	assert.Contains(t, buf.String(), "Detail loaded")

	data, err := os.ReadFile(filepath.Join(dir, "pokedex.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "id=1")
}
