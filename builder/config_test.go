package main

import (
	"os"
	"path/filepath"
	"testing"

	mbevts "github.com/miniball-daq/mbevts_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfiguration(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"file_in": "run12.jsonl",
		"file_out": "run12.h5",
		"run_number": 12,
		"reset_timestamps": true,
		"compression_level": 0,
		"use_catalog": true,
		"catalog_driver": "sqlite",
		"catalog_dsn": "catalog.db"
	}`
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))

	config, err := LoadConfiguration(filename)
	require.NoError(t, err)

	assert.Equal(t, "run12.jsonl", config.FileIn)
	assert.Equal(t, uint32(12), config.RunNumber)
	assert.True(t, config.ResetTimestamps)
	assert.Equal(t, 0, config.CompressionLevel)
	assert.Equal(t, "sqlite", config.CatalogDriver)

	defaults := mbevts.DefaultConfiguration()
	assert.Equal(t, defaults.ChunkSize, config.ChunkSize)
	assert.Equal(t, defaults.MaxWindows, config.MaxWindows)
	assert.Equal(t, defaults.BufferSize, config.BufferSize)
	assert.True(t, config.WriteData)
}

func TestLoadConfigurationErrors(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	filename := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(filename, []byte(`{"run_number": "twelve"}`), 0o644))
	_, err = LoadConfiguration(filename)
	assert.Error(t, err)
}
