package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"courses": {
			"17-651": {"courseID": "17-651", "name": "Models of Software Systems"}
		}
	}`), 0o644))

	sources, err := loadCorpus(path)
	require.NoError(t, err)
	assert.Equal(t, "17-651", sources["courses"]["17-651"]["courseID"])
}

func TestLoadCorpusMissingFile(t *testing.T) {
	_, err := loadCorpus(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadCorpusMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := loadCorpus(path)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"courses": {"courseID": 0.6, "name": 0.2}
	}`), 0o644))

	config, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.6, config["courses"]["courseID"])
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
