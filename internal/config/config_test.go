package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	cfg := Default("Household")
	cfg.Git.AutoCommit = false
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Household", got.Ledger.Name)
	assert.Equal(t, "USD", got.Ledger.Currency)
	assert.Equal(t, "budgetbook.db", got.Database.Path)
	assert.False(t, got.Git.AutoCommit)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestLoad_DefaultsDatabasePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  name: Test\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "budgetbook.db", got.Database.Path)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("ledger: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
