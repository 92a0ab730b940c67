package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cosmic/internal/task"
	"cosmic/internal/view"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "nested", DefaultDBName), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "nested", "cosmic.log"), cfg.LogPath)
	assert.Equal(t, view.FilterAll, cfg.Filter())
	assert.Equal(t, task.PriorityLow, cfg.Priority())
	assert.Equal(t, 3, cfg.ToastSeconds)
	assert.Equal(t, " ", cfg.Keys.Toggle)

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreate_OverridesAndResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
backend = "file"
data_dir = "tasks"
default_filter = "high"
default_priority = "medium"

[keys]
add = "n"
`), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "tasks"), cfg.StoragePath())
	assert.Equal(t, view.FilterHigh, cfg.Filter())
	assert.Equal(t, task.PriorityMedium, cfg.Priority())
	assert.Equal(t, "n", cfg.Keys.Add)
	assert.Equal(t, "q", cfg.Keys.Quit, "unset keys keep their defaults")
}

func TestLoadOrCreate_AbsolutePathsKept(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "elsewhere.db")
	path := filepath.Join(dir, DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("db_path = '"+db+"'\n"), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, db, cfg.StoragePath())
}

func TestLoadOrCreate_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"backend":  `backend = "postgres"`,
		"filter":   `default_filter = "done"`,
		"priority": `default_priority = "urgent"`,
		"toast":    `toast_seconds = -1`,
		"syntax":   `backend = `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(body+"\n"), 0o644))

			_, err := LoadOrCreate(path)
			assert.Error(t, err)
		})
	}
}

func TestResolveConfigPath_Env(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", ResolveConfigPath())
}
