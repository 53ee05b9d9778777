package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/systask/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Paths(t *testing.T) {
	workDir := t.TempDir()
	globalDir := t.TempDir()
	manager := NewManagerWithGlobalDir(workDir, globalDir)

	assert.Equal(t, filepath.Join(workDir, ".systask", "config.toml"), manager.ProjectConfigPath())
	assert.Equal(t, filepath.Join(globalDir, "config.toml"), manager.GlobalConfigPath())
	assert.Empty(t, NewManagerWithGlobalDir(workDir, "").GlobalConfigPath())
}

func TestManager_InitProjectConfig(t *testing.T) {
	t.Run("creates config file from template", func(t *testing.T) {
		workDir := t.TempDir()
		manager := NewManagerWithGlobalDir(workDir, "")

		require.NoError(t, manager.InitProjectConfig())

		content, err := os.ReadFile(manager.ProjectConfigPath())
		require.NoError(t, err)
		assert.Equal(t, domain.ConfigTemplate(), string(content))
	})

	t.Run("returns error when file exists", func(t *testing.T) {
		workDir := t.TempDir()
		manager := NewManagerWithGlobalDir(workDir, "")
		require.NoError(t, manager.InitProjectConfig())

		err := manager.InitProjectConfig()
		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}

func TestManager_InitGlobalConfig(t *testing.T) {
	t.Run("creates parent directory", func(t *testing.T) {
		globalDir := filepath.Join(t.TempDir(), "nested", "systask")
		manager := NewManagerWithGlobalDir(t.TempDir(), globalDir)

		require.NoError(t, manager.InitGlobalConfig())

		_, err := os.Stat(filepath.Join(globalDir, domain.ConfigFileName))
		assert.NoError(t, err)
	})

	t.Run("fails without global dir", func(t *testing.T) {
		manager := NewManagerWithGlobalDir(t.TempDir(), "")
		assert.Error(t, manager.InitGlobalConfig())
	})
}
