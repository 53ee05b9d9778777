package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/systask/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	projectDir    string // Path to ./.systask directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/systask)
}

// NewManager creates a new Manager for the given working directory.
func NewManager(workDir string) *Manager {
	return &Manager{
		projectDir:    domain.ProjectConfigDir(workDir),
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(workDir, globalConfDir string) *Manager {
	return &Manager{
		projectDir:    domain.ProjectConfigDir(workDir),
		globalConfDir: globalConfDir,
	}
}

// ProjectConfigPath returns the project config file path.
func (m *Manager) ProjectConfigPath() string {
	return filepath.Join(m.projectDir, domain.ConfigFileName)
}

// GlobalConfigPath returns the global config file path, or "" when no
// global config directory is available.
func (m *Manager) GlobalConfigPath() string {
	if m.globalConfDir == "" {
		return ""
	}
	return filepath.Join(m.globalConfDir, domain.ConfigFileName)
}

// InitProjectConfig creates the project config file with the default template.
func (m *Manager) InitProjectConfig() error {
	return initConfig(m.projectDir, m.ProjectConfigPath())
}

// InitGlobalConfig creates the global config file with the default template.
func (m *Manager) InitGlobalConfig() error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	return initConfig(m.globalConfDir, m.GlobalConfigPath())
}

// initConfig creates a config file with the default template.
func initConfig(dir, path string) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(domain.ConfigTemplate()), 0o600)
}
