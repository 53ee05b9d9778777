package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/systask/internal/app"
	"github.com/runoshun/systask/internal/domain"
	"github.com/runoshun/systask/internal/infra/config"
)

// newConfigTestContainer creates an app.Container with real config infrastructure.
func newConfigTestContainer(t *testing.T) (*app.Container, string, string) {
	t.Helper()
	c, _, _ := newTestContainer(t)
	workDir := t.TempDir()
	globalDir := filepath.Join(t.TempDir(), "systask")
	c.ConfigLoader = config.NewLoaderWithGlobalDir(workDir, globalDir, nil)
	c.ConfigManager = config.NewManagerWithGlobalDir(workDir, globalDir)
	return c, workDir, globalDir
}

func TestConfigShow_Defaults(t *testing.T) {
	c, _, _ := newConfigTestContainer(t)

	out, err := runCommand(t, c, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, "(not found)")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, domain.DefaultChannel)
}

func TestConfigShow_ProjectConfig(t *testing.T) {
	c, workDir, _ := newConfigTestContainer(t)
	dir := domain.ProjectConfigDir(workDir)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(`
[core_api]
address = "http://core.internal/api"

[notify]
redis_password = "secret"
`), 0o600))

	out, err := runCommand(t, c, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "http://core.internal/api")
	assert.NotContains(t, out, "secret")
}

func TestConfigTemplate(t *testing.T) {
	out, err := runCommand(t, nil, "config", "template")

	require.NoError(t, err)
	assert.Equal(t, domain.ConfigTemplate(), out)
}

func TestConfigInit(t *testing.T) {
	c, workDir, _ := newConfigTestContainer(t)

	out, err := runCommand(t, c, "config", "init")

	require.NoError(t, err)
	path := filepath.Join(domain.ProjectConfigDir(workDir), domain.ConfigFileName)
	assert.Contains(t, out, "Created config file: "+path)
	assert.FileExists(t, path)

	_, err = runCommand(t, c, "config", "init")
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestConfigInit_Global(t *testing.T) {
	c, _, globalDir := newConfigTestContainer(t)

	out, err := runCommand(t, c, "config", "init", "--global")

	require.NoError(t, err)
	path := filepath.Join(globalDir, domain.ConfigFileName)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)
}
