// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/systask/internal/domain"
)

// Environment variables that override file configuration.
const (
	EnvAddress   = "SYSTASK_ADDRESS"
	EnvSolution  = "SYSTASK_SOLUTION"
	EnvSystem    = "SYSTASK_SYSTEM"
	EnvRedisAddr = "SYSTASK_REDIS_ADDR"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	getenv        func(string) string
	projectDir    string // Path to ./.systask directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/systask)
}

// NewLoader creates a new Loader for the given working directory.
func NewLoader(workDir string) *Loader {
	return &Loader{
		getenv:        os.Getenv,
		projectDir:    domain.ProjectConfigDir(workDir),
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory and environment lookup. A nil getenv disables environment
// overrides. This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		getenv:        getenv,
		projectDir:    domain.ProjectConfigDir(workDir),
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Merge order: defaults <- global <- project <- environment.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	project, err := l.LoadProject()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if project != nil {
		base = mergeConfigs(base, project)
	}
	l.applyEnv(base)

	if !domain.IsValidTransport(base.Notify.Transport) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTransport, base.Notify.Transport)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadProject returns only the project configuration.
func (l *Loader) LoadProject() (*domain.Config, error) {
	return l.loadFile(filepath.Join(l.projectDir, domain.ConfigFileName))
}

// applyEnv overrides cfg with non-empty environment variables.
func (l *Loader) applyEnv(cfg *domain.Config) {
	if v := l.getenv(EnvAddress); v != "" {
		cfg.CoreAPI.Address = v
	}
	if v := l.getenv(EnvSolution); v != "" {
		cfg.CoreAPI.Solution = v
	}
	if v := l.getenv(EnvSystem); v != "" {
		cfg.CoreAPI.System = v
	}
	if v := l.getenv(EnvRedisAddr); v != "" {
		cfg.Notify.RedisAddr = v
	}
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warn("unknown key: %s", section)
			continue
		}
		switch section {
		case "core_api":
			for k, v := range m {
				switch k {
				case "address":
					setString(&res.CoreAPI.Address, v)
				case "solution":
					setString(&res.CoreAPI.Solution, v)
				case "system":
					setString(&res.CoreAPI.System, v)
				case "probe_path":
					setString(&res.CoreAPI.ProbePath, v)
				case "probe_interval":
					if !setDuration(&res.CoreAPI.ProbeInterval, v) {
						warn("invalid duration in [core_api]: probe_interval = %v", v)
					}
				default:
					warn("unknown key in [core_api]: %s", k)
				}
			}
		case "http":
			for k, v := range m {
				switch k {
				case "timeout":
					if !setDuration(&res.HTTP.Timeout, v) {
						warn("invalid duration in [http]: timeout = %v", v)
					}
				default:
					warn("unknown key in [http]: %s", k)
				}
			}
		case "notify":
			for k, v := range m {
				switch k {
				case "transport":
					setString(&res.Notify.Transport, v)
				case "channel":
					setString(&res.Notify.Channel, v)
				case "sse_path":
					setString(&res.Notify.SSEPath, v)
				case "redis_addr":
					setString(&res.Notify.RedisAddr, v)
				case "redis_password":
					setString(&res.Notify.RedisPassword, v)
				case "redis_db":
					if n, ok := v.(int64); ok {
						res.Notify.RedisDB = int(n)
					}
				default:
					warn("unknown key in [notify]: %s", k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					setString(&res.Log.Level, v)
				default:
					warn("unknown key in [log]: %s", k)
				}
			}
		default:
			warn("unknown section: %s", section)
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func setString(dst *string, v any) {
	if s, ok := v.(string); ok {
		*dst = s
	}
}

// setDuration accepts a Go duration string ("2s") or an integer number of
// seconds.
func setDuration(dst *time.Duration, v any) bool {
	switch t := v.(type) {
	case string:
		d, err := time.ParseDuration(t)
		if err != nil {
			return false
		}
		*dst = d
	case int64:
		*dst = time.Duration(t) * time.Second
	default:
		return false
	}
	return true
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		CoreAPI:  base.CoreAPI,
		Notify:   base.Notify,
		HTTP:     base.HTTP,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, override.Warnings...)

	overrideString(&result.CoreAPI.Address, override.CoreAPI.Address)
	overrideString(&result.CoreAPI.Solution, override.CoreAPI.Solution)
	overrideString(&result.CoreAPI.System, override.CoreAPI.System)
	overrideString(&result.CoreAPI.ProbePath, override.CoreAPI.ProbePath)
	if override.CoreAPI.ProbeInterval > 0 {
		result.CoreAPI.ProbeInterval = override.CoreAPI.ProbeInterval
	}
	if override.HTTP.Timeout > 0 {
		result.HTTP.Timeout = override.HTTP.Timeout
	}
	overrideString(&result.Notify.Transport, override.Notify.Transport)
	overrideString(&result.Notify.Channel, override.Notify.Channel)
	overrideString(&result.Notify.SSEPath, override.Notify.SSEPath)
	overrideString(&result.Notify.RedisAddr, override.Notify.RedisAddr)
	overrideString(&result.Notify.RedisPassword, override.Notify.RedisPassword)
	if override.Notify.RedisDB != 0 {
		result.Notify.RedisDB = override.Notify.RedisDB
	}
	overrideString(&result.Log.Level, override.Log.Level)

	return result
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Render encodes cfg as TOML with durations written as strings.
// The redis password is masked.
func Render(cfg *domain.Config) (string, error) {
	password := ""
	if cfg.Notify.RedisPassword != "" {
		password = "********"
	}
	view := map[string]any{
		"core_api": map[string]any{
			"address":        cfg.CoreAPI.Address,
			"solution":       cfg.CoreAPI.Solution,
			"system":         cfg.CoreAPI.System,
			"probe_path":     cfg.CoreAPI.ProbePath,
			"probe_interval": cfg.CoreAPI.ProbeInterval.String(),
		},
		"http": map[string]any{
			"timeout": cfg.HTTP.Timeout.String(),
		},
		"notify": map[string]any{
			"transport":      cfg.Notify.Transport,
			"channel":        cfg.Notify.Channel,
			"sse_path":       cfg.Notify.SSEPath,
			"redis_addr":     cfg.Notify.RedisAddr,
			"redis_password": password,
			"redis_db":       cfg.Notify.RedisDB,
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
		},
	}
	out, err := toml.Marshal(view)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(out), nil
}
