package domain

import (
	_ "embed"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigTemplate returns the commented default configuration file content.
func ConfigTemplate() string {
	return configTemplateContent
}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	CoreAPI  CoreAPIConfig `toml:"core_api"`
	Notify   NotifyConfig  `toml:"notify"`
	HTTP     HTTPConfig    `toml:"http"`
	Log      LogConfig     `toml:"log"`
}

// CoreAPIConfig holds the remote server settings from [core_api] section.
type CoreAPIConfig struct {
	Address       string        `toml:"address,omitempty"`        // Base address of the core API
	Solution      string        `toml:"solution,omitempty"`       // Active solution ID (psdevsln)
	System        string        `toml:"system,omitempty"`         // Active system ID (psdevslnsys)
	ProbePath     string        `toml:"probe_path,omitempty"`     // Optional readiness probe path (GET)
	ProbeInterval time.Duration `toml:"probe_interval,omitempty"` // Delay between probe attempts
}

// HTTPConfig holds transport settings from [http] section.
type HTTPConfig struct {
	Timeout time.Duration `toml:"timeout,omitempty"` // Per-request timeout (0 = none)
}

// NotifyConfig holds push-notification settings from [notify] section.
type NotifyConfig struct {
	Transport     string `toml:"transport,omitempty"`      // sse, redis or none
	Channel       string `toml:"channel,omitempty"`        // Channel name that triggers refresh
	SSEPath       string `toml:"sse_path,omitempty"`       // Event stream path relative to the core API address
	RedisAddr     string `toml:"redis_addr,omitempty"`     // Redis server address
	RedisPassword string `toml:"redis_password,omitempty"` // Redis password
	RedisDB       int    `toml:"redis_db,omitempty"`       // Redis database number
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// Notification transports.
const (
	TransportSSE   = "sse"
	TransportRedis = "redis"
	TransportNone  = "none"
)

// Session value keys.
const (
	SessionSolutionKey = "psdevsln"
	SessionSystemKey   = "psdevslnsys"
)

// Default configuration values.
const (
	DefaultChannel       = "PSSYSDEVBKTASK"
	DefaultSSEPath       = "/portal/events"
	DefaultRedisAddr     = "localhost:6379"
	DefaultLogLevel      = "info"
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultProbeInterval = 2 * time.Second
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		CoreAPI: CoreAPIConfig{
			ProbeInterval: DefaultProbeInterval,
		},
		HTTP: HTTPConfig{
			Timeout: DefaultHTTPTimeout,
		},
		Notify: NotifyConfig{
			Transport: TransportSSE,
			Channel:   DefaultChannel,
			SSEPath:   DefaultSSEPath,
			RedisAddr: DefaultRedisAddr,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// SessionValues returns the values the session context is opened with.
func (c *Config) SessionValues() map[string]string {
	return map[string]string{
		SessionSolutionKey: c.CoreAPI.Solution,
		SessionSystemKey:   c.CoreAPI.System,
	}
}

// IsValidTransport returns true if name is a known notification transport.
func IsValidTransport(name string) bool {
	switch name {
	case TransportSSE, TransportRedis, TransportNone:
		return true
	default:
		return false
	}
}
