package domain

import (
	"context"
	"encoding/json"
)

// CoreAPI is the remote core API. Every operation waits for the session
// readiness gate, makes a single attempt, and reports failures to the user
// before returning them as a failed Result.
type CoreAPI interface {
	// Cli executes a generic core command.
	Cli(ctx context.Context, api string, data map[string]any) Result[json.RawMessage]

	// CurUserTemplates lists the current user's templates in the active solution.
	CurUserTemplates(ctx context.Context) Result[[]Template]

	// TemplateRepoURL resolves a template's code repository URL.
	TemplateRepoURL(ctx context.Context, templateID string) Result[string]

	// CurSystemRuns lists the task runs of the active system.
	CurSystemRuns(ctx context.Context) Result[[]TaskRun]

	// CancelSystemRuns cancels the given task runs in one batch.
	// A successful call may still carry false when the server rejects it.
	CancelSystemRuns(ctx context.Context, keys []string) Result[bool]
}

// Notifier shows messages to the user.
type Notifier interface {
	// ShowError shows an error message.
	ShowError(msg string)

	// ShowInfo shows an informational message.
	ShowInfo(msg string)
}

// Message is a push notification received on a channel.
// The payload is not interpreted; arrival alone is the signal.
type Message struct {
	Channel string
	Payload []byte
}

// Subscriber delivers push notifications from a named channel.
type Subscriber interface {
	// Subscribe blocks, calling handler for each message in arrival order,
	// until ctx is done. It returns nil when ctx ends.
	Subscribe(ctx context.Context, channel string, handler func(Message)) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults, global, project, environment).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)

	// LoadProject returns only the project configuration.
	LoadProject() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// ProjectConfigPath returns the project config file path.
	ProjectConfigPath() string

	// GlobalConfigPath returns the global config file path.
	GlobalConfigPath() string

	// InitProjectConfig writes the default template to the project config file.
	InitProjectConfig() error

	// InitGlobalConfig writes the default template to the global config file.
	InitGlobalConfig() error
}

// Logger writes diagnostic log entries by category.
type Logger interface {
	Info(category, msg string)
	Debug(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards all entries.
type NopLogger struct{}

func (NopLogger) Info(string, string)  {}
func (NopLogger) Debug(string, string) {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// CloneOptions describes a repository clone.
// Fields are ordered to minimize memory padding.
type CloneOptions struct {
	URL    string // Repository URL
	Dir    string // Target directory
	Branch string // Branch to check out (empty = remote HEAD)
	Depth  int    // History depth (0 = full)
}

// RepoCloner clones a code repository into a local directory.
type RepoCloner interface {
	Clone(ctx context.Context, opts CloneOptions) error
}

// TaskTree holds the current task list and status indicator.
type TaskTree interface {
	// Refresh reloads the list. On failure the previous list is kept.
	Refresh(ctx context.Context) Result[[]TaskRun]

	// Cancel cancels every held task and refreshes on success.
	// It returns the number of task IDs sent in the batch.
	Cancel(ctx context.Context) (int, error)

	// Items returns a copy of the held list.
	Items() []TaskRun

	// Status returns the running-task indicator.
	Status() StatusIndicator

	// Changes returns a channel signaled after each successful refresh and
	// a func that stops delivery and closes the channel.
	Changes() (<-chan struct{}, func())
}

// Listener runs a push-notification subscription until ctx ends.
type Listener interface {
	Run(ctx context.Context) error
}
