// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/runoshun/systask/internal/domain"
)

// MockNotifier is a test double for domain.Notifier that records messages.
type MockNotifier struct {
	Errors []string
	Infos  []string
	mu     sync.Mutex
}

// ShowError records an error message.
func (m *MockNotifier) ShowError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, msg)
}

// ShowInfo records an info message.
func (m *MockNotifier) ShowInfo(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Infos = append(m.Infos, msg)
}

// ErrorCount returns the number of recorded errors.
func (m *MockNotifier) ErrorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Errors)
}

// ErrorMessages returns a copy of the recorded errors.
func (m *MockNotifier) ErrorMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Errors...)
}

// LogEntry is one entry recorded by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) record(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Info records an INFO entry.
func (m *MockLogger) Info(category, msg string) { m.record("INFO", category, msg) }

// Debug records a DEBUG entry.
func (m *MockLogger) Debug(category, msg string) { m.record("DEBUG", category, msg) }

// Warn records a WARN entry.
func (m *MockLogger) Warn(category, msg string) { m.record("WARN", category, msg) }

// Error records an ERROR entry.
func (m *MockLogger) Error(category, msg string) { m.record("ERROR", category, msg) }

// Entries returns a copy of the recorded entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogEntry(nil), m.entries...)
}

// MockCoreAPI is a test double for domain.CoreAPI.
// It does not report to a notifier; set Notifier to emulate the real client.
// Fields are ordered to minimize memory padding.
type MockCoreAPI struct {
	Notifier domain.Notifier

	// Results returned by each call. RunsQueue, when non-empty, is consumed
	// before Runs.
	RunsQueue   []domain.Result[[]domain.TaskRun]
	Runs        domain.Result[[]domain.TaskRun]
	Cancel      domain.Result[bool]
	Templates   domain.Result[[]domain.Template]
	RepoURL     domain.Result[string]
	CliResponse domain.Result[json.RawMessage]

	// Recorded calls.
	CancelCalls  [][]string
	CliCalls     []string
	RepoURLCalls []string
	RunsCalls    int

	// OnRuns, if set, is called before CurSystemRuns returns.
	OnRuns func(call int)

	mu sync.Mutex
}

// NewMockCoreAPI creates a MockCoreAPI with successful empty results.
func NewMockCoreAPI() *MockCoreAPI {
	return &MockCoreAPI{
		Runs:        domain.Ok([]domain.TaskRun{}),
		Cancel:      domain.Ok(true),
		Templates:   domain.Ok([]domain.Template{}),
		RepoURL:     domain.Ok(""),
		CliResponse: domain.Ok(json.RawMessage(`{}`)),
	}
}

func (m *MockCoreAPI) report(r interface{ Err() error }) {
	if r.Err() != nil && m.Notifier != nil {
		m.Notifier.ShowError(r.Err().Error())
	}
}

// Cli records the call and returns CliResponse.
func (m *MockCoreAPI) Cli(_ context.Context, api string, _ map[string]any) domain.Result[json.RawMessage] {
	m.mu.Lock()
	m.CliCalls = append(m.CliCalls, api)
	r := m.CliResponse
	m.mu.Unlock()
	m.report(r)
	return r
}

// CurUserTemplates returns Templates.
func (m *MockCoreAPI) CurUserTemplates(_ context.Context) domain.Result[[]domain.Template] {
	m.mu.Lock()
	r := m.Templates
	m.mu.Unlock()
	m.report(r)
	return r
}

// TemplateRepoURL records the call and returns RepoURL.
func (m *MockCoreAPI) TemplateRepoURL(_ context.Context, templateID string) domain.Result[string] {
	m.mu.Lock()
	m.RepoURLCalls = append(m.RepoURLCalls, templateID)
	r := m.RepoURL
	m.mu.Unlock()
	m.report(r)
	return r
}

// CurSystemRuns returns the next queued result or Runs.
func (m *MockCoreAPI) CurSystemRuns(_ context.Context) domain.Result[[]domain.TaskRun] {
	m.mu.Lock()
	m.RunsCalls++
	call := m.RunsCalls
	r := m.Runs
	if len(m.RunsQueue) > 0 {
		r = m.RunsQueue[0]
		m.RunsQueue = m.RunsQueue[1:]
	}
	hook := m.OnRuns
	m.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	m.report(r)
	// Hand out a copy so callers can sort freely.
	if r.IsOk() {
		return domain.Ok(append([]domain.TaskRun(nil), r.Value()...))
	}
	return r
}

// CancelSystemRuns records the keys and returns Cancel.
func (m *MockCoreAPI) CancelSystemRuns(_ context.Context, keys []string) domain.Result[bool] {
	m.mu.Lock()
	m.CancelCalls = append(m.CancelCalls, append([]string{}, keys...))
	r := m.Cancel
	m.mu.Unlock()
	m.report(r)
	return r
}

// RunsCallCount returns how many times CurSystemRuns was called.
func (m *MockCoreAPI) RunsCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RunsCalls
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// Load returns the configured config, or defaults if nil.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// LoadGlobal returns the same as Load.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	return m.Load()
}

// LoadProject returns the same as Load.
func (m *MockConfigLoader) LoadProject() (*domain.Config, error) {
	return m.Load()
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitProjectErr    error
	InitGlobalErr     error
	ProjectPath       string
	GlobalPath        string
	InitProjectCalled bool
	InitGlobalCalled  bool
}

// ProjectConfigPath returns ProjectPath.
func (m *MockConfigManager) ProjectConfigPath() string { return m.ProjectPath }

// GlobalConfigPath returns GlobalPath.
func (m *MockConfigManager) GlobalConfigPath() string { return m.GlobalPath }

// InitProjectConfig records the call.
func (m *MockConfigManager) InitProjectConfig() error {
	m.InitProjectCalled = true
	return m.InitProjectErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

// MockRepoCloner is a test double for domain.RepoCloner.
type MockRepoCloner struct {
	Err   error
	Calls []domain.CloneOptions
	mu    sync.Mutex
}

// Clone records opts and returns Err.
func (m *MockRepoCloner) Clone(_ context.Context, opts domain.CloneOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, opts)
	return m.Err
}

// MockListener is a test double for domain.Listener.
// Each value sent on Trigger calls OnMessage; Run returns Err immediately
// when set, otherwise when ctx ends.
type MockListener struct {
	Err       error
	OnMessage func(ctx context.Context)
	Trigger   chan struct{}
}

// NewMockListener creates a MockListener calling onMessage for each trigger.
func NewMockListener(onMessage func(ctx context.Context)) *MockListener {
	return &MockListener{
		OnMessage: onMessage,
		Trigger:   make(chan struct{}),
	}
}

// Run implements domain.Listener.
func (m *MockListener) Run(ctx context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.Trigger:
			if m.OnMessage != nil {
				m.OnMessage(ctx)
			}
		}
	}
}
