// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/systask/internal/domain"
	"github.com/runoshun/systask/internal/infra/config"
	"github.com/runoshun/systask/internal/infra/console"
	"github.com/runoshun/systask/internal/infra/coreapi"
	"github.com/runoshun/systask/internal/infra/fetch"
	"github.com/runoshun/systask/internal/infra/gitclone"
	"github.com/runoshun/systask/internal/infra/logging"
	"github.com/runoshun/systask/internal/infra/notify"
	"github.com/runoshun/systask/internal/session"
	"github.com/runoshun/systask/internal/tasktree"
	"github.com/runoshun/systask/internal/usecase"
)

const logCategory = "session"

// Config holds the application paths.
type Config struct {
	WorkDir  string // Directory the command runs in (project config root)
	StateDir string // Directory for logs ("" disables logging)
}

// Prober checks that the core API answers before the session opens.
type Prober interface {
	Get(ctx context.Context, url string, params map[string]any, headers map[string]string, out any) error
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	API           domain.CoreAPI
	Subscriber    domain.Subscriber
	Cloner        domain.RepoCloner
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	Tasks     *tasktree.Provider
	Session   *session.Context
	Notifier  *console.Relay
	AppConfig *domain.Config
	prober    Prober
	closers   []io.Closer
	startOnce sync.Once

	// Configuration
	Config Config
}

// New creates a new Container for the given working directory.
// Notifications go to stderr until the notifier target is replaced.
func New(dir string) (*Container, error) {
	cfg := Config{
		WorkDir:  dir,
		StateDir: logging.DefaultStateDir(),
	}

	configLoader := config.NewLoader(dir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.StateDir, logging.ParseLevel(appConfig.Log.Level))
	relay := console.NewRelay(console.NewNotifier(os.Stderr))
	sess := session.New()
	fetchClient := fetch.New(appConfig.HTTP.Timeout)
	api := coreapi.New(sess, fetchClient, relay, logger)

	sub, err := notify.NewSubscriber(appConfig.Notify, sess, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{
		API:           api,
		Subscriber:    sub,
		Cloner:        gitclone.New(nil),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dir),
		Logger:        logger,
		Tasks:         tasktree.New(api, relay, logger),
		Session:       sess,
		Notifier:      relay,
		AppConfig:     appConfig,
		prober:        fetchClient,
		closers:       []io.Closer{logger},
		Config:        cfg,
	}
	if closer, ok := sub.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// The session is created but not opened; call Start.
func NewWithDeps(cfg Config, appConfig *domain.Config, api domain.CoreAPI, sub domain.Subscriber, notifier domain.Notifier) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	relay := console.NewRelay(notifier)
	return &Container{
		API:        api,
		Subscriber: sub,
		Logger:     domain.NopLogger{},
		Tasks:      tasktree.New(api, relay, nil),
		Session:    session.New(),
		Notifier:   relay,
		AppConfig:  appConfig,
		Config:     cfg,
	}
}

// Start opens the session gate with the configured address and session
// values. Without a probe path the gate opens immediately. Otherwise a
// background goroutine probes the core API every probe interval and opens
// the gate once it answers. Only the first call has an effect.
func (c *Container) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		address := c.AppConfig.CoreAPI.Address
		values := c.AppConfig.SessionValues()
		probePath := c.AppConfig.CoreAPI.ProbePath
		if probePath == "" || c.prober == nil || address == "" {
			c.Session.Complete(address, values)
			return
		}
		go c.probe(ctx, strings.TrimRight(address, "/")+probePath, address, values)
	})
}

func (c *Container) probe(ctx context.Context, url, address string, values map[string]string) {
	interval := c.AppConfig.CoreAPI.ProbeInterval
	if interval <= 0 {
		interval = domain.DefaultProbeInterval
	}
	for attempt := 1; ; attempt++ {
		err := c.prober.Get(ctx, url, nil, nil, nil)
		if err == nil {
			c.Logger.Info(logCategory, fmt.Sprintf("core api ready after %d probe(s)", attempt))
			c.Session.Complete(address, values)
			return
		}
		c.Logger.Debug(logCategory, fmt.Sprintf("probe %s failed: %v", url, err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// SetNotifier routes user notifications to n and returns the previous target.
func (c *Container) SetNotifier(n domain.Notifier) domain.Notifier {
	return c.Notifier.SetTarget(n)
}

// Listener returns a push-notification listener that refreshes Tasks.
func (c *Container) Listener() *notify.Listener {
	return notify.NewListener(c.Subscriber, c.Tasks, c.AppConfig.Notify.Channel, c.Logger)
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// UseCase factory methods

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// CancelTasksUseCase returns a new CancelTasks use case.
func (c *Container) CancelTasksUseCase() *usecase.CancelTasks {
	return usecase.NewCancelTasks(c.Tasks)
}

// WatchTasksUseCase returns a new WatchTasks use case.
func (c *Container) WatchTasksUseCase() *usecase.WatchTasks {
	return usecase.NewWatchTasks(c.Tasks, c.Listener())
}

// ListTemplatesUseCase returns a new ListTemplates use case.
func (c *Container) ListTemplatesUseCase() *usecase.ListTemplates {
	return usecase.NewListTemplates(c.API)
}

// TemplateURLUseCase returns a new TemplateURL use case.
func (c *Container) TemplateURLUseCase() *usecase.TemplateURL {
	return usecase.NewTemplateURL(c.API)
}

// CloneTemplateUseCase returns a new CloneTemplate use case.
func (c *Container) CloneTemplateUseCase() *usecase.CloneTemplate {
	return usecase.NewCloneTemplate(c.API, c.Cloner)
}

// ExecCommandUseCase returns a new ExecCommand use case.
func (c *Container) ExecCommandUseCase() *usecase.ExecCommand {
	return usecase.NewExecCommand(c.API)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
