package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/systask/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
// Fields are ordered to minimize memory padding.
type ShowConfigOutput struct {
	Config        *domain.Config // Effective merged configuration
	ProjectPath   string         // Project config file path
	GlobalPath    string         // Global config file path ("" if unavailable)
	ProjectLoaded bool           // Project config file was read
	GlobalLoaded  bool           // Global config file was read
}

// ShowConfig displays the effective configuration and where it comes from.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute loads the effective configuration.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	_, projectErr := uc.configLoader.LoadProject()
	_, globalErr := uc.configLoader.LoadGlobal()
	return &ShowConfigOutput{
		Config:        cfg,
		ProjectPath:   uc.configManager.ProjectConfigPath(),
		GlobalPath:    uc.configManager.GlobalConfigPath(),
		ProjectLoaded: projectErr == nil,
		GlobalLoaded:  globalErr == nil,
	}, nil
}
