package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/systask/internal/domain"
)

// TemplateURLInput contains the parameters for resolving a template URL.
type TemplateURLInput struct {
	TemplateID string // Template ID (required)
}

// TemplateURLOutput contains the resolved repository URL.
type TemplateURLOutput struct {
	URL string
}

// TemplateURL is the use case for resolving a template's code repository URL.
type TemplateURL struct {
	api domain.CoreAPI
}

// NewTemplateURL creates a new TemplateURL use case.
func NewTemplateURL(api domain.CoreAPI) *TemplateURL {
	return &TemplateURL{api: api}
}

// Execute resolves the URL. A template without a repository is an error.
func (uc *TemplateURL) Execute(ctx context.Context, in TemplateURLInput) (*TemplateURLOutput, error) {
	url, err := resolveRepoURL(ctx, uc.api, in.TemplateID)
	if err != nil {
		return nil, err
	}
	return &TemplateURLOutput{URL: url}, nil
}

func resolveRepoURL(ctx context.Context, api domain.CoreAPI, templateID string) (string, error) {
	if templateID == "" {
		return "", domain.ErrEmptyTemplateID
	}
	res := api.TemplateRepoURL(ctx, templateID)
	if !res.IsOk() {
		return "", fmt.Errorf("resolve template %s: %w", templateID, res.Err())
	}
	if res.Value() == "" {
		return "", fmt.Errorf("template %s: %w", templateID, domain.ErrNoRepoURL)
	}
	return res.Value(), nil
}
