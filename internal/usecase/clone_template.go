package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/systask/internal/domain"
)

// CloneTemplateInput contains the parameters for cloning a template.
type CloneTemplateInput struct {
	TemplateID string // Template ID (required)
	Dir        string // Target directory (defaults to the template ID)
	Branch     string // Branch to check out (optional)
}

// CloneTemplateOutput contains the result of cloning a template.
type CloneTemplateOutput struct {
	URL string // Repository URL that was cloned
	Dir string // Directory the repository was cloned into
}

// CloneTemplate is the use case for cloning a template's code repository.
type CloneTemplate struct {
	api    domain.CoreAPI
	cloner domain.RepoCloner
}

// NewCloneTemplate creates a new CloneTemplate use case.
func NewCloneTemplate(api domain.CoreAPI, cloner domain.RepoCloner) *CloneTemplate {
	return &CloneTemplate{api: api, cloner: cloner}
}

// Execute resolves the repository URL and makes a shallow clone of it.
func (uc *CloneTemplate) Execute(ctx context.Context, in CloneTemplateInput) (*CloneTemplateOutput, error) {
	url, err := resolveRepoURL(ctx, uc.api, in.TemplateID)
	if err != nil {
		return nil, err
	}

	dir := in.Dir
	if dir == "" {
		dir = in.TemplateID
	}

	if err := uc.cloner.Clone(ctx, domain.CloneOptions{
		URL:    url,
		Dir:    dir,
		Branch: in.Branch,
		Depth:  1,
	}); err != nil {
		return nil, fmt.Errorf("clone template %s: %w", in.TemplateID, err)
	}

	return &CloneTemplateOutput{URL: url, Dir: dir}, nil
}
