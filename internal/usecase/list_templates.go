package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/systask/internal/domain"
)

// ListTemplatesInput contains the parameters for listing templates.
type ListTemplatesInput struct{}

// ListTemplatesOutput contains the current user's templates.
type ListTemplatesOutput struct {
	Templates []domain.Template
}

// ListTemplates is the use case for listing the current user's solution templates.
type ListTemplates struct {
	api domain.CoreAPI
}

// NewListTemplates creates a new ListTemplates use case.
func NewListTemplates(api domain.CoreAPI) *ListTemplates {
	return &ListTemplates{api: api}
}

// Execute fetches the templates.
func (uc *ListTemplates) Execute(ctx context.Context, _ ListTemplatesInput) (*ListTemplatesOutput, error) {
	res := uc.api.CurUserTemplates(ctx)
	if !res.IsOk() {
		return nil, fmt.Errorf("list templates: %w", res.Err())
	}
	return &ListTemplatesOutput{Templates: res.Value()}, nil
}
