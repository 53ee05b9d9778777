// Package gitclone clones template repositories with go-git.
package gitclone

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/systask/internal/domain"
)

// Ensure Cloner implements domain.RepoCloner.
var _ domain.RepoCloner = (*Cloner)(nil)

// Cloner clones repositories without a git binary.
type Cloner struct {
	progress io.Writer
}

// New creates a Cloner. Progress output goes to progress when non-nil.
func New(progress io.Writer) *Cloner {
	return &Cloner{progress: progress}
}

// Clone clones opts.URL into opts.Dir.
func (c *Cloner) Clone(ctx context.Context, opts domain.CloneOptions) error {
	if opts.URL == "" {
		return domain.ErrNoRepoURL
	}

	co := &git.CloneOptions{
		URL:      opts.URL,
		Depth:    opts.Depth,
		Progress: c.progress,
	}
	if opts.Branch != "" {
		co.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
		co.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, opts.Dir, false, co); err != nil {
		return fmt.Errorf("clone %s: %w", opts.URL, err)
	}
	return nil
}
