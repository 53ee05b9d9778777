package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/systask/internal/app"
	"github.com/runoshun/systask/internal/usecase"
)

// newTemplatesCommand creates the templates command.
func newTemplatesCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Browse and clone solution templates",
	}

	cmd.AddCommand(
		newTemplatesListCommand(c),
		newTemplatesURLCommand(c),
		newTemplatesCloneCommand(c),
	)
	return cmd
}

func newTemplatesListCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your templates in the active solution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			startSession(cmd, c)

			out, err := c.ListTemplatesUseCase().Execute(cmd.Context(), usecase.ListTemplatesInput{})
			if err != nil {
				return err
			}
			return printTemplates(cmd.OutOrStdout(), output, out.Templates)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json or yaml")
	return cmd
}

func newTemplatesURLCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "url <template-id>",
		Short: "Print a template's code repository URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startSession(cmd, c)

			out, err := c.TemplateURLUseCase().Execute(cmd.Context(), usecase.TemplateURLInput{
				TemplateID: args[0],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.URL)
			return nil
		},
	}
}

func newTemplatesCloneCommand(c *app.Container) *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "clone <template-id> [dir]",
		Short: "Clone a template's code repository",
		Long: `Resolve the template's repository URL and make a shallow clone of it.
The directory defaults to the template ID.

Examples:
  systask templates clone 3f2a my-service
  systask templates clone 3f2a my-service --branch develop`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.CloneTemplateInput{
				TemplateID: args[0],
				Branch:     branch,
			}
			if len(args) > 1 {
				in.Dir = args[1]
			}
			startSession(cmd, c)

			out, err := c.CloneTemplateUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cloned %s into %s\n", out.URL, out.Dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to check out")
	return cmd
}
