package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/systask/internal/app"
	"github.com/runoshun/systask/internal/domain"
	"github.com/runoshun/systask/internal/infra/config"
	"github.com/runoshun/systask/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage systask configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Merge order: defaults, global config, project config, then the
SYSTASK_ADDRESS, SYSTASK_SOLUTION, SYSTASK_SYSTEM and SYSTASK_REDIS_ADDR
environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printSource(cmd, out.GlobalPath, out.GlobalLoaded)
			printSource(cmd, out.ProjectPath, out.ProjectLoaded)
			_, _ = fmt.Fprintln(w)

			rendered, err := config.Render(out.Config)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			_, _ = fmt.Fprint(w, rendered)
			return nil
		},
	}
}

func printSource(cmd *cobra.Command, path string, loaded bool) {
	if path == "" {
		return
	}
	if loaded {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", path)
		return
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s (not found)\n", path)
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the default configuration template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), domain.ConfigTemplate())
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file from the template",
		Long: `Create a configuration file with the default template.

By default the project config (./.systask/config.toml) is created.
Use --global to create the global config instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{Global: global})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Create the global config")
	return cmd
}
