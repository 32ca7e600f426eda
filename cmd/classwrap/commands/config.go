package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/classwrap/pkg/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(global *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or validate configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(global.ConfigPath)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()

			return enc.Encode(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate FILE",
		Short: "Check a config file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(cmd.OutOrStdout(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(config.Schema())

			return err
		},
	})

	return cmd
}

func runConfigValidate(out io.Writer, path string) error {
	resolved, err := resolveUserFilePath(path)
	if err != nil {
		return fmt.Errorf("resolve path %q: %w", path, err)
	}

	messages, err := config.ValidateFile(resolved)
	for _, msg := range messages {
		color.New(color.FgRed).Fprintf(out, "  - %s\n", msg)
	}

	if err != nil {
		return err
	}

	// The schema covers shape; semantic checks such as identifier syntax
	// need the full load.
	_, err = config.LoadConfig(resolved)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(out, "%s is valid\n", resolved)

	return nil
}
