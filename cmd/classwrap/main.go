// Package main provides the entry point for the classwrap CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/classwrap/cmd/classwrap/commands"
	"github.com/Sumatoshi-tech/classwrap/pkg/command"
	"github.com/Sumatoshi-tech/classwrap/pkg/version"
)

func main() {
	version.Resolve()

	err := newRootCmd().Execute()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "classwrap",
		Short: "Rewrite JSX class attributes into classnames helper calls",
		Long: `classwrap turns class="..." attributes into className={cn("...")}
and adds the classnames import when a file lacks it.

Commands:
  rewrite   Rewrite the attribute under a line/column position
  scan      List every class attribute in a file
  lsp       Serve the rewrite as an LSP command and code action
  mcp       Serve the rewrite as MCP tools over stdio
  config    Show or validate configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: .classwrap.yaml in CWD or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress output")

	rootCmd.AddCommand(commands.NewRewriteCommand(opts))
	rootCmd.AddCommand(commands.NewScanCommand(opts))
	rootCmd.AddCommand(commands.NewLSPCommand(opts))
	rootCmd.AddCommand(commands.NewMCPCommand(opts))
	rootCmd.AddCommand(commands.NewConfigCommand(opts))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// printError writes err to stderr. Command failures already carry the
// user-facing "Error: " prefix.
func printError(err error) {
	red := color.New(color.FgRed)

	var cmdErr *command.Error
	if errors.As(err, &cmdErr) {
		red.Fprintln(os.Stderr, err.Error())

		return
	}

	red.Fprintf(os.Stderr, "Error: %v\n", err)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "classwrap %s\n", version.String())
		},
	}
}
