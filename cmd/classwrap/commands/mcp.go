package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/classwrap/pkg/mcp"
	"github.com/Sumatoshi-tech/classwrap/pkg/observability"
	"github.com/Sumatoshi-tech/classwrap/pkg/version"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(global *GlobalOptions) *cobra.Command {
	var (
		overrides flagOverrides
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes the rewrite as tools that AI agents can discover
and invoke:
  - classwrap_rewrite: Rewrite the class attribute at a line/column of a snippet
  - classwrap_scan: List the class attributes of a snippet

OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_HEADERS and
OTEL_EXPORTER_OTLP_INSECURE configure telemetry export.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			opts := *global
			if debug {
				opts.Verbose = true
			}

			rt, err := loadRuntime(&opts, observability.ModeMCP, overrides)
			if err != nil {
				return err
			}
			defer rt.close()

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger:    rt.providers.Logger,
				Metrics:   rt.metrics,
				Tracer:    rt.providers.Tracer,
				Rewriter:  rt.rewriter,
				Languages: rt.cfg.Languages,
				Version:   version.Version,
			})

			stopDiagnostics, err := rt.startDiagnostics()
			if err != nil {
				return err
			}
			defer stopDiagnostics()

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
	cmd.Flags().StringVar(&overrides.diagnosticsAddr, "diagnostics-addr", "",
		"serve /healthz, /readyz and /metrics on this address (overrides config)")

	return cmd
}
