package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/classwrap/pkg/lsp"
	"github.com/Sumatoshi-tech/classwrap/pkg/observability"
	"github.com/Sumatoshi-tech/classwrap/pkg/version"
)

const defaultLSPAddr = "127.0.0.1:7998"

// NewLSPCommand creates the language server command.
func NewLSPCommand(global *GlobalOptions) *cobra.Command {
	var (
		transport string
		addr      string
		overrides flagOverrides
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Long: `Start a language server (LSP) exposing the rewrite as the
"extension.clsx-custom" command and as a refactor.rewrite code action.

Transports: stdio (default), tcp and websocket. Logs go to stderr as JSON.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			rt, err := loadRuntime(global, observability.ModeLSP, overrides)
			if err != nil {
				return err
			}
			defer rt.close()

			lsp.RouteProtocolLogs(rt.providers.Logger, debug)

			srv := lsp.NewServer(lsp.Deps{
				Command: rt.command(),
				Logger:  rt.providers.Logger,
				Version: version.Version,
			})

			stopDiagnostics, err := rt.startDiagnostics(srv.Ready)
			if err != nil {
				return err
			}
			defer stopDiagnostics()

			rt.providers.Logger.Info("lsp server starting", "transport", transport, "addr", addr)

			return srv.Run(lsp.Transport(transport), addr, debug)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(lsp.TransportStdio), "transport: stdio, tcp, websocket")
	cmd.Flags().StringVar(&addr, "addr", defaultLSPAddr, "listen address for tcp and websocket transports")
	cmd.Flags().BoolVar(&debug, "debug", false, "log JSON-RPC traffic to stderr")
	cmd.Flags().StringVar(&overrides.diagnosticsAddr, "diagnostics-addr", "",
		"serve /healthz, /readyz and /metrics on this address (overrides config)")

	return cmd
}
