// Package commands implements the classwrap CLI subcommands.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/Sumatoshi-tech/classwrap/pkg/command"
	"github.com/Sumatoshi-tech/classwrap/pkg/config"
	"github.com/Sumatoshi-tech/classwrap/pkg/observability"
	"github.com/Sumatoshi-tech/classwrap/pkg/rewrite"
	"github.com/Sumatoshi-tech/classwrap/pkg/version"
)

// Environment variables honored in addition to the config file, following
// the OpenTelemetry exporter conventions.
const (
	envOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOTLPHeaders  = "OTEL_EXPORTER_OTLP_HEADERS"
	envOTLPInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
)

// GlobalOptions are the persistent root flags.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

// flagOverrides are per-invocation flags layered over the loaded config.
type flagOverrides struct {
	helper          string
	quote           string
	diagnosticsAddr string
	noCaretCheck    bool
}

// runtime is everything a subcommand needs for one process lifetime.
type runtime struct {
	cfg       *config.Config
	providers observability.Providers
	metrics   *observability.REDMetrics
	rewriter  *rewrite.Rewriter
}

// loadRuntime reads the configuration and starts observability for mode.
func loadRuntime(opts *GlobalOptions, mode observability.AppMode, overrides flagOverrides) (*runtime, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	applyOverrides(cfg, overrides)

	rwOpts, err := cfg.RewriteOptions()
	if err != nil {
		return nil, err
	}

	rw, err := rewrite.New(rwOpts)
	if err != nil {
		return nil, err
	}

	obsCfg := cfg.Observability(mode, version.Version)
	applyEnvironment(&obsCfg)

	switch {
	case opts.Verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case opts.Quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	if mode != observability.ModeCLI {
		obsCfg.LogJSON = true
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, err
	}

	red, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		_ = providers.Shutdown(context.Background())

		return nil, err
	}

	slog.SetDefault(providers.Logger)

	return &runtime{cfg: cfg, providers: providers, metrics: red, rewriter: rw}, nil
}

func applyOverrides(cfg *config.Config, overrides flagOverrides) {
	if overrides.helper != "" {
		cfg.Rewrite.Helper = overrides.helper
	}

	if overrides.quote != "" {
		cfg.Rewrite.Quote = overrides.quote
	}

	if overrides.noCaretCheck {
		cfg.Rewrite.CheckCaret = false
	}

	if overrides.diagnosticsAddr != "" {
		cfg.Telemetry.DiagnosticsAddr = overrides.diagnosticsAddr
	}
}

func applyEnvironment(cfg *observability.Config) {
	if endpoint := os.Getenv(envOTLPEndpoint); endpoint != "" && cfg.OTLPEndpoint == "" {
		cfg.OTLPEndpoint = endpoint
	}

	cfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv(envOTLPHeaders))

	if os.Getenv(envOTLPInsecure) == "true" {
		cfg.OTLPInsecure = true
	}
}

// command builds the editor command over the loaded configuration.
func (rt *runtime) command() *command.Command {
	return command.New(rt.rewriter, command.Deps{
		Logger:    rt.providers.Logger,
		Metrics:   rt.metrics,
		Tracer:    rt.providers.Tracer,
		Languages: rt.cfg.Languages,
	})
}

// startDiagnostics serves health and metrics endpoints when an address is
// configured. The returned stop function is always safe to call.
func (rt *runtime) startDiagnostics(checks ...observability.ReadyCheck) (func(), error) {
	addr := rt.cfg.Telemetry.DiagnosticsAddr
	if addr == "" {
		return func() {}, nil
	}

	srv, err := observability.NewDiagnosticsServer(addr, rt.providers.MetricsHandler, checks...)
	if err != nil {
		return nil, err
	}

	rt.providers.Logger.Info("diagnostics listening", "addr", srv.Addr())

	return func() {
		closeErr := srv.Close()
		if closeErr != nil {
			rt.providers.Logger.Warn("diagnostics shutdown failed", "error", closeErr)
		}
	}, nil
}

// close flushes telemetry.
func (rt *runtime) close() {
	err := rt.providers.Shutdown(context.Background())
	if err != nil {
		rt.providers.Logger.Warn("observability shutdown failed", "error", err)
	}
}
