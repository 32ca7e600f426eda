package commands

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/classwrap/pkg/config"
	"github.com/Sumatoshi-tech/classwrap/pkg/observability"
)

func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	applyOverrides(cfg, flagOverrides{})
	assert.Equal(t, config.Default(), cfg)

	applyOverrides(cfg, flagOverrides{helper: "cx", quote: "single", noCaretCheck: true})
	assert.Equal(t, "cx", cfg.Rewrite.Helper)
	assert.Equal(t, "single", cfg.Rewrite.Quote)
	assert.False(t, cfg.Rewrite.CheckCaret)
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(envOTLPEndpoint, "collector:4317")
	t.Setenv(envOTLPHeaders, "authorization=Bearer x")
	t.Setenv(envOTLPInsecure, "true")

	cfg := observability.DefaultConfig()
	applyEnvironment(&cfg)

	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
	assert.Equal(t, "Bearer x", cfg.OTLPHeaders["authorization"])
	assert.True(t, cfg.OTLPInsecure)

	cfg = observability.DefaultConfig()
	cfg.OTLPEndpoint = "from-config:4317"
	applyEnvironment(&cfg)
	assert.Equal(t, "from-config:4317", cfg.OTLPEndpoint)
}

func TestLoadRuntime(t *testing.T) {
	opts := testGlobals(t)
	opts.Quiet = false
	opts.Verbose = true

	rt, err := loadRuntime(opts, observability.ModeCLI, flagOverrides{helper: "cx"})
	require.NoError(t, err)
	defer rt.close()

	assert.Equal(t, "cx", rt.rewriter.Options().Helper)
	assert.True(t, rt.providers.Logger.Enabled(t.Context(), slog.LevelDebug))
	assert.Equal(t, "extension.clsx-custom", rt.command().ID())
}

func TestLoadRuntime_InvalidOverride(t *testing.T) {
	_, err := loadRuntime(testGlobals(t), observability.ModeCLI, flagOverrides{quote: "backtick"})
	require.ErrorIs(t, err, config.ErrInvalidQuote)
}

func TestStartDiagnostics(t *testing.T) {
	rt, err := loadRuntime(testGlobals(t), observability.ModeLSP, flagOverrides{diagnosticsAddr: "127.0.0.1:0"})
	require.NoError(t, err)
	defer rt.close()

	require.NotNil(t, rt.providers.MetricsHandler)

	stop, err := rt.startDiagnostics()
	require.NoError(t, err)
	stop()

	plain, err := loadRuntime(testGlobals(t), observability.ModeCLI, flagOverrides{})
	require.NoError(t, err)
	defer plain.close()

	assert.Nil(t, plain.providers.MetricsHandler)

	stop, err = plain.startDiagnostics()
	require.NoError(t, err)
	stop()
}
