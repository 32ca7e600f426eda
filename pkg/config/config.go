// Package config provides YAML-based configuration for classwrap.
package config

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/classwrap/pkg/observability"
	"github.com/Sumatoshi-tech/classwrap/pkg/rewrite"
)

// Sentinel validation errors.
var (
	ErrInvalidQuote       = errors.New("invalid quote style")
	ErrNoLanguages        = errors.New("at least one language id must be enabled")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrInvalidSampleRatio = errors.New("sample ratio must be within [0, 1]")
)

// Config is the top-level configuration. Field tags use mapstructure for
// viper unmarshalling and yaml for `config show`.
type Config struct {
	Rewrite   RewriteConfig   `mapstructure:"rewrite"   yaml:"rewrite"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
	Languages []string        `mapstructure:"languages" yaml:"languages"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
}

// RewriteConfig controls the generated helper call and import.
type RewriteConfig struct {
	Helper       string `mapstructure:"helper"        yaml:"helper"`
	Quote        string `mapstructure:"quote"         yaml:"quote"`
	ImportName   string `mapstructure:"import_name"   yaml:"import_name"`
	ImportSource string `mapstructure:"import_source" yaml:"import_source"`
	ImportQuote  string `mapstructure:"import_quote"  yaml:"import_quote"`
	CheckCaret   bool   `mapstructure:"check_caret"   yaml:"check_caret"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint    string  `mapstructure:"otlp_endpoint"    yaml:"otlp_endpoint"`
	Environment     string  `mapstructure:"environment"      yaml:"environment"`
	DiagnosticsAddr string  `mapstructure:"diagnostics_addr" yaml:"diagnostics_addr"`
	SampleRatio     float64 `mapstructure:"sample_ratio"     yaml:"sample_ratio"`
	OTLPInsecure    bool    `mapstructure:"otlp_insecure"    yaml:"otlp_insecure"`
}

// Validate checks the configuration for values the hosts cannot use.
func (c *Config) Validate() error {
	_, err := c.RewriteOptions()
	if err != nil {
		return err
	}

	if len(c.Languages) == 0 {
		return ErrNoLanguages
	}

	if c.Logging.Format != LogFormatText && c.Logging.Format != LogFormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, c.Telemetry.SampleRatio)
	}

	return nil
}

// RewriteOptions converts the rewrite section into validated rewriter options.
func (c *Config) RewriteOptions() (rewrite.Options, error) {
	quote, err := rewrite.QuoteFromName(c.Rewrite.Quote)
	if err != nil {
		return rewrite.Options{}, fmt.Errorf("%w: rewrite.quote: %w", ErrInvalidQuote, err)
	}

	importQuote, err := rewrite.QuoteFromName(c.Rewrite.ImportQuote)
	if err != nil {
		return rewrite.Options{}, fmt.Errorf("%w: rewrite.import_quote: %w", ErrInvalidQuote, err)
	}

	opts := rewrite.Options{
		Helper:       c.Rewrite.Helper,
		Quote:        quote,
		ImportName:   c.Rewrite.ImportName,
		ImportSource: c.Rewrite.ImportSource,
		ImportQuote:  importQuote,
		CheckCaret:   c.Rewrite.CheckCaret,
	}

	err = opts.Validate()
	if err != nil {
		return rewrite.Options{}, err
	}

	return opts, nil
}

// Observability returns the observability settings for the given mode.
func (c *Config) Observability(mode observability.AppMode, version string) observability.Config {
	cfg := observability.DefaultConfig()
	cfg.Mode = mode
	cfg.ServiceVersion = version
	cfg.Environment = c.Telemetry.Environment
	cfg.OTLPEndpoint = c.Telemetry.OTLPEndpoint
	cfg.OTLPInsecure = c.Telemetry.OTLPInsecure
	cfg.SampleRatio = c.Telemetry.SampleRatio
	cfg.LogLevel = observability.ParseLevel(c.Logging.Level)
	cfg.LogJSON = c.Logging.Format == LogFormatJSON
	cfg.Prometheus = c.Telemetry.DiagnosticsAddr != ""

	return cfg
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Rewrite: RewriteConfig{
			Helper:       DefaultHelper,
			Quote:        DefaultQuote,
			ImportName:   DefaultImportName,
			ImportSource: DefaultImportSource,
			ImportQuote:  DefaultImportQuote,
			CheckCaret:   DefaultCheckCaret,
		},
		Languages: append([]string(nil), DefaultLanguages...),
		Logging:   LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}
