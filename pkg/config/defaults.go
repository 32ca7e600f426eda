package config

import (
	"github.com/Sumatoshi-tech/classwrap/pkg/langid"
	"github.com/Sumatoshi-tech/classwrap/pkg/rewrite"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Rewrite defaults.
const (
	DefaultHelper       = rewrite.DefaultHelper
	DefaultQuote        = "double"
	DefaultImportName   = rewrite.DefaultImportName
	DefaultImportSource = rewrite.DefaultImportSource
	DefaultImportQuote  = "double"
	DefaultCheckCaret   = true
)

// Logging and telemetry defaults.
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = LogFormatText
	DefaultSampleRatio  = 0.0
	DefaultOTLPInsecure = false
)

// DefaultLanguages are the editor language ids the command accepts.
var DefaultLanguages = langid.DefaultSupported //nolint:gochecknoglobals // read-only defaults.
