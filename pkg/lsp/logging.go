package lsp

import (
	"log/slog"

	"github.com/tliron/commonlog"
	commonslog "github.com/tliron/commonlog/slog"
)

// RouteProtocolLogs sends the JSON-RPC and protocol logs of the glsp stack to
// logger. Only errors pass unless debug is set.
func RouteProtocolLogs(logger *slog.Logger, debug bool) {
	backend := commonslog.NewBackend()
	backend.Logger = logger
	backend.Buffered = false

	level := commonlog.Error
	if debug {
		level = commonlog.Debug
	}

	backend.SetMaxLevel(level)
	commonlog.SetBackend(backend)
}
