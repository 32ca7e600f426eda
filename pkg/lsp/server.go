// Package lsp provides a Language Server Protocol (LSP) server that offers
// the class attribute rewrite as a code action and an executable command.
package lsp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/Sumatoshi-tech/classwrap/pkg/command"
	"github.com/Sumatoshi-tech/classwrap/pkg/levenshtein"
	"github.com/Sumatoshi-tech/classwrap/pkg/observability"
	"github.com/Sumatoshi-tech/classwrap/pkg/safeconv"
)

// ServerName is reported to clients in the initialize response.
const ServerName = "classwrap"

// Sentinel errors for request handling.
var (
	ErrUnknownDocument  = errors.New("document is not open")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrBadArguments     = errors.New("expected arguments [uri, line, character]")
	ErrNotInitialized   = errors.New("server not initialized")
	ErrUnknownTransport = errors.New("unsupported transport")
)

// commandArgCount is the number of positional executeCommand arguments.
const commandArgCount = 3

// Transport selects how the server talks to the client.
type Transport string

// Supported transports.
const (
	TransportStdio     Transport = "stdio"
	TransportTCP       Transport = "tcp"
	TransportWebSocket Transport = "websocket"
)

var transports = []string{ //nolint:gochecknoglobals // flag values.
	string(TransportStdio), string(TransportTCP), string(TransportWebSocket),
}

// Deps holds the server collaborators.
type Deps struct {
	Command *command.Command
	Logger  *slog.Logger
	Version string
}

// Server implements the classwrap LSP server.
type Server struct {
	store    *DocumentStore
	command  *command.Command
	logger   *slog.Logger
	dispatch func(func())
	version  string
	handler  protocol.Handler
}

// NewServer creates a server with default handlers.
func NewServer(deps Deps) *Server {
	srv := &Server{
		store:    NewDocumentStore(),
		command:  deps.Command,
		logger:   deps.Logger,
		version:  deps.Version,
		dispatch: func(fn func()) { go fn() },
	}

	if srv.logger == nil {
		srv.logger = slog.Default()
	}

	srv.handler = protocol.Handler{
		Initialize:              srv.initialize,
		Initialized:             srv.initialized,
		Shutdown:                srv.shutdown,
		SetTrace:                srv.setTrace,
		TextDocumentDidOpen:     srv.didOpen,
		TextDocumentDidChange:   srv.didChange,
		TextDocumentDidClose:    srv.didClose,
		TextDocumentCodeAction:  srv.codeAction,
		WorkspaceExecuteCommand: srv.executeCommand,
	}

	return srv
}

// Run serves one client until it disconnects. addr is ignored for stdio.
func (srv *Server) Run(transport Transport, addr string, debug bool) error {
	lspServer := server.NewServer(&srv.handler, ServerName, debug)

	var err error

	switch transport {
	case TransportStdio, "":
		err = lspServer.RunStdio()
	case TransportTCP:
		err = lspServer.RunTCP(addr)
	case TransportWebSocket:
		err = lspServer.RunWebSocket(addr)
	default:
		return fmt.Errorf("%w: %q%s", ErrUnknownTransport, transport, levenshtein.Suggestion(string(transport), transports))
	}

	if err != nil {
		return fmt.Errorf("lsp server: %w", err)
	}

	return nil
}

// Ready reports whether a client has completed the initialize handshake.
func (srv *Server) Ready(_ context.Context) error {
	if !srv.handler.IsInitialized() {
		return ErrNotInitialized
	}

	return nil
}

func (srv *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := srv.handler.CreateServerCapabilities()
	capabilities.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindRefactorRewrite},
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{command.CommandID},
	}

	if params.ClientInfo != nil {
		srv.logger.Info("client connected", "client", params.ClientInfo.Name)
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &srv.version,
		},
	}, nil
}

func (srv *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (srv *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)

	return nil
}

func (srv *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	return nil
}

func (srv *Server) didOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	srv.store.Open(doc.URI, doc.LanguageID, doc.Text)

	return nil
}

func (srv *Server) didChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	return srv.store.Change(params.TextDocument.URI, params.ContentChanges)
}

func (srv *Server) didClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	srv.store.Delete(params.TextDocument.URI)

	return nil
}

// codeAction offers the rewrite when it would succeed at the start of the
// requested range. Failures mean no action rather than an error.
func (srv *Server) codeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	uri := params.TextDocument.URI

	buf, ok := srv.store.Get(uri)
	if !ok {
		return nil, nil //nolint:nilnil // LSP expects null when there is nothing to offer.
	}

	buf.SetCaret(fromProtocolPosition(buf, params.Range.Start))

	host := &editorHost{buf: buf, uri: uri}

	res, err := srv.command.Prepare(host)
	if err != nil {
		srv.logger.Debug("no rewrite offered", "document", uri, "kind", command.Kind(err))

		return nil, nil //nolint:nilnil // LSP expects null when there is nothing to offer.
	}

	kind := protocol.CodeActionKindRefactorRewrite
	edit := host.workspaceEdit(res.Transaction())

	return []protocol.CodeAction{{
		Title: srv.actionTitle(),
		Kind:  &kind,
		Edit:  &edit,
	}}, nil
}

func (srv *Server) actionTitle() string {
	return fmt.Sprintf("Wrap class in %s()", srv.command.Rewriter().Options().Helper)
}

// executeCommand runs the rewrite for [uri, line, character]. Errors are
// shown to the user and returned to the caller.
func (srv *Server) executeCommand(glspCtx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if params.Command != command.CommandID {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, params.Command)
	}

	uri, pos, err := parseCommandArgs(params.Arguments)
	if err != nil {
		showError(glspCtx, "Error: "+err.Error())

		return nil, err
	}

	ctx := observability.WithDocument(context.Background(), uri)

	var host command.Host

	if buf, ok := srv.store.Get(uri); ok {
		buf.SetCaret(fromProtocolPosition(buf, pos))
		host = &editorHost{buf: buf, uri: uri, apply: srv.clientApplier(glspCtx)}
	}

	_, err = srv.command.Run(ctx, host)
	if err != nil {
		showError(glspCtx, err.Error())

		return nil, err
	}

	return nil, nil //nolint:nilnil // executeCommand has no result.
}

func parseCommandArgs(args []any) (string, protocol.Position, error) {
	if len(args) != commandArgCount {
		return "", protocol.Position{}, fmt.Errorf("%w: got %d", ErrBadArguments, len(args))
	}

	uri, uriOK := args[0].(string)
	line, lineOK := asUInteger(args[1])
	character, charOK := asUInteger(args[2])

	if !uriOK || !lineOK || !charOK {
		return "", protocol.Position{}, fmt.Errorf("%w: %v", ErrBadArguments, args)
	}

	return uri, protocol.Position{Line: line, Character: character}, nil
}

// asUInteger accepts JSON numbers as decoded by encoding/json as well as
// values passed directly from Go.
func asUInteger(v any) (protocol.UInteger, bool) {
	switch n := v.(type) {
	case float64:
		return safeconv.FloatToUint32(n)
	case int:
		return safeconv.IntToUint32(n)
	case protocol.UInteger:
		return n, true
	default:
		return 0, false
	}
}

var _ command.Host = (*editorHost)(nil)
