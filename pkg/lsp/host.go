package lsp

import (
	"context"
	"errors"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/Sumatoshi-tech/classwrap/pkg/document"
)

// ErrEditRejected is reported when the client declines a workspace edit.
var ErrEditRejected = errors.New("client rejected the edit")

// editorHost presents one open document and a caret to the rewrite command.
// The snapshot is taken when the request arrives; edits go back to the client
// through workspace/applyEdit.
type editorHost struct {
	buf   *document.Buffer
	apply func(ctx context.Context, edit protocol.WorkspaceEdit, label string) error
	uri   string
}

func (h *editorHost) CaretLine() int           { return h.buf.Caret().Line }
func (h *editorHost) CaretColumn() int         { return h.buf.Caret().Column }
func (h *editorHost) CurrentLine() string      { return h.buf.LineText(h.CaretLine()) }
func (h *editorHost) DocumentText() string     { return h.buf.Text() }
func (h *editorHost) LineCount() int           { return h.buf.LineCount() }
func (h *editorHost) LineText(line int) string { return h.buf.LineText(line) }
func (h *editorHost) LanguageID() string       { return h.buf.LanguageID() }

func (h *editorHost) ApplyEdit(ctx context.Context, tx document.Transaction) error {
	return h.apply(ctx, h.workspaceEdit(tx), tx.Label)
}

func (h *editorHost) workspaceEdit(tx document.Transaction) protocol.WorkspaceEdit {
	return protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			h.uri: toProtocolEdits(h.buf, tx),
		},
	}
}

// clientApplier sends workspace/applyEdit on the connection of glspCtx.
// The response is awaited on the dispatcher so the request handler that
// triggered the edit can return first.
func (srv *Server) clientApplier(glspCtx *glsp.Context) func(context.Context, protocol.WorkspaceEdit, string) error {
	return func(ctx context.Context, edit protocol.WorkspaceEdit, label string) error {
		srv.dispatch(func() {
			var resp protocol.ApplyWorkspaceEditResponse

			glspCtx.Call(protocol.ServerWorkspaceApplyEdit, protocol.ApplyWorkspaceEditParams{
				Label: &label,
				Edit:  edit,
			}, &resp)

			if resp.Applied {
				return
			}

			reason := ErrEditRejected.Error()
			if resp.FailureReason != nil {
				reason += ": " + *resp.FailureReason
			}

			srv.logger.WarnContext(ctx, "workspace edit not applied", "reason", reason)
			showError(glspCtx, "Error: "+reason)
		})

		return nil
	}
}

func showError(glspCtx *glsp.Context, message string) {
	glspCtx.Notify(protocol.ServerWindowShowMessage, protocol.ShowMessageParams{
		Type:    protocol.MessageTypeError,
		Message: message,
	})
}
