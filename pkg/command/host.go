package command

import (
	"context"

	"github.com/Sumatoshi-tech/classwrap/pkg/document"
)

// Host is the editor capability the command runs against. Columns are byte
// offsets into the line text. Callers with no open document pass a nil Host.
type Host interface {
	CaretLine() int
	CaretColumn() int
	CurrentLine() string
	DocumentText() string
	LineCount() int
	LineText(line int) string
	LanguageID() string
	ApplyEdit(ctx context.Context, tx document.Transaction) error
}

// BufferHost adapts an in-memory buffer to Host. ApplyEdit mutates the buffer.
type BufferHost struct {
	Buffer *document.Buffer
}

// NewBufferHost returns a host over buf.
func NewBufferHost(buf *document.Buffer) *BufferHost {
	return &BufferHost{Buffer: buf}
}

// CaretLine returns the caret line.
func (h *BufferHost) CaretLine() int { return h.Buffer.Caret().Line }

// CaretColumn returns the caret column.
func (h *BufferHost) CaretColumn() int { return h.Buffer.Caret().Column }

// CurrentLine returns the text of the caret line.
func (h *BufferHost) CurrentLine() string { return h.Buffer.LineText(h.CaretLine()) }

// DocumentText returns the whole buffer.
func (h *BufferHost) DocumentText() string { return h.Buffer.Text() }

// LineCount returns the number of lines.
func (h *BufferHost) LineCount() int { return h.Buffer.LineCount() }

// LineText returns one line.
func (h *BufferHost) LineText(line int) string { return h.Buffer.LineText(line) }

// LanguageID returns the buffer content type.
func (h *BufferHost) LanguageID() string { return h.Buffer.LanguageID() }

// ApplyEdit applies tx to the buffer atomically.
func (h *BufferHost) ApplyEdit(_ context.Context, tx document.Transaction) error {
	return h.Buffer.Apply(tx)
}

// hostDocument exposes a Host as the read-only document the rewriter plans against.
type hostDocument struct {
	host Host
}

func (d hostDocument) Text() string             { return d.host.DocumentText() }
func (d hostDocument) LineCount() int           { return d.host.LineCount() }
func (d hostDocument) LineText(line int) string { return d.host.LineText(line) }
