package lsp

import (
	"fmt"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/Sumatoshi-tech/classwrap/pkg/document"
	"github.com/Sumatoshi-tech/classwrap/pkg/safeconv"
)

// DocumentStore is a thread-safe store of open documents keyed by URI.
type DocumentStore struct {
	documents map[string]*document.Buffer
	mu        sync.RWMutex
}

// NewDocumentStore creates a new empty DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*document.Buffer),
	}
}

// Open stores a document with its language identifier, replacing any previous version.
func (ds *DocumentStore) Open(uri, languageID, text string) {
	buf := document.New(text)
	buf.SetLanguageID(languageID)

	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.documents[uri] = buf
}

// Change applies content changes in order. Whole-document events replace the
// text; ranged events are spliced with UTF-16 columns converted to bytes.
// The stored document is replaced only when every change applies.
func (ds *DocumentStore) Change(uri string, changes []any) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	stored, ok := ds.documents[uri]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
	}

	buf := replaceText(stored, stored.Text())

	for _, change := range changes {
		switch ev := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			buf = replaceText(buf, ev.Text)
		case protocol.TextDocumentContentChangeEvent:
			if ev.Range == nil {
				buf = replaceText(buf, ev.Text)

				continue
			}

			err := buf.Apply(document.Transaction{Edits: []document.TextEdit{
				document.Replace(fromProtocolRange(buf, *ev.Range), ev.Text),
			}})
			if err != nil {
				return fmt.Errorf("apply change to %s: %w", uri, err)
			}
		}
	}

	ds.documents[uri] = buf

	return nil
}

// Get returns a private copy of the document, safe to read without locking.
func (ds *DocumentStore) Get(uri string) (*document.Buffer, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	buf, ok := ds.documents[uri]
	if !ok {
		return nil, false
	}

	return replaceText(buf, buf.Text()), true
}

// Delete removes the document.
func (ds *DocumentStore) Delete(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.documents, uri)
}

// Len returns the number of open documents.
func (ds *DocumentStore) Len() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	return len(ds.documents)
}

func replaceText(buf *document.Buffer, text string) *document.Buffer {
	next := document.New(text)
	next.SetLanguageID(buf.LanguageID())

	return next
}

func fromProtocolPosition(buf *document.Buffer, pos protocol.Position) document.Position {
	line := int(pos.Line)

	return document.Position{
		Line:   line,
		Column: document.UTF16ToByteColumn(buf.LineText(line), int(pos.Character)),
	}
}

func fromProtocolRange(buf *document.Buffer, rng protocol.Range) document.Range {
	return document.Range{
		Start: fromProtocolPosition(buf, rng.Start),
		End:   fromProtocolPosition(buf, rng.End),
	}
}

func toProtocolPosition(buf *document.Buffer, pos document.Position) protocol.Position {
	character := document.ByteToUTF16Column(buf.LineText(pos.Line), pos.Column)

	return protocol.Position{
		Line:      safeconv.MustIntToUint32(pos.Line),
		Character: safeconv.MustIntToUint32(character),
	}
}

// toProtocolEdits converts a transaction planned against buf into LSP text edits.
func toProtocolEdits(buf *document.Buffer, tx document.Transaction) []protocol.TextEdit {
	edits := make([]protocol.TextEdit, 0, len(tx.Edits))

	for _, edit := range tx.Edits {
		edits = append(edits, protocol.TextEdit{
			Range: protocol.Range{
				Start: toProtocolPosition(buf, edit.Range.Start),
				End:   toProtocolPosition(buf, edit.Range.End),
			},
			NewText: edit.NewText,
		})
	}

	return edits
}
