// Package document provides an in-memory text buffer with line access and
// all-or-nothing application of multi-edit transactions.
package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for edit validation.
var (
	ErrInvalidRange     = errors.New("edit range is outside the document")
	ErrOverlappingEdits = errors.New("edits overlap")
)

// Buffer is a mutable text document. It is not safe for concurrent use.
type Buffer struct {
	languageID string
	text       string
	lines      []string // raw lines, without the '\n' separator.
	caret      Position
}

// New creates a buffer holding text.
func New(text string) *Buffer {
	buf := &Buffer{}
	buf.setText(text)

	return buf
}

func (b *Buffer) setText(text string) {
	b.text = text
	b.lines = strings.Split(text, "\n")
}

// Text returns the full document text.
func (b *Buffer) Text() string {
	return b.text
}

// LineCount returns the number of lines. An empty document has one empty line.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineText returns the text of line i without its line terminator.
// Out-of-range lines yield the empty string.
func (b *Buffer) LineText(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}

	return strings.TrimSuffix(b.lines[i], "\r")
}

// Caret returns the caret position.
func (b *Buffer) Caret() Position {
	return b.caret
}

// SetCaret moves the caret.
func (b *Buffer) SetCaret(pos Position) {
	b.caret = pos
}

// LanguageID returns the content type of the document (e.g. "typescriptreact").
func (b *Buffer) LanguageID() string {
	return b.languageID
}

// SetLanguageID sets the content type of the document.
func (b *Buffer) SetLanguageID(id string) {
	b.languageID = id
}

// OffsetAt converts pos to a byte offset into Text.
func (b *Buffer) OffsetAt(pos Position) (int, error) {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return 0, fmt.Errorf("%w: line %d of %d", ErrInvalidRange, pos.Line, len(b.lines))
	}

	if pos.Column < 0 || pos.Column > len(b.lines[pos.Line]) {
		return 0, fmt.Errorf("%w: column %d on line %d", ErrInvalidRange, pos.Column, pos.Line)
	}

	offset := 0
	for i := range pos.Line {
		offset += len(b.lines[i]) + 1
	}

	return offset + pos.Column, nil
}

// PositionAt converts a byte offset into a position. Offsets past the end clamp to the end.
func (b *Buffer) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}

	for line, text := range b.lines {
		if offset <= len(text) {
			return Position{Line: line, Column: offset}
		}

		offset -= len(text) + 1
	}

	last := len(b.lines) - 1

	return Position{Line: last, Column: len(b.lines[last])}
}

type resolvedEdit struct {
	text       string
	start, end int
	order      int
}

// Apply commits every edit of tx or none of them. Edit ranges refer to the
// document as it was before the transaction. Two edits may not overlap; an
// insertion may sit at the start or end of another edit.
func (b *Buffer) Apply(tx Transaction) error {
	resolved, err := b.resolve(tx.Edits)
	if err != nil {
		return err
	}

	var sb strings.Builder

	sb.Grow(len(b.text))

	cursor := 0

	for _, edit := range resolved {
		sb.WriteString(b.text[cursor:edit.start])
		sb.WriteString(edit.text)
		cursor = edit.end
	}

	sb.WriteString(b.text[cursor:])
	b.setText(sb.String())

	return nil
}

func (b *Buffer) resolve(edits []TextEdit) ([]resolvedEdit, error) {
	resolved := make([]resolvedEdit, 0, len(edits))

	for i, edit := range edits {
		if edit.Range.End.Before(edit.Range.Start) {
			return nil, fmt.Errorf("%w: range %s-%s is reversed", ErrInvalidRange, edit.Range.Start, edit.Range.End)
		}

		start, err := b.OffsetAt(edit.Range.Start)
		if err != nil {
			return nil, err
		}

		end, err := b.OffsetAt(edit.Range.End)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, resolvedEdit{text: edit.NewText, start: start, end: end, order: i})
	}

	// Insertions at a shared offset go before the edit that starts there.
	sort.SliceStable(resolved, func(i, j int) bool {
		if resolved[i].start != resolved[j].start {
			return resolved[i].start < resolved[j].start
		}

		return resolved[i].end-resolved[i].start < resolved[j].end-resolved[j].start
	})

	for i := 1; i < len(resolved); i++ {
		prev, cur := resolved[i-1], resolved[i]
		if cur.start < prev.end {
			return nil, fmt.Errorf("%w: edits %d and %d", ErrOverlappingEdits, prev.order, cur.order)
		}
	}

	return resolved, nil
}
