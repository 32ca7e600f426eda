package document

import "fmt"

// Position is a zero-based line and byte column.
type Position struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}

	return p.Column < other.Column
}

// String renders the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range is a half-open span [Start, End) of a document.
type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end"   yaml:"end"`
}

// Empty reports whether the range covers no text.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// TextEdit replaces the text covered by Range with NewText.
// An insertion has an empty range.
type TextEdit struct {
	NewText string `json:"new_text" yaml:"new_text"`
	Range   Range  `json:"range"    yaml:"range"`
}

// Replace returns an edit that replaces rng with text.
func Replace(rng Range, text string) TextEdit {
	return TextEdit{Range: rng, NewText: text}
}

// Insert returns an edit that inserts text at pos.
func Insert(pos Position, text string) TextEdit {
	return TextEdit{Range: Range{Start: pos, End: pos}, NewText: text}
}

// Transaction is a set of edits that commit together or not at all.
type Transaction struct {
	Label string     `json:"label" yaml:"label"`
	Edits []TextEdit `json:"edits" yaml:"edits"`
}
