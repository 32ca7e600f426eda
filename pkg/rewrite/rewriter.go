// Package rewrite turns a JSX class attribute literal into a call of a
// class-list joining helper and decides whether the helper import has to be
// added to the document.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/classwrap/pkg/document"
	"github.com/Sumatoshi-tech/classwrap/pkg/textutil"
)

// importKeyword starts every line of the leading import block.
const importKeyword = "import"

var (
	// attributePattern matches class="..." and className="..." in any casing.
	attributePattern = regexp.MustCompile(`(?i)class(name)?="([^"]+)"`)

	defaultImportPattern = compileImportPattern(DefaultImportSource)
)

func compileImportPattern(source string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)import \w+ from ['"]` + regexp.QuoteMeta(source) + `['"];?`)
}

// Span is a half-open byte range [Start, End) within one line.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Contains reports whether col lies inside the span or touches one of its ends.
func (s Span) Contains(col int) bool {
	return col >= s.Start && col <= s.End
}

// Attribute is one class attribute found on a line.
type Attribute struct {
	Span  Span   `json:"span"  yaml:"span"`
	Text  string `json:"text"  yaml:"text"`
	Value string `json:"value" yaml:"value"`
}

// LineReader gives indexed access to the lines of a document.
type LineReader interface {
	LineCount() int
	LineText(line int) string
}

// Document is the read-only view Plan needs of the host buffer.
type Document interface {
	LineReader
	Text() string
}

// Rewriter holds compiled options. It keeps no state between calls.
type Rewriter struct {
	importPattern *regexp.Regexp
	opts          Options
}

// New validates opts and returns a Rewriter for them.
func New(opts Options) (*Rewriter, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	pattern := defaultImportPattern
	if !strings.EqualFold(opts.ImportSource, DefaultImportSource) {
		pattern = compileImportPattern(opts.ImportSource)
	}

	return &Rewriter{importPattern: pattern, opts: opts}, nil
}

// Default returns a Rewriter configured with DefaultOptions.
func Default() *Rewriter {
	return &Rewriter{importPattern: defaultImportPattern, opts: DefaultOptions()}
}

// Options returns the options the rewriter was built with.
func (r *Rewriter) Options() Options {
	return r.opts
}

// Locate finds the first class attribute on line. When caret checking is
// enabled the caret column must lie within the attribute or touch its ends.
func (r *Rewriter) Locate(line string, caretColumn int) (Span, error) {
	loc := attributePattern.FindStringIndex(line)
	if loc == nil {
		return Span{}, ErrNotFound
	}

	span := Span{Start: loc[0], End: loc[1]}

	if r.opts.CheckCaret && !span.Contains(caretColumn) {
		return Span{}, fmt.Errorf("%w: caret at column %d, attribute spans [%d, %d)",
			ErrOutOfScope, caretColumn, span.Start, span.End)
	}

	return span, nil
}

// LocateAll returns every class attribute on line, left to right.
func (r *Rewriter) LocateAll(line string) []Attribute {
	locs := attributePattern.FindAllStringIndex(line, -1)
	attrs := make([]Attribute, 0, len(locs))

	for _, loc := range locs {
		text := line[loc[0]:loc[1]]

		value, err := ExtractClassName(text)
		if err != nil {
			continue
		}

		attrs = append(attrs, Attribute{
			Span:  Span{Start: loc[0], End: loc[1]},
			Text:  text,
			Value: value,
		})
	}

	return attrs
}

// ExtractClassName returns the contents of the first double-quoted segment of matched.
func ExtractClassName(matched string) (string, error) {
	fields := strings.Split(matched, `"`)
	if len(fields) < 2 || fields[1] == "" {
		return "", fmt.Errorf("%w: %q", ErrParse, matched)
	}

	return fields[1], nil
}

// BuildReplacement formats the helper call that replaces the attribute.
func (r *Rewriter) BuildReplacement(className string) string {
	q := r.opts.Quote

	return "className={" + r.opts.Helper + "(" + q + className + q + ")}"
}

// ImportStatement is the line inserted when the helper is not yet imported,
// without the trailing newline.
func (r *Rewriter) ImportStatement() string {
	q := r.opts.ImportQuote

	return importKeyword + " " + r.opts.ImportName + " from " + q + r.opts.ImportSource + q + ";"
}

// NeedsImport reports whether documentText lacks a default import of the helper module.
func (r *Rewriter) NeedsImport(documentText string) bool {
	return !r.importPattern.MatchString(documentText)
}

// FindImportInsertionLine returns the index of the first line that does not
// start with "import".
func FindImportInsertionLine(doc LineReader) (int, error) {
	count := doc.LineCount()

	line := 0
	for line < count && strings.HasPrefix(doc.LineText(line), importKeyword) {
		line++
	}

	if line >= count {
		return 0, fmt.Errorf("%w: all %d lines are imports", ErrNoInsertionPoint, count)
	}

	return line, nil
}

// Result is a validated rewrite, ready to be applied as one transaction.
type Result struct {
	// Import is nil when the document already imports the helper.
	Import      *document.TextEdit `json:"import,omitempty" yaml:"import,omitempty"`
	ClassName   string             `json:"class_name"       yaml:"class_name"`
	Replacement document.TextEdit  `json:"replacement"      yaml:"replacement"`
	Span        Span               `json:"span"             yaml:"span"`
	Line        int                `json:"line"             yaml:"line"`
}

// Transaction bundles the replacement and the optional import insertion.
func (res *Result) Transaction() document.Transaction {
	edits := make([]document.TextEdit, 0, 2) //nolint:mnd // replacement plus optional import.
	edits = append(edits, res.Replacement)

	if res.Import != nil {
		edits = append(edits, *res.Import)
	}

	return document.Transaction{Label: "Wrap class in helper call", Edits: edits}
}

// Plan computes the rewrite for the caret position in doc. Nothing is
// mutated; a non-nil error means no edit must be applied.
func (r *Rewriter) Plan(doc Document, caret document.Position) (*Result, error) {
	line := ""
	if caret.Line >= 0 && caret.Line < doc.LineCount() {
		line = doc.LineText(caret.Line)
	}

	return r.PlanLine(line, caret, doc)
}

// PlanLine is Plan with the caret line text supplied by the caller.
func (r *Rewriter) PlanLine(line string, caret document.Position, doc Document) (*Result, error) {
	span, err := r.Locate(line, caret.Column)
	if err != nil {
		return nil, err
	}

	value, err := ExtractClassName(line[span.Start:span.End])
	if err != nil {
		return nil, err
	}

	res := &Result{
		ClassName: value,
		Span:      span,
		Line:      caret.Line,
		Replacement: document.Replace(document.Range{
			Start: document.Position{Line: caret.Line, Column: span.Start},
			End:   document.Position{Line: caret.Line, Column: span.End},
		}, r.BuildReplacement(value)),
	}

	if r.NeedsImport(doc.Text()) {
		at, insertErr := FindImportInsertionLine(doc)
		if insertErr != nil {
			return nil, insertErr
		}

		ending := textutil.LineEnding([]byte(doc.Text()))
		edit := document.Insert(document.Position{Line: at}, r.ImportStatement()+ending)
		res.Import = &edit
	}

	return res, nil
}
