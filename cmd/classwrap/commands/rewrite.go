package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/classwrap/pkg/command"
	"github.com/Sumatoshi-tech/classwrap/pkg/document"
	"github.com/Sumatoshi-tech/classwrap/pkg/langid"
	"github.com/Sumatoshi-tech/classwrap/pkg/levenshtein"
	"github.com/Sumatoshi-tech/classwrap/pkg/observability"
	"github.com/Sumatoshi-tech/classwrap/pkg/rewrite"
)

// Output formats.
const (
	FormatText = "text"
	FormatDiff = "diff"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	rewriteFormats = []string{FormatText, FormatDiff, FormatJSON, FormatYAML} //nolint:gochecknoglobals // flag values.
	scanFormats    = []string{FormatText, FormatJSON, FormatYAML}             //nolint:gochecknoglobals // flag values.
)

var (
	// ErrInvalidPosition indicates a line or column flag outside the file.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrUnknownFormat indicates an unsupported --format value.
	ErrUnknownFormat = errors.New("unknown output format")
)

type rewriteOptions struct {
	overrides flagOverrides
	format    string
	language  string
	line      int
	col       int
	write     bool
	noColor   bool
}

// rewriteReport is the machine-readable outcome of one rewrite.
type rewriteReport struct {
	Result   *rewrite.Result `json:"result"   yaml:"result"`
	File     string          `json:"file"     yaml:"file"`
	Language string          `json:"language" yaml:"language"`
	Output   string          `json:"output"   yaml:"output"`
	Written  bool            `json:"written"  yaml:"written"`
}

// NewRewriteCommand creates the rewrite command.
func NewRewriteCommand(global *GlobalOptions) *cobra.Command {
	opts := &rewriteOptions{}

	cmd := &cobra.Command{
		Use:   "rewrite FILE --line N --col C",
		Short: "Rewrite the class attribute at a position",
		Long: `Rewrite the class="..." attribute on line N into className={cn("...")}.

The column (1-based, in characters) must fall inside the attribute unless
--no-caret-check is given. When the file does not import the helper yet,
the import statement is inserted after the last leading import.

By default the rewritten file is printed to stdout; --write replaces the
file in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd.Context(), cmd.OutOrStdout(), global, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.line, "line", "l", 0, "line of the attribute (1-based)")
	cmd.Flags().IntVarP(&opts.col, "col", "c", 1, "caret column within the line (1-based, characters)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatText, "output format: text, diff, json, yaml")
	cmd.Flags().StringVar(&opts.language, "language", "", "editor language id (default: detected from the file)")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored diff output")
	cmd.Flags().StringVar(&opts.overrides.helper, "helper", "", "helper function name (overrides config)")
	cmd.Flags().StringVar(&opts.overrides.quote, "quote", "", "quote style of the class literal: double or single")
	cmd.Flags().BoolVar(&opts.overrides.noCaretCheck, "no-caret-check", false, "accept any column on the line")

	_ = cmd.MarkFlagRequired("line")

	return cmd
}

func runRewrite(ctx context.Context, out io.Writer, global *GlobalOptions, opts *rewriteOptions, path string) error {
	err := checkFormat(opts.format, rewriteFormats)
	if err != nil {
		return err
	}

	if opts.noColor {
		color.NoColor = true //nolint:reassign // CLI flag.
	}

	content, resolved, err := readSourceFile(path)
	if err != nil {
		return err
	}

	buf := document.New(string(content))

	caret, err := caretPosition(buf, opts.line, opts.col)
	if err != nil {
		return err
	}

	buf.SetCaret(caret)

	lang := opts.language
	if lang == "" {
		lang = langid.Detect(resolved, content)
	}

	buf.SetLanguageID(lang)

	rt, err := loadRuntime(global, observability.ModeCLI, opts.overrides)
	if err != nil {
		return err
	}
	defer rt.close()

	if opts.language != "" && !langid.Supported(lang, rt.cfg.Languages) {
		hint := levenshtein.Suggestion(lang, rt.cfg.Languages)
		if hint != "" {
			return fmt.Errorf("%w: content type %q%s", command.ErrUnsupportedContentType, lang, hint)
		}
	}

	ctx = observability.WithDocument(ctx, resolved)

	result, err := rt.command().Run(ctx, command.NewBufferHost(buf))
	if err != nil {
		return err
	}

	after := buf.Text()

	if opts.write {
		err = writeFileAtomic(resolved, []byte(after))
		if err != nil {
			return err
		}

		rt.providers.Logger.InfoContext(ctx, "rewrote class attribute",
			"file", resolved, "line", result.Line+1, "import_added", result.Import != nil)
	}

	report := rewriteReport{Result: result, File: resolved, Language: lang, Output: after, Written: opts.write}

	return renderRewrite(out, opts, report, string(content))
}

func checkFormat(format string, allowed []string) error {
	if slices.Contains(allowed, format) {
		return nil
	}

	return fmt.Errorf("%w: %q%s", ErrUnknownFormat, format, levenshtein.Suggestion(format, allowed))
}

// caretPosition converts 1-based line and character column flags into a
// zero-based byte position of buf.
func caretPosition(buf *document.Buffer, line, col int) (document.Position, error) {
	if line < 1 || line > buf.LineCount() {
		return document.Position{}, fmt.Errorf("%w: line %d outside 1..%d", ErrInvalidPosition, line, buf.LineCount())
	}

	if col < 1 {
		return document.Position{}, fmt.Errorf("%w: column %d", ErrInvalidPosition, col)
	}

	text := buf.LineText(line - 1)

	return document.Position{Line: line - 1, Column: document.RuneToByteColumn(text, col-1)}, nil
}

func renderRewrite(out io.Writer, opts *rewriteOptions, report rewriteReport, before string) error {
	switch opts.format {
	case FormatDiff:
		renderDiff(out, report.File, before, report.Output)

		return nil
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()

		return enc.Encode(report)
	default:
		if opts.write {
			return nil
		}

		_, err := io.WriteString(out, report.Output)

		return err
	}
}

// renderDiff prints the changed lines between before and after, one hunk
// header per run of changes.
func renderDiff(out io.Writer, path, before, after string) {
	dmp := diffmatchpatch.New()
	runesBefore, runesAfter, lines := dmp.DiffLinesToRunes(before, after)
	// Each rune stands for a whole line, so the diffs stay line aligned.
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(runesBefore, runesAfter, false), lines)

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	bold.Fprintf(out, "--- %s\n", path)
	bold.Fprintf(out, "+++ %s\n", path)

	lineNo := 1
	inHunk := false

	for _, diff := range diffs {
		diffLines := splitDiffLines(diff.Text)

		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			lineNo += len(diffLines)
			inHunk = false
		case diffmatchpatch.DiffDelete:
			if !inHunk {
				cyan.Fprintf(out, "@@ line %d @@\n", lineNo)

				inHunk = true
			}

			for _, l := range diffLines {
				red.Fprintf(out, "-%s\n", l)
			}
		case diffmatchpatch.DiffInsert:
			if !inHunk {
				cyan.Fprintf(out, "@@ line %d @@\n", lineNo)

				inHunk = true
			}

			for _, l := range diffLines {
				green.Fprintf(out, "+%s\n", l)
			}

			lineNo += len(diffLines)
		}
	}
}

func splitDiffLines(text string) []string {
	if text == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
