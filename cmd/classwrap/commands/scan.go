package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/classwrap/pkg/document"
	"github.com/Sumatoshi-tech/classwrap/pkg/observability"
	"github.com/Sumatoshi-tech/classwrap/pkg/rewrite"
)

// scanMatch is one attribute found by scan. Line and Column are 1-based,
// Column counted in characters.
type scanMatch struct {
	rewrite.Attribute `yaml:",inline"`

	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// scanReport lists the attributes of one file.
type scanReport struct {
	File        string      `json:"file"         yaml:"file"`
	Matches     []scanMatch `json:"matches"      yaml:"matches"`
	NeedsImport bool        `json:"needs_import" yaml:"needs_import"`
}

// NewScanCommand creates the scan command.
func NewScanCommand(global *GlobalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan FILE",
		Short: "List the class attributes of a file",
		Long: `List every class="..." attribute that rewrite would accept, with the
1-based line and column to pass to rewrite.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.OutOrStdout(), global, format, args[0])
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: text, json, yaml")

	return cmd
}

func runScan(out io.Writer, global *GlobalOptions, format, path string) error {
	err := checkFormat(format, scanFormats)
	if err != nil {
		return err
	}

	content, resolved, err := readSourceFile(path)
	if err != nil {
		return err
	}

	rt, err := loadRuntime(global, observability.ModeCLI, flagOverrides{})
	if err != nil {
		return err
	}
	defer rt.close()

	report := scanDocument(rt.rewriter, document.New(string(content)))
	report.File = resolved

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()

		return enc.Encode(report)
	default:
		_, err = io.WriteString(out, formatScanTable(report))

		return err
	}
}

func scanDocument(rw *rewrite.Rewriter, buf *document.Buffer) scanReport {
	report := scanReport{Matches: []scanMatch{}, NeedsImport: rw.NeedsImport(buf.Text())}

	for i := range buf.LineCount() {
		line := buf.LineText(i)

		for _, attr := range rw.LocateAll(line) {
			report.Matches = append(report.Matches, scanMatch{
				Attribute: attr,
				Line:      i + 1,
				Column:    utf8.RuneCountInString(line[:attr.Span.Start]) + 1,
			})
		}
	}

	return report
}

func formatScanTable(report scanReport) string {
	if len(report.Matches) == 0 {
		return "no class attributes found\n"
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Line", "Column", "Class", "Attribute"})

	for _, match := range report.Matches {
		tbl.AppendRow(table.Row{
			match.Line,
			match.Column,
			sanitizeForTerminal(match.Value),
			sanitizeForTerminal(match.Text),
		})
	}

	caption := fmt.Sprintf("Total: %d attributes", len(report.Matches))
	if report.NeedsImport {
		caption += " (import missing)"
	}

	tbl.SetCaption(caption)

	return tbl.Render() + "\n"
}
