package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/classwrap/pkg/command"
	"github.com/Sumatoshi-tech/classwrap/pkg/document"
	"github.com/Sumatoshi-tech/classwrap/pkg/langid"
	"github.com/Sumatoshi-tech/classwrap/pkg/rewrite"
)

// Tool name constants.
const (
	ToolNameRewrite = "classwrap_rewrite"
	ToolNameScan    = "classwrap_scan"
)

// MaxCodeInputBytes is the maximum allowed size for inline code input (1 MB).
const MaxCodeInputBytes = 1 << 20

// Sentinel errors for tool input validation.
var (
	// ErrEmptyCode indicates the code parameter is empty.
	ErrEmptyCode = errors.New("code parameter is required and must not be empty")
	// ErrCodeTooLarge indicates the code input exceeds the size limit.
	ErrCodeTooLarge = errors.New("code input exceeds maximum size")
	// ErrNegativePosition indicates a negative line or column.
	ErrNegativePosition = errors.New("line and column must not be negative")
)

// RewriteInput is the input schema for the classwrap_rewrite tool.
type RewriteInput struct {
	Code     string `json:"code"               jsonschema:"JSX or TSX source to rewrite"`
	Language string `json:"language,omitempty" jsonschema:"editor language id (default: typescriptreact)"`
	Line     int    `json:"line"               jsonschema:"0-based line of the caret"`
	Column   int    `json:"column"             jsonschema:"0-based byte column of the caret"`
}

// ScanInput is the input schema for the classwrap_scan tool.
type ScanInput struct {
	Code string `json:"code" jsonschema:"JSX or TSX source to scan"`
}

// RewriteOutput is the data returned by classwrap_rewrite.
type RewriteOutput struct {
	Code        string              `json:"code"`
	ClassName   string              `json:"class_name"`
	Edits       []document.TextEdit `json:"edits"`
	ImportAdded bool                `json:"import_added"`
}

// ScanMatch is one attribute reported by classwrap_scan.
type ScanMatch struct {
	rewrite.Attribute

	Line int `json:"line"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

func validateCode(code string) error {
	if code == "" {
		return ErrEmptyCode
	}

	if len(code) > MaxCodeInputBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrCodeTooLarge, len(code), MaxCodeInputBytes)
	}

	return nil
}

func (s *Server) handleRewrite(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input RewriteInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCode(input.Code)
	if err != nil {
		return errorResult(err)
	}

	if input.Line < 0 || input.Column < 0 {
		return errorResult(fmt.Errorf("%w: %d:%d", ErrNegativePosition, input.Line, input.Column))
	}

	lang := input.Language
	if lang == "" {
		lang = langid.TypeScriptReact
	}

	buf := document.New(input.Code)
	buf.SetLanguageID(lang)
	buf.SetCaret(document.Position{Line: input.Line, Column: input.Column})

	res, err := s.command.Run(ctx, command.NewBufferHost(buf))
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(RewriteOutput{
		Code:        buf.Text(),
		ClassName:   res.ClassName,
		Edits:       res.Transaction().Edits,
		ImportAdded: res.Import != nil,
	})
}

func (s *Server) handleScan(
	_ context.Context, _ *mcpsdk.CallToolRequest, input ScanInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCode(input.Code)
	if err != nil {
		return errorResult(err)
	}

	buf := document.New(input.Code)
	rw := s.command.Rewriter()

	matches := make([]ScanMatch, 0)

	for line := range buf.LineCount() {
		for _, attr := range rw.LocateAll(buf.LineText(line)) {
			matches = append(matches, ScanMatch{Attribute: attr, Line: line})
		}
	}

	return jsonResult(matches)
}
