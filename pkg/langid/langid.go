// Package langid maps files to the editor language identifiers the rewrite
// command accepts.
package langid

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/src-d/enry/v2"
)

// Editor language identifiers.
const (
	TypeScriptReact = "typescriptreact"
	JavaScriptReact = "javascriptreact"
)

// DefaultSupported lists the content types the rewrite applies to.
var DefaultSupported = []string{TypeScriptReact, JavaScriptReact} //nolint:gochecknoglobals // read-only defaults.

// extensionIDs pins the React dialects; enry folds .jsx into JavaScript.
var extensionIDs = map[string]string{ //nolint:gochecknoglobals // lookup table.
	".tsx": TypeScriptReact,
	".jsx": JavaScriptReact,
}

// enryIDs maps enry language names to editor language identifiers where they differ.
var enryIDs = map[string]string{ //nolint:gochecknoglobals // lookup table.
	"TSX":        TypeScriptReact,
	"JSX":        JavaScriptReact,
	"TypeScript": "typescript",
	"JavaScript": "javascript",
}

// Detect returns the editor language identifier for filename, consulting
// content only when the extension is not decisive. Unknown files yield "".
func Detect(filename string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if id, ok := extensionIDs[ext]; ok {
		return id
	}

	lang := enry.GetLanguage(filepath.Base(filename), content)
	if lang == "" {
		return ""
	}

	if id, ok := enryIDs[lang]; ok {
		return id
	}

	return strings.ToLower(strings.ReplaceAll(lang, " ", ""))
}

// Supported reports whether id is one of allowed. A nil allowed list means DefaultSupported.
func Supported(id string, allowed []string) bool {
	if allowed == nil {
		allowed = DefaultSupported
	}

	return slices.Contains(allowed, id)
}
