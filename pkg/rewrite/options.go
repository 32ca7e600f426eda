package rewrite

import (
	"fmt"
	"regexp"
)

// Quote characters accepted for generated string literals.
const (
	QuoteDouble = `"`
	QuoteSingle = `'`
)

// Default option values.
const (
	DefaultHelper       = "cn"
	DefaultImportName   = "classNames"
	DefaultImportSource = "classnames"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Options controls the text the rewriter generates.
type Options struct {
	// Helper is the identifier of the class-list joining function called in the replacement.
	Helper string
	// Quote wraps the class value inside the helper call.
	Quote string
	// ImportName is the default-import binding of the generated import statement.
	ImportName string
	// ImportSource is the module the helper is imported from.
	ImportSource string
	// ImportQuote wraps ImportSource in the generated import statement.
	ImportQuote string
	// CheckCaret rejects invocations whose caret lies outside the located attribute.
	CheckCaret bool
}

// DefaultOptions returns the options matching the stock command:
// className={cn("...")} plus import classNames from "classnames";.
func DefaultOptions() Options {
	return Options{
		Helper:       DefaultHelper,
		Quote:        QuoteDouble,
		ImportName:   DefaultImportName,
		ImportSource: DefaultImportSource,
		ImportQuote:  QuoteDouble,
		CheckCaret:   true,
	}
}

// Validate reports whether the options can produce well-formed output.
func (o Options) Validate() error {
	if !identifierPattern.MatchString(o.Helper) {
		return fmt.Errorf("%w: helper %q is not an identifier", ErrInvalidOptions, o.Helper)
	}

	if !identifierPattern.MatchString(o.ImportName) {
		return fmt.Errorf("%w: import name %q is not an identifier", ErrInvalidOptions, o.ImportName)
	}

	if o.ImportSource == "" {
		return fmt.Errorf("%w: import source is empty", ErrInvalidOptions)
	}

	if !isQuote(o.Quote) {
		return fmt.Errorf("%w: quote %q", ErrInvalidOptions, o.Quote)
	}

	if !isQuote(o.ImportQuote) {
		return fmt.Errorf("%w: import quote %q", ErrInvalidOptions, o.ImportQuote)
	}

	return nil
}

// QuoteFromName maps the configuration names "double" and "single" to quote characters.
func QuoteFromName(name string) (string, error) {
	switch name {
	case "double", QuoteDouble:
		return QuoteDouble, nil
	case "single", QuoteSingle:
		return QuoteSingle, nil
	default:
		return "", fmt.Errorf("%w: unknown quote style %q", ErrInvalidOptions, name)
	}
}

func isQuote(q string) bool {
	return q == QuoteDouble || q == QuoteSingle
}
