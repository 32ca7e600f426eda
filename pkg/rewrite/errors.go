package rewrite

import "errors"

// Sentinel errors returned by the rewriter. Every one of them is terminal for
// the invocation that produced it.
var (
	// ErrNotFound indicates the line carries no class attribute literal.
	ErrNotFound = errors.New("could not find className prop")
	// ErrOutOfScope indicates the caret lies outside the located attribute.
	ErrOutOfScope = errors.New("this is not a classnames prop")
	// ErrParse indicates the class value could not be extracted from the attribute.
	ErrParse = errors.New("could not parse class prop")
	// ErrNoInsertionPoint indicates every line of the document is an import.
	ErrNoInsertionPoint = errors.New("could not find location to add import")
	// ErrInvalidOptions indicates the rewriter was configured with unusable values.
	ErrInvalidOptions = errors.New("invalid rewrite options")
)
