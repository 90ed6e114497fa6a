package core

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for parse and resolution failures. Callers test for
// a kind with errors.Is; the concrete error in the chain is usually a
// *ParseError carrying the byte offset.
var (
	// ErrUnexpectedCharacter reports a byte that cannot begin or continue
	// the current grammar production.
	ErrUnexpectedCharacter = errors.New("unexpected character")

	// ErrBadEscape reports an unrecognized escape sequence in a literal
	// string.
	ErrBadEscape = errors.New("bad string escape")

	// ErrBadControlCharacter reports a raw control byte inside a literal
	// string outside any escape.
	ErrBadControlCharacter = errors.New("bad control character")

	// ErrBadNumber reports a numeric token whose bytes do not form a valid
	// integer or real value.
	ErrBadNumber = errors.New("bad number")

	// ErrEndOfInput reports a read past the end of the available bytes.
	ErrEndOfInput = errors.New("unexpected end of input")

	// ErrNotTaggedDocument reports structured text extraction requested on
	// a document that carries no tagged-PDF markup.
	ErrNotTaggedDocument = errors.New("not a tagged document")

	// ErrInvalidObject reports an operation that requires a concrete object
	// but received the null placeholder.
	ErrInvalidObject = errors.New("invalid object")
)

// ParseError is a syntax failure at a byte offset in the input. It wraps
// one of the sentinel kinds so errors.Is(err, ErrBadEscape) and friends
// work through any amount of fmt.Errorf("%w") context added above it.
type ParseError struct {
	Kind error
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%v at offset %d", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%v at offset %d: %s", e.Kind, e.Pos, e.Msg)
}

// Unwrap returns the sentinel kind.
func (e *ParseError) Unwrap() error { return e.Kind }

// parseError builds a *ParseError with optional printf-style detail.
func parseError(kind error, pos int, format string, args ...interface{}) *ParseError {
	e := &ParseError{Kind: kind, Pos: pos}
	if format != "" {
		e.Msg = fmt.Sprintf(format, args...)
	}
	return e
}
