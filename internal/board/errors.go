package board

import (
	"errors"
	"fmt"
)

// Square construction errors.
var (
	ErrInvalidIndex      = errors.New("square index out of range")
	ErrInvalidCoordinate = errors.New("square coordinate out of range")
)

// ErrParse is the root of every FEN text error. All other parse errors wrap it.
var ErrParse = errors.New("parse error")

// Parse error kinds.
var (
	ErrMissingField        = fmt.Errorf("%w: missing field", ErrParse)
	ErrTrailingField       = fmt.Errorf("%w: trailing field", ErrParse)
	ErrMalformedPlacement  = fmt.Errorf("%w: malformed piece placement", ErrParse)
	ErrInvalidCastlingChar = fmt.Errorf("%w: invalid castling availability", ErrParse)
	ErrInvalidColorChar    = fmt.Errorf("%w: invalid active color", ErrParse)
	ErrInvalidSquareText   = fmt.Errorf("%w: invalid square", ErrParse)
	ErrInvalidCounter      = fmt.Errorf("%w: invalid move counter", ErrParse)
)

// ErrInvalidPosition is returned by Validate for well-formed but impossible positions.
var ErrInvalidPosition = errors.New("invalid position")

// ParseError records which FEN field failed and the text it failed on.
type ParseError struct {
	Field string // "placement", "color", "castling", "en passant", "halfmove", "fullmove", "fen", "square"
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v in %s %q", e.Err, e.Field, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErr(field, text string, kind error) error {
	return &ParseError{Field: field, Text: text, Err: kind}
}
