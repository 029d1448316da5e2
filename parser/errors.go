package parser

import "errors"

// ErrParsing is the sentinel every ParsingException wraps, so callers can
// use errors.Is without depending on message text.
var ErrParsing = errors.New("parsing error")

// ParsingException is raised for syntactic errors, clause-ordering
// violations, duplicate clauses, invalid LIMIT/OFFSET literal types,
// non-boolean WHERE expressions, and aliases on a bare WHERE expression —
// the full taxonomy spec.md assigns to parsing.
type ParsingException struct {
	Msg string
}

func (e *ParsingException) Error() string { return e.Msg }

func (e *ParsingException) Unwrap() error { return ErrParsing }

// NewParsingException wraps msg as a ParsingException.
func NewParsingException(msg string) *ParsingException {
	return &ParsingException{Msg: msg}
}
