package zcsv

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Iterator.Next. Exactly one of these (or a
// *ParseError wrapping one) is returned for any failure; there is no error
// hierarchy and no nested causes.
var (
	// ErrEndOfInput signals normal termination: no more fields remain.
	// Callers treat it as end-of-iteration, not as a failure.
	ErrEndOfInput = errors.New("zcsv: end of input")

	// ErrFieldTooLong means a single field did not fit in the source's
	// buffer. The iterator is no longer usable; recovery requires a
	// larger buffer and a fresh iterator.
	ErrFieldTooLong = errors.New("zcsv: field exceeds buffer capacity")

	// ErrInvalidQuotes means the input deviated from RFC 4180 quoting
	// rules: a bare quote in an unquoted field, an unterminated quoted
	// field, or an unexpected byte following a closing quote.
	ErrInvalidQuotes = errors.New("zcsv: invalid quoting")

	// ErrReadFailed wraps an I/O error surfaced verbatim from the byte
	// source; the iterator does not retry.
	ErrReadFailed = errors.New("zcsv: read failed")

	// ErrOpenFailed is returned by NewFromPath when the file cannot be
	// opened. It never arises from Next.
	ErrOpenFailed = errors.New("zcsv: open failed")
)

// ParseError wraps one of the sentinel errors above with the position at
// which it was detected: Offset is the byte count from the start of the
// source, Line and Column are 1-based and count bytes, not runes, the same
// way Reader.FieldPos does in the encoding/csv family of readers.
type ParseError struct {
	Offset int64
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("zcsv: parse error on line %d, column %d (offset %d): %v",
		e.Line, e.Column, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Code is the numeric error taxonomy used at foreign-language boundaries,
// where a well-typed Go error cannot cross the call. Numeric ordering is
// part of the ABI and must not change.
type Code int

const (
	CodeOK Code = iota
	CodeOOM
	CodeFieldTooLong
	CodeEOF
	CodeInvalidQuotes
	CodeReadFailed
	CodeOpenError
)

// CodeOf maps a core error to its ABI code. It is a thin shim over the
// well-typed errors above for the benefit of a foreign-language facade; the
// core itself never constructs or consults a Code.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrEndOfInput):
		return CodeEOF
	case errors.Is(err, ErrFieldTooLong):
		return CodeFieldTooLong
	case errors.Is(err, ErrInvalidQuotes):
		return CodeInvalidQuotes
	case errors.Is(err, ErrOpenFailed):
		return CodeOpenError
	case errors.Is(err, ErrReadFailed):
		return CodeReadFailed
	default:
		return CodeReadFailed
	}
}
