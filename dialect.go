// Package zcsv implements a streaming, zero-copy CSV field iterator and a
// companion emitter. Unlike encoding/csv, it yields fields one at a time as
// borrowed slices into the source's own buffer rather than building []string
// records, and it accepts strict RFC 4180 input only.
package zcsv

import "fmt"

// Dialect fixes the bytes and scanning strategy an Iterator uses for its
// entire lifetime. The zero value is not valid; use DefaultDialect or build
// one through the constructors' Option arguments.
type Dialect struct {
	Quote     byte
	Delimiter byte

	// VectorLength is the scanner's chunk width in bytes. Zero means
	// scalar-only scanning. Non-zero must be a power of two in [8, 64];
	// the scanner's candidate bitmask is carried in a single uint64, so
	// widths above 64 cannot be represented.
	VectorLength int
}

// DefaultDialect returns the conventional comma/double-quote dialect with
// scalar scanning.
func DefaultDialect() Dialect {
	return Dialect{Quote: '"', Delimiter: ',', VectorLength: 0}
}

func (d Dialect) validate() error {
	if d.Quote == d.Delimiter {
		return fmt.Errorf("zcsv: quote and delimiter must differ (both %q)", d.Quote)
	}
	if d.Quote == '\n' || d.Delimiter == '\n' {
		return fmt.Errorf("zcsv: quote and delimiter must not be newline")
	}
	if d.VectorLength != 0 {
		if d.VectorLength < 8 || d.VectorLength > 64 || d.VectorLength&(d.VectorLength-1) != 0 {
			return fmt.Errorf("zcsv: vector length %d must be a power of two in [8, 64]", d.VectorLength)
		}
	}
	return nil
}

// config gathers everything an Option can adjust: the parsing Dialect plus
// the stream constructors' fixed buffer size (not itself a parsing
// semantic, so it lives alongside Dialect rather than inside it).
type config struct {
	Dialect    Dialect
	BufferSize int
}

func newConfig(opts ...Option) config {
	c := config{Dialect: DefaultDialect(), BufferSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures a Dialect, and for the stream-backed constructors, the
// fixed buffer size, under construction.
type Option func(*config)

// WithQuote overrides the quote byte.
func WithQuote(q byte) Option {
	return func(c *config) { c.Dialect.Quote = q }
}

// WithDelimiter overrides the field delimiter byte.
func WithDelimiter(sep byte) Option {
	return func(c *config) { c.Dialect.Delimiter = sep }
}

// WithVectorLength opts into vector scanning at the given chunk width.
// Pass RecommendedVectorLength() to let CPU detection pick a width.
func WithVectorLength(n int) Option {
	return func(c *config) { c.Dialect.VectorLength = n }
}

// WithBufferSize overrides the fixed buffer capacity used by NewFromPath,
// NewFromFile, and NewFromReader. It has no effect on NewFromBytes, whose
// buffer is the caller's own slice. A field must fit in the buffer together
// with the bytes that close and terminate it (a field at the very end of
// the input needs no terminator); otherwise Next fails with ErrFieldTooLong.
func WithBufferSize(n int) Option {
	return func(c *config) { c.BufferSize = n }
}

// NewDialect builds a Dialect from DefaultDialect plus opts, validating the
// invariants quote ≠ delimiter ≠ newline and that VectorLength, if set, is a
// power of two in [8, 64].
func NewDialect(opts ...Option) (Dialect, error) {
	c := newConfig(opts...)
	if err := c.Dialect.validate(); err != nil {
		return Dialect{}, err
	}
	return c.Dialect, nil
}
