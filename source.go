package zcsv

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultBufferSize is the buffer capacity used by the path/file/reader
// constructors when the caller does not request a different size.
const DefaultBufferSize = 64 * 1024

// byteSource is the internal byte-source contract an Iterator drives: a
// live region buffered()[0:] with fillMore growing it from the tail, toss
// consuming from the head, and probeEOF disambiguating "buffer full, more
// data coming" from "buffer full, that was everything."
type byteSource interface {
	// buffered returns the live, unconsumed region. The slice is only
	// valid until the next call to fillMore or toss.
	buffered() []byte

	// fillMore appends more bytes to the tail of the buffered region. It
	// returns io.EOF once the source is exhausted, or an error wrapping
	// ErrReadFailed on I/O failure. Appending zero bytes without an error
	// is permitted and simply means "try again."
	fillMore() error

	// toss advances the head of the buffered region by n bytes.
	toss(n int)

	// capacity is the largest the buffered region can grow to before
	// fillMore can make no further progress.
	capacity() int

	// probeEOF is called only when buffered() is already at capacity and
	// no delimiter has been found in it. It attempts to read one byte
	// past the buffer without retaining it, returning true if doing so
	// observes end-of-stream (so the full buffer is the final field) and
	// false if more data exists (so the field genuinely does not fit).
	probeEOF() bool

	close() error
}

// ReaderFunc adapts a bare function to io.Reader, mirroring
// http.HandlerFunc. It exists so a caller holding a bare
// `func([]byte) (int, error)` read callback can pass it directly to
// NewFromReader without writing a wrapper type of their own.
type ReaderFunc func(p []byte) (int, error)

func (f ReaderFunc) Read(p []byte) (int, error) { return f(p) }

// streamSource is the byteSource backing the path/file/reader constructors.
// Buffer compaction on refill is grounded on bufio.Reader.fill(): shift the
// unconsumed tail down to offset 0 before reading more, so fillMore never
// needs to grow the backing array.
type streamSource struct {
	r      io.Reader
	closer io.Closer // nil when the source does not own r
	buf    []byte
	seek   int
	end    int
	eof    bool
}

func newStreamSource(r io.Reader, closer io.Closer, bufSize int) *streamSource {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &streamSource{r: r, closer: closer, buf: make([]byte, bufSize)}
}

func (s *streamSource) buffered() []byte { return s.buf[s.seek:s.end] }

func (s *streamSource) capacity() int { return len(s.buf) }

func (s *streamSource) toss(n int) { s.seek += n }

func (s *streamSource) compact() {
	if s.seek == 0 {
		return
	}
	n := copy(s.buf, s.buf[s.seek:s.end])
	s.end = n
	s.seek = 0
}

func (s *streamSource) fillMore() error {
	if s.eof {
		return io.EOF
	}
	s.compact()
	if s.end == len(s.buf) {
		return nil // caller's responsibility: capacity() already equals buffered length
	}
	n, err := s.r.Read(s.buf[s.end:])
	s.end += n
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		s.eof = true
		if n > 0 {
			// Bytes arrived alongside EOF; report progress now and let
			// the next fillMore call report the sticky EOF.
			return nil
		}
		return io.EOF
	}
	return fmt.Errorf("%w: %v", ErrReadFailed, err)
}

func (s *streamSource) probeEOF() bool {
	if s.eof {
		return true
	}
	var scratch [1]byte
	n, err := s.r.Read(scratch[:])
	if n > 0 {
		// A byte exists beyond the full buffer; it is discarded, which is
		// safe because the caller treats this outcome as FieldTooLong and
		// the iterator is not usable afterward.
		return false
	}
	if errors.Is(err, io.EOF) {
		s.eof = true
		return true
	}
	return false
}

func (s *streamSource) close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// sliceSource is the byteSource backing NewFromBytes: the caller's slice is
// the entire buffer, never compacted, never grown. In-place unescape
// mutates it directly, since the caller owns the whole slice up front.
type sliceSource struct {
	data []byte
	seek int
}

func (s *sliceSource) buffered() []byte { return s.data[s.seek:] }
func (s *sliceSource) capacity() int    { return len(s.data) }
func (s *sliceSource) toss(n int)       { s.seek += n }
func (s *sliceSource) fillMore() error  { return io.EOF }
func (s *sliceSource) probeEOF() bool   { return true }
func (s *sliceSource) close() error     { return nil }

// NewFromPath opens path for reading and returns an Iterator that owns the
// resulting file; Close closes it.
func NewFromPath(path string, opts ...Option) (*Iterator, error) {
	c := newConfig(opts...)
	if err := c.Dialect.validate(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}
	return newIterator(newStreamSource(f, f, c.BufferSize), c.Dialect), nil
}

// NewFromFile borrows an already-open file. The caller retains ownership
// and must keep it open for the Iterator's lifetime; Close on the Iterator
// is a no-op.
func NewFromFile(f *os.File, opts ...Option) (*Iterator, error) {
	c := newConfig(opts...)
	if err := c.Dialect.validate(); err != nil {
		return nil, err
	}
	return newIterator(newStreamSource(f, nil, c.BufferSize), c.Dialect), nil
}

// NewFromBytes parses data in place with no internal buffer; data is the
// parse surface. Unescape mutates it, and field slices remain valid for as
// long as data does, even past the Iterator's lifetime.
func NewFromBytes(data []byte, opts ...Option) (*Iterator, error) {
	c := newConfig(opts...)
	if err := c.Dialect.validate(); err != nil {
		return nil, err
	}
	return newIterator(&sliceSource{data: data}, c.Dialect), nil
}

// NewFromReader wraps an arbitrary io.Reader, refilling from it whenever the
// Iterator needs more bytes. Go's io.Reader already carries the
// (buffer, length) -> (n, status) shape a user-supplied read callback
// needs, so a bare read function can be passed via ReaderFunc.
func NewFromReader(r io.Reader, opts ...Option) (*Iterator, error) {
	c := newConfig(opts...)
	if err := c.Dialect.validate(); err != nil {
		return nil, err
	}
	return newIterator(newStreamSource(r, nil, c.BufferSize), c.Dialect), nil
}
