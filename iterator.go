package zcsv

import "io"

// Iterator yields successive CSV fields from a byte source. It is the
// engineering core: every operation is synchronous, allocation-free on the
// hot path, and single-threaded. Distinct iterators over distinct sources
// may run concurrently without coordination, but one Iterator is not safe
// for concurrent use.
type Iterator struct {
	src     byteSource
	dialect Dialect
	scan    *scanner
	field   Field // reused across calls to avoid allocating a Field per call
	err     error // sticky once set; only the three fatal kinds below set it

	offset    int64 // absolute byte offset of buffered()[0] in the source
	line      int   // 1-based line number at offset
	lineStart int64 // absolute offset where the current line began
}

func newIterator(src byteSource, d Dialect) *Iterator {
	return &Iterator{src: src, dialect: d, scan: newScanner(d), line: 1}
}

// Close releases the underlying source. For NewFromPath it closes the file
// it opened; for the borrowed/in-memory variants it is a no-op.
func (it *Iterator) Close() error { return it.src.close() }

// Dialect returns the dialect this Iterator was constructed with.
func (it *Iterator) Dialect() Dialect { return it.dialect }

// refillOutcome classifies what happened when the Iterator asked for more
// bytes than are currently buffered.
type refillOutcome int

const (
	outcomeGrew refillOutcome = iota
	outcomeEOF
	outcomeTooLong
)

// needMore asks the source for more bytes, disambiguating "buffer full but
// more data exists" (outcomeTooLong) from "buffer full and that was
// everything" (outcomeEOF) via a one-byte probe read past the buffer. buf
// is the currently buffered region, used only to locate a read failure.
func (it *Iterator) needMore(buf []byte) (refillOutcome, error) {
	if len(it.src.buffered()) < it.src.capacity() {
		err := it.src.fillMore()
		switch {
		case err == nil:
			return outcomeGrew, nil
		case err == io.EOF:
			return outcomeEOF, nil
		default:
			return 0, it.failAt(err, buf, len(buf))
		}
	}
	if it.src.probeEOF() {
		return outcomeEOF, nil
	}
	return outcomeTooLong, nil
}

// failAt records a fatal error at byte position pos within buf (the
// source's currently buffered region) and returns it wrapped in a
// ParseError carrying offset/line/column context.
func (it *Iterator) failAt(err error, buf []byte, pos int) error {
	offset, line, column := it.locate(buf, pos)
	it.err = &ParseError{Offset: offset, Line: line, Column: column, Err: err}
	return it.err
}

// locate computes the offset/line/column of position pos within buf, where
// buf[0] sits at it.offset. Newlines inside buf before pos count toward the
// line/column even though they have not been tossed yet, so a position deep
// inside a quoted field spanning embedded newlines still locates correctly.
func (it *Iterator) locate(buf []byte, pos int) (offset int64, line int, column int) {
	offset = it.offset + int64(pos)
	line = it.line
	lineStart := it.lineStart
	for i := 0; i < pos && i < len(buf); i++ {
		if buf[i] == '\n' {
			line++
			lineStart = it.offset + int64(i) + 1
		}
	}
	column = int(offset-lineStart) + 1
	return offset, line, column
}

// consume advances past the first n bytes of buf: tosses them from the
// source, rebases the scanner's cache, and rolls the offset/line/column
// bookkeeping forward past any newlines in the consumed window.
func (it *Iterator) consume(buf []byte, n int) {
	it.src.toss(n)
	it.scan.rebase(n)
	for i := 0; i < n; i++ {
		it.offset++
		if buf[i] == '\n' {
			it.line++
			it.lineStart = it.offset
		}
	}
}

func (it *Iterator) yield(data []byte, lastColumn, needsUnescape bool) *Field {
	it.field.data = data
	it.field.quote = it.dialect.Quote
	it.field.LastColumn = lastColumn
	it.field.NeedsUnescape = needsUnescape
	return &it.field
}

// Next yields the next field or fails. On entry, the source's seek cursor
// already points at the first byte of the field to be parsed: the
// previous field's terminator, if any, was consumed before Next returned
// last time.
//
// Four error kinds: ErrEndOfInput is the normal terminal signal, returned
// bare. ErrFieldTooLong, ErrInvalidQuotes, and ErrReadFailed are fatal,
// returned wrapped in a *ParseError carrying the offset/line/column where
// they were detected, and leave the Iterator unusable (every subsequent
// call returns the same *ParseError). errors.Is still matches the
// underlying sentinel through ParseError.Unwrap.
func (it *Iterator) Next() (*Field, error) {
	if it.err != nil {
		return nil, it.err
	}

	searchFrom := 0
	quoted := false
	needsUnescape := false

	for {
		buf := it.src.buffered()

		if !quoted {
			pos, found := it.scan.nextDelimPos(buf, searchFrom)
			if !found {
				outcome, err := it.needMore(buf)
				if err != nil {
					return nil, err
				}
				switch outcome {
				case outcomeGrew:
					continue
				case outcomeTooLong:
					return nil, it.failAt(ErrFieldTooLong, buf, len(buf))
				default: // outcomeEOF
					buf = it.src.buffered()
					if len(buf) == 0 {
						return nil, ErrEndOfInput
					}
					it.consume(buf, len(buf))
					return it.yield(buf, true, false), nil
				}
			}

			if buf[pos] == it.dialect.Quote {
				if pos != 0 {
					// A quote appearing after literal content is a bare
					// quote in an unquoted field, not a field opener: only
					// a quote at a field's first byte opens quoted mode.
					return nil, it.failAt(ErrInvalidQuotes, buf, pos)
				}
				it.consume(buf, pos+1)
				quoted = true
				searchFrom = 0
				continue
			}

			data := buf[:pos]
			lastColumn := buf[pos] == '\n'
			if lastColumn && pos > 0 && buf[pos-1] == '\r' {
				data = buf[:pos-1]
			}
			it.consume(buf, pos+1)
			return it.yield(data, lastColumn, false), nil
		}

		// Quoted-field sub-machine. Content always starts at
		// relative offset 0: seek was advanced to just past the opening
		// quote the moment we entered quoted mode, and toss is never
		// called again until the field's true end is found, so buf[0:p]
		// is the field's full content regardless of how many refills
		// happened while searching for p.
		pos, found := it.scan.nextDelimPos(buf, searchFrom)
		if !found {
			outcome, err := it.needMore(buf)
			if err != nil {
				return nil, err
			}
			switch outcome {
			case outcomeGrew:
				continue
			case outcomeTooLong:
				return nil, it.failAt(ErrFieldTooLong, buf, len(buf))
			default: // outcomeEOF: no quote ever found again -> unterminated
				return nil, it.failAt(ErrInvalidQuotes, buf, len(buf))
			}
		}

		if buf[pos] != it.dialect.Quote {
			// An embedded delimiter or newline inside the quoted region:
			// legal content, keep scanning past it.
			searchFrom = pos + 1
			continue
		}

		// buf[pos] is a quote; classify it using the byte(s) that follow.
		if pos+1 >= len(buf) {
			outcome, err := it.needMore(buf)
			if err != nil {
				return nil, err
			}
			switch outcome {
			case outcomeGrew:
				continue
			case outcomeTooLong:
				return nil, it.failAt(ErrFieldTooLong, buf, len(buf))
			default: // outcomeEOF: the quote was the final byte of input
				data := buf[:pos]
				it.consume(buf, len(buf))
				return it.yield(data, true, needsUnescape), nil
			}
		}

		switch next := buf[pos+1]; {
		case next == it.dialect.Quote:
			// Doubled-quote escape: one literal quote byte.
			needsUnescape = true
			it.scan.skipCandidateAt(pos + 1)
			searchFrom = pos + 2
			continue

		case next == it.dialect.Delimiter:
			data := buf[:pos]
			it.consume(buf, pos+2)
			return it.yield(data, false, needsUnescape), nil

		case next == '\n':
			data := buf[:pos]
			it.consume(buf, pos+2)
			return it.yield(data, true, needsUnescape), nil

		case next == '\r':
			if pos+2 >= len(buf) {
				outcome, err := it.needMore(buf)
				if err != nil {
					return nil, err
				}
				switch outcome {
				case outcomeGrew:
					continue
				case outcomeTooLong:
					return nil, it.failAt(ErrFieldTooLong, buf, len(buf))
				default: // outcomeEOF: quote+CR were the final bytes
					data := buf[:pos]
					it.consume(buf, len(buf))
					return it.yield(data, true, needsUnescape), nil
				}
			}
			if buf[pos+2] == '\n' {
				data := buf[:pos]
				it.consume(buf, pos+3)
				return it.yield(data, true, needsUnescape), nil
			}
			return nil, it.failAt(ErrInvalidQuotes, buf, pos+2)

		default:
			return nil, it.failAt(ErrInvalidQuotes, buf, pos+1)
		}
	}
}
