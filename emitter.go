package zcsv

import (
	"bufio"
	"io"
)

// Emitter is the write-side counterpart to Iterator: it decides whether a
// column needs quoting, writes separators and row terminators, and escapes
// embedded quotes. Generalized from a fixed comma/CRLF pair to an arbitrary
// Dialect, with an Emit/EmitQuoted/EmitUnquoted/NextRow column-at-a-time
// vocabulary in place of a record-at-a-time Write.
type Emitter struct {
	dialect Dialect
	useCRLF bool
	scan    *scanner

	w          *bufio.Writer
	err        error
	firstRow   bool
	firstField bool
}

// NewEmitter returns an Emitter writing to w under dialect. Pass
// DefaultDialect() for the conventional comma/double-quote output.
func NewEmitter(w io.Writer, dialect Dialect) *Emitter {
	return &Emitter{
		dialect:    dialect,
		scan:       newScanner(dialect),
		w:          bufio.NewWriter(w),
		firstRow:   true,
		firstField: true,
	}
}

// UseCRLF selects \r\n as the line terminator instead of the \n default.
// Must be called before the first Emit/NextRow.
func (e *Emitter) UseCRLF(v bool) { e.useCRLF = v }

// Emit is the safe default: if column contains any of {quote, delimiter,
// '\n'}, it routes to EmitQuoted; otherwise to EmitUnquoted.
func (e *Emitter) Emit(column []byte) error {
	if e.needsQuoting(column) {
		return e.EmitQuoted(column)
	}
	return e.EmitUnquoted(column)
}

// EmitQuoted writes a separator, a quote byte, column with every interior
// quote doubled, then a closing quote.
func (e *Emitter) EmitQuoted(column []byte) error {
	if err := e.emitDelim(); err != nil {
		return err
	}
	if err := e.writeByte(e.dialect.Quote); err != nil {
		return err
	}
	start := 0
	for i, b := range column {
		if b == e.dialect.Quote {
			if err := e.writeBytes(column[start:i]); err != nil {
				return err
			}
			if err := e.writeByte(e.dialect.Quote); err != nil {
				return err
			}
			if err := e.writeByte(e.dialect.Quote); err != nil {
				return err
			}
			start = i + 1
		}
	}
	if err := e.writeBytes(column[start:]); err != nil {
		return err
	}
	return e.writeByte(e.dialect.Quote)
}

// EmitQuotedAssumeEscaped writes column bytes verbatim between quotes; the
// caller is responsible for having pre-escaped any interior quote bytes.
func (e *Emitter) EmitQuotedAssumeEscaped(column []byte) error {
	if err := e.emitDelim(); err != nil {
		return err
	}
	if err := e.writeByte(e.dialect.Quote); err != nil {
		return err
	}
	if err := e.writeBytes(column); err != nil {
		return err
	}
	return e.writeByte(e.dialect.Quote)
}

// EmitUnquoted writes a separator and then column verbatim. The caller is
// responsible for ensuring column contains no special bytes.
func (e *Emitter) EmitUnquoted(column []byte) error {
	if err := e.emitDelim(); err != nil {
		return err
	}
	return e.writeBytes(column)
}

// NextRow sets the first-column flag, starting a new row. The row
// terminator is written lazily, by the next field's emitDelim call, so the
// very last row written never gets a trailing line ending.
func (e *Emitter) NextRow() {
	e.firstField = true
}

// Flush writes any buffered data to the underlying io.Writer. Callers must
// call it after the last row to guarantee the data reaches w.
func (e *Emitter) Flush() error {
	if e.err != nil {
		return e.err
	}
	e.err = e.w.Flush()
	return e.err
}

// Error reports the first error encountered by a previous Emit* call or
// Flush.
func (e *Emitter) Error() error { return e.err }

// emitDelim implements the separator rule: a line ending is written before
// each row's first field except the very first row; otherwise the
// delimiter is written. This elides a trailing line ending from the output
// entirely.
func (e *Emitter) emitDelim() error {
	if e.firstField {
		e.firstField = false
		if e.firstRow {
			e.firstRow = false
			return e.err
		}
		return e.writeLineEnding()
	}
	return e.writeByte(e.dialect.Delimiter)
}

func (e *Emitter) writeLineEnding() error {
	if e.useCRLF {
		return e.writeBytes([]byte("\r\n"))
	}
	return e.writeByte('\n')
}

func (e *Emitter) writeByte(b byte) error {
	if e.err != nil {
		return e.err
	}
	e.err = e.w.WriteByte(b)
	return e.err
}

func (e *Emitter) writeBytes(b []byte) error {
	if e.err != nil {
		return e.err
	}
	_, e.err = e.w.Write(b)
	return e.err
}

// needsQuoting reports whether column contains any of {quote, delimiter,
// '\n'}, using the same vector-or-scalar scanner the Iterator side drains,
// downgraded to a scalar scan on inputs shorter than one vector chunk.
func (e *Emitter) needsQuoting(column []byte) bool {
	if len(column) == 0 {
		return false
	}
	if e.scan.vectorLen >= 8 && len(column) >= e.scan.vectorLen {
		e.scan.resetCache()
		_, found := e.scan.nextDelimPos(column, 0)
		e.scan.resetCache()
		return found
	}
	for _, b := range column {
		if b == e.dialect.Quote || b == e.dialect.Delimiter || b == '\n' {
			return true
		}
	}
	return false
}
