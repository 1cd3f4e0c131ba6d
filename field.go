package zcsv

// Field is the value Iterator.Next yields: a borrowed slice into the
// source's own buffer, valid only until the next call to Next (except for
// the NewFromBytes source, whose buffer never shifts).
type Field struct {
	data          []byte
	quote         byte
	LastColumn    bool // true iff a newline (or end-of-stream) terminated this field
	NeedsUnescape bool // true iff this was a quoted field containing at least one "" escape
}

// Data returns the field's raw bytes exactly as they appeared in the
// source, without collapsing doubled-quote escapes. Call Unescaped instead
// when the field may be a quoted one.
func (f *Field) Data() []byte { return f.data }

// Unescaped returns the field's content with every doubled-quote escape
// collapsed to a single quote byte, running the collapse only once: if
// NeedsUnescape is already false (including after a prior call), Data is
// returned unchanged. Idempotent.
func (f *Field) Unescaped() []byte {
	if !f.NeedsUnescape {
		return f.data
	}
	f.data = unescapeInPlace(f.data, f.quote)
	f.NeedsUnescape = false
	return f.data
}
