package zcsv

import (
	"bytes"
	"testing"
)

func TestEmitter_Scenario8(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf, DefaultDialect())

	rows := [][]string{
		{"header one", `header "two"`},
		{"value, one", "value two"},
	}
	for i, row := range rows {
		if i > 0 {
			e.NextRow()
		}
		for _, col := range row {
			if err := e.Emit([]byte(col)); err != nil {
				t.Fatalf("Emit: %v", err)
			}
		}
	}
	if err := e.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "header one,\"header \"\"two\"\"\"\n\"value, one\",value two"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmitter_NoTrailingLineEnding(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf, DefaultDialect())
	_ = e.Emit([]byte("only"))
	_ = e.Flush()
	if got := buf.String(); got != "only" {
		t.Fatalf("got %q, want %q", got, "only")
	}
}

func TestEmitter_CRLF(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf, DefaultDialect())
	e.UseCRLF(true)
	_ = e.Emit([]byte("a"))
	e.NextRow()
	_ = e.Emit([]byte("b"))
	_ = e.Flush()
	want := "a\r\nb"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmitter_EmitQuotedAssumeEscaped(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf, DefaultDialect())
	if err := e.EmitQuotedAssumeEscaped([]byte(`already ""escaped""`)); err != nil {
		t.Fatalf("EmitQuotedAssumeEscaped: %v", err)
	}
	_ = e.Flush()
	want := `"already ""escaped"""`
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmitter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf, DefaultDialect())
	rows := [][]string{
		{"plain", "with space"},
		{"with,comma", "with\"quote"},
		{"with\nnewline", "last"},
	}
	for i, row := range rows {
		if i > 0 {
			e.NextRow()
		}
		for _, col := range row {
			if err := e.Emit([]byte(col)); err != nil {
				t.Fatalf("Emit: %v", err)
			}
		}
	}
	if err := e.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	it, err := NewFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	var got [][]string
	var row []string
	for {
		f, err := it.Next()
		if err != nil {
			break
		}
		row = append(row, string(f.Unescaped()))
		if f.LastColumn {
			got = append(got, row)
			row = nil
		}
	}
	if len(got) != len(rows) {
		t.Fatalf("got %d rows, want %d: %v", len(got), len(rows), got)
	}
	for i := range rows {
		for j := range rows[i] {
			if got[i][j] != rows[i][j] {
				t.Errorf("row %d col %d: got %q, want %q", i, j, got[i][j], rows[i][j])
			}
		}
	}
}
