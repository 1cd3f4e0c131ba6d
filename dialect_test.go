package zcsv

import "testing"

func TestNewDialect_Defaults(t *testing.T) {
	d, err := NewDialect()
	if err != nil {
		t.Fatalf("NewDialect: %v", err)
	}
	if d.Quote != '"' || d.Delimiter != ',' || d.VectorLength != 0 {
		t.Fatalf("got %+v", d)
	}
}

func TestNewDialect_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"quote equals delimiter", []Option{WithQuote(','), WithDelimiter(',')}},
		{"quote is newline", []Option{WithQuote('\n')}},
		{"delimiter is newline", []Option{WithDelimiter('\n')}},
		{"vector length not power of two", []Option{WithVectorLength(24)}},
		{"vector length too small", []Option{WithVectorLength(4)}},
		{"vector length too large", []Option{WithVectorLength(128)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDialect(tc.opts...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewDialect_CustomBytes(t *testing.T) {
	d, err := NewDialect(WithQuote('\''), WithDelimiter(';'), WithVectorLength(32))
	if err != nil {
		t.Fatalf("NewDialect: %v", err)
	}
	if d.Quote != '\'' || d.Delimiter != ';' || d.VectorLength != 32 {
		t.Fatalf("got %+v", d)
	}
}

func TestRecommendedVectorLength_NeverZero(t *testing.T) {
	if RecommendedVectorLength() == 0 {
		t.Fatalf("RecommendedVectorLength returned 0")
	}
}
