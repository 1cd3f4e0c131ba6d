package zcsv

import "testing"

func TestUnescapeInPlace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no escapes", "hello", "hello"},
		{"single escape", `wo""rld`, `wo"rld`},
		{"escape at start", `""abc`, `"abc`},
		{"escape at end", `abc""`, `abc"`},
		{"back to back escapes", `a""""b`, `a""b`},
		{"empty", "", ""},
		{"lone trailing quote preserved", `abc"`, `abc"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := []byte(tc.input)
			got := unescapeInPlace(data, '"')
			if string(got) != tc.want {
				t.Errorf("unescapeInPlace(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestUnescapeInPlace_Idempotent(t *testing.T) {
	data := []byte(`wo""rld`)
	once := unescapeInPlace(data, '"')
	onceCopy := append([]byte(nil), once...)
	twice := unescapeInPlace(once, '"')
	if string(twice) != string(onceCopy) {
		t.Fatalf("second pass changed result: %q -> %q", onceCopy, twice)
	}
}

func TestField_Unescaped_Idempotent(t *testing.T) {
	f := &Field{data: []byte(`wo""rld`), quote: '"', NeedsUnescape: true}
	first := string(f.Unescaped())
	if first != `wo"rld` {
		t.Fatalf("got %q", first)
	}
	if f.NeedsUnescape {
		t.Fatalf("NeedsUnescape should be cleared after Unescaped")
	}
	second := string(f.Unescaped())
	if second != first {
		t.Fatalf("second call changed result: %q -> %q", first, second)
	}
}
