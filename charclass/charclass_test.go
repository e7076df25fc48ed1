package charclass

import (
	"errors"
	"testing"
)

func TestMatchClass(t *testing.T) {
	tests := []struct {
		cl   byte
		in   string
		out  string
	}{
		{'a', "azAZ", "09 _\x80"},
		{'d', "0123456789", "aZ /:"},
		{'l', "az", "AZ0"},
		{'u', "AZ", "az0"},
		{'s', " \t\n\v\f\r", "a0_\x00"},
		{'w', "a0Z", "_ -"},
		{'x', "09afAF", "gG "},
		{'p', "!./:@[`{~", "a0 \x7f"},
		{'c', "\x00\x1f\x7f", " a"},
		{'g', "!~a0", " \x7f\x80"},
		{'z', "\x00", "0a"},
		{'.', ".", "a"},
		{']', "]", "["},
	}

	for _, tt := range tests {
		for i := 0; i < len(tt.in); i++ {
			if !MatchClass(tt.in[i], tt.cl) {
				t.Errorf("MatchClass(%q, %q) = false, want true", tt.in[i], tt.cl)
			}
		}
		for i := 0; i < len(tt.out); i++ {
			if MatchClass(tt.out[i], tt.cl) {
				t.Errorf("MatchClass(%q, %q) = true, want false", tt.out[i], tt.cl)
			}
		}
	}
}

func TestMatchClassComplement(t *testing.T) {
	for _, cl := range []byte("acdglpsuwxz") {
		upper := cl - ('a' - 'A')
		for c := 0; c < 256; c++ {
			if MatchClass(byte(c), cl) == MatchClass(byte(c), upper) {
				t.Fatalf("%%%c and %%%c agree on byte %#x", cl, upper, c)
			}
		}
	}
}

func TestClassEnd(t *testing.T) {
	tests := []struct {
		pattern string
		p       int
		want    int
	}{
		{"a*", 0, 1},
		{"%d+", 0, 2},
		{"[abc]x", 0, 5},
		{"[^abc]", 0, 6},
		{"[]]", 0, 3},
		{"[^]]", 0, 4},
		{"[%]]", 0, 4},
		{"[a-z]+", 0, 5},
		{"x[%a]", 1, 5},
	}

	for _, tt := range tests {
		got, err := ClassEnd(tt.pattern, tt.p)
		if err != nil {
			t.Errorf("ClassEnd(%q, %d) error = %v", tt.pattern, tt.p, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ClassEnd(%q, %d) = %d, want %d", tt.pattern, tt.p, got, tt.want)
		}
	}
}

func TestClassEndErrors(t *testing.T) {
	tests := []struct {
		pattern string
		msg     string
	}{
		{"%", "malformed pattern (ends with '%')"},
		{"[abc", "malformed pattern (missing ']')"},
		{"[", "malformed pattern (missing ']')"},
		{"[^", "malformed pattern (missing ']')"},
		{"[%]", "malformed pattern (missing ']')"},
	}

	for _, tt := range tests {
		_, err := ClassEnd(tt.pattern, 0)
		if err == nil {
			t.Errorf("ClassEnd(%q) expected error", tt.pattern)
			continue
		}
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("ClassEnd(%q) error %v is not ErrMalformed", tt.pattern, err)
		}
		if err.Error() != tt.msg {
			t.Errorf("ClassEnd(%q) error = %q, want %q", tt.pattern, err.Error(), tt.msg)
		}
	}
}

func TestMatchBracket(t *testing.T) {
	tests := []struct {
		token string
		in    string
		out   string
	}{
		{"[abc]", "abc", "dA"},
		{"[^abc]", "dA", "abc"},
		{"[a-f]", "adf", "g`"},
		{"[%d_]", "09_", "a-"},
		{"[%a-]", "aZ-", "0"},
		{"[-a]", "-a", "b"},
		{"[]]", "]", "["},
		{"[^]]", "[a", "]"},
		{"[%]]", "]", "%"},
		{"[%%]", "%", "a"},
		{"[^%s]", "a", " \t"},
	}

	for _, tt := range tests {
		end, err := ClassEnd(tt.token, 0)
		if err != nil {
			t.Fatalf("ClassEnd(%q) error = %v", tt.token, err)
		}
		set := tt.token[:end-1]
		for i := 0; i < len(tt.in); i++ {
			if !MatchBracket(tt.in[i], set) {
				t.Errorf("MatchBracket(%q, %q) = false, want true", tt.in[i], tt.token)
			}
		}
		for i := 0; i < len(tt.out); i++ {
			if MatchBracket(tt.out[i], set) {
				t.Errorf("MatchBracket(%q, %q) = true, want false", tt.out[i], tt.token)
			}
		}
	}
}

func TestCompileSet(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"a", "a"},
		{"%d", "0123456789"},
		{"[xa-c]", "abcx"},
		{"%x", "0123456789ABCDEFabcdef"},
	}

	for _, tt := range tests {
		s := Compile(tt.token)
		if got := string(s.Bytes()); got != tt.want {
			t.Errorf("Compile(%q).Bytes() = %q, want %q", tt.token, got, tt.want)
		}
		if s.Len() != len(tt.want) {
			t.Errorf("Compile(%q).Len() = %d, want %d", tt.token, s.Len(), len(tt.want))
		}
	}

	dot := Compile(".")
	if dot.Len() != 256 {
		t.Errorf("Compile(\".\").Len() = %d, want 256", dot.Len())
	}
	if !dot.Table()[0xff] {
		t.Error("Compile(\".\").Table()[0xff] = false")
	}
}
