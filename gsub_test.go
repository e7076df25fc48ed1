package luapat

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestGSubTemplate(t *testing.T) {
	tests := []struct {
		name             string
		subject, pattern string
		repl             string
		opts             []Option
		want             string
		n                int
	}{
		{"digits", "2024-01-02", "%d+", "#", nil, "#-#-#", 3},
		{"capture", "hello world", "(%w+)", "<%1>", nil, "<hello> <world>", 2},
		{"swap", "hello world", "(%w+) (%w+)", "%2 %1", nil, "world hello", 1},
		{"whole match", "abc", "%w", "%0%0", nil, "aabbcc", 3},
		{"%1 without captures", "abc", "b", "[%1]", nil, "a[b]c", 1},
		{"percent", "50", "%d+", "%0%%", nil, "50%", 1},
		{"max replacements", "hello world", "o", "0", []Option{WithMaxReplacements(1)}, "hell0 world", 1},
		{"zero replacements", "hello", "l", "L", []Option{WithMaxReplacements(0)}, "hello", 0},
		{"negative max", "hello", "l", "L", []Option{WithMaxReplacements(-1)}, "hello", 0},
		{"empty matches", "abc", "", "-", nil, "-a-b-c-", 4},
		{"empty after match", "abc", "%a*", "-", nil, "-", 1},
		{"anchored", "hello hello", "^hello", "X", nil, "X hello", 1},
		{"anchored miss", "xhello", "^hello", "X", nil, "xhello", 0},
		{"position capture", "abc", "()b", "%1", nil, "a2c", 1},
		{"no match", "abc", "x", "y", nil, "abc", 0},
		{"trim", "  both  ", "^%s*(.-)%s*$", "%1", nil, "both", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := GSub(tt.subject, tt.pattern, Template(tt.repl), tt.opts...)
			if err != nil {
				t.Fatalf("GSub error: %v", err)
			}
			if got != tt.want || n != tt.n {
				t.Errorf("GSub(%q, %q, %q) = %q, %d; want %q, %d",
					tt.subject, tt.pattern, tt.repl, got, n, tt.want, tt.n)
			}
		})
	}
}

func TestGSubTemplateErrors(t *testing.T) {
	tests := []struct {
		repl string
		kind ErrorKind
		msg  string
	}{
		{"%2", InvalidReplacement, "invalid capture index %2 in replacement string"},
		{"%x", InvalidReplacement, "invalid use of '%' in replacement string"},
		{"abc%", InvalidReplacement, "invalid use of '%' in replacement string"},
	}

	for _, tt := range tests {
		out, n, err := GSub("hello", "(l)", Template(tt.repl))
		if err == nil {
			t.Fatalf("GSub with %q: expected error", tt.repl)
		}
		if out != "" || n != 0 {
			t.Errorf("GSub with %q returned partial result %q, %d", tt.repl, out, n)
		}
		var e *Error
		if !errors.As(err, &e) || e.Kind != tt.kind || e.Message != tt.msg {
			t.Errorf("GSub with %q error = %v, want %v %q", tt.repl, err, tt.kind, tt.msg)
		}
	}
}

func TestGSubTable(t *testing.T) {
	vars := Table{"name": "Bob", "x": "1"}

	got, n, err := GSub("$name is $age", "%$(%w+)", vars)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Bob is $age" || n != 2 {
		t.Errorf("GSub = %q, %d; want %q, 2", got, n, "Bob is $age")
	}

	// Keyed by the whole match when the pattern has no captures.
	got, _, err = GSub("x y x", "%a", vars)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1 y 1" {
		t.Errorf("GSub = %q, want %q", got, "1 y 1")
	}
}

func TestGSubFunc(t *testing.T) {
	double := Func(func(caps []Capture) (string, bool, error) {
		v, err := strconv.Atoi(caps[0].Text)
		if err != nil {
			return "", false, err
		}
		return strconv.Itoa(v * 2), true, nil
	})

	got, n, err := GSub("1 2 3", "%d", double)
	if err != nil {
		t.Fatal(err)
	}
	if got != "2 4 6" || n != 3 {
		t.Errorf("GSub = %q, %d; want \"2 4 6\", 3", got, n)
	}

	keepVowels := Func(func(caps []Capture) (string, bool, error) {
		if strings.ContainsAny(caps[0].Text, "aeiou") {
			return "", false, nil
		}
		return "_", true, nil
	})
	got, n, err = GSub("abc", "%a", keepVowels)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a__" || n != 3 {
		t.Errorf("GSub = %q, %d; want \"a__\", 3", got, n)
	}
}

func TestGSubFuncErrors(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := GSub("abc", "%a", Func(func([]Capture) (string, bool, error) {
		return "", false, boom
	}))
	if !errors.Is(err, ErrInvalidReplacement) || !errors.Is(err, boom) {
		t.Errorf("err = %v, want InvalidReplacement wrapping boom", err)
	}

	// An engine error from a nested search keeps its kind.
	_, _, err = GSub("abc", "%a", Func(func([]Capture) (string, bool, error) {
		_, err := Find("x", "[")
		return "", false, err
	}))
	if !errors.Is(err, ErrMalformedPattern) {
		t.Errorf("err = %v, want MalformedPattern", err)
	}
}

func TestGSubUnchangedReturnsSubject(t *testing.T) {
	subject := strings.Repeat("ab", 10)
	got, n, err := GSub(subject, "a", Table{})
	if err != nil {
		t.Fatal(err)
	}
	if got != subject || n != 10 {
		t.Errorf("GSub = %q, %d; want subject, 10", got, n)
	}
}

func TestGSubNilReplacement(t *testing.T) {
	if _, _, err := GSub("abc", "b", nil); !errors.Is(err, ErrInvalidReplacement) {
		t.Errorf("err = %v, want InvalidReplacement", err)
	}
}
