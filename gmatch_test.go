package luapat

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// collect drains an iterator into the texts of its captures, joined per match.
func collect(t *testing.T, it *Iterator) [][]string {
	t.Helper()
	var out [][]string
	for caps, err := range it.All() {
		if err != nil {
			t.Fatalf("GMatch error: %v", err)
		}
		out = append(out, captureTexts(caps))
	}
	return out
}

func TestGMatch(t *testing.T) {
	tests := []struct {
		name             string
		subject, pattern string
		opts             []Option
		want             [][]string
	}{
		{"words", "one two three", "%a+", nil,
			[][]string{{"one"}, {"two"}, {"three"}}},
		{"pairs", "key=val, k2=v2", "(%w+)=(%w+)", nil,
			[][]string{{"key", "val"}, {"k2", "v2"}}},
		{"empty pattern", "abc", "", nil,
			[][]string{{""}, {""}, {""}, {""}}},
		{"empty after match skipped", "abc", "%a*", nil,
			[][]string{{"abc"}}},
		{"empty matches between", "a,b", "%a*", nil,
			[][]string{{"a"}, {"b"}}},
		{"anchored yields once", "aaa", "^a", nil,
			[][]string{{"a"}}},
		{"init", "one two three", "%a+", []Option{WithInit(5)},
			[][]string{{"two"}, {"three"}}},
		{"init past end", "abc", "", []Option{WithInit(5)}, nil},
		{"init at end", "abc", "", []Option{WithInit(4)}, [][]string{{""}}},
		{"position captures", "abc", "()", nil,
			[][]string{{"1"}, {"2"}, {"3"}, {"4"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, GMatch(tt.subject, tt.pattern, tt.opts...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GMatch(%q, %q) mismatch (-want +got):\n%s", tt.subject, tt.pattern, diff)
			}
		})
	}
}

func TestGMatchNext(t *testing.T) {
	it := GMatch("a1b2", "%d")
	var got []string
	for {
		caps, ok, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		got = append(got, caps[0].Text)
	}
	if diff := cmp.Diff([]string{"1", "2"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if it.Count() != 2 {
		t.Errorf("Count() = %d, want 2", it.Count())
	}
	if _, ok, err := it.Next(); ok || err != nil {
		t.Errorf("Next after exhaustion = %v, %v", ok, err)
	}
}

func TestGMatchStickyError(t *testing.T) {
	it := GMatch("abc", "(a")
	_, ok, err := it.Next()
	if ok || !errors.Is(err, ErrMalformedPattern) {
		t.Fatalf("Next() = %v, %v; want unfinished capture error", ok, err)
	}
	_, _, err2 := it.Next()
	if err2 != err {
		t.Errorf("second Next() error = %v, want the same error %v", err2, err)
	}
	if it.Err() != err {
		t.Errorf("Err() = %v, want %v", it.Err(), err)
	}
}

func TestGMatchAllStopsEarly(t *testing.T) {
	it := GMatch("a b c d", "%a")
	n := 0
	for range it.All() {
		n++
		if n == 2 {
			break
		}
	}
	// The iterator resumes where the loop stopped.
	caps, ok, err := it.Next()
	if err != nil || !ok || caps[0].Text != "c" {
		t.Errorf("Next() after break = %v, %v, %v; want c", captureTexts(caps), ok, err)
	}
}
