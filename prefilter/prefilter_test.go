package prefilter

import (
	"testing"

	"github.com/coregx/luapat/literal"
	"github.com/coregx/luapat/matcher"
)

func build(pattern string) Prefilter {
	return Build(pattern, literal.DefaultConfig(), matcher.DefaultMaxDepth)
}

func TestBuildStrategy(t *testing.T) {
	tests := []struct {
		pattern string
		want    string // empty means no prefilter
	}{
		{"x", "memchr1"},
		{"[xy]%a*", "memchr2"},
		{"[xyz]", "memchr3"},
		{"hello", "memmem"},
		{"key=(%w+)", "memmem"},
		{"[Hh]ello", "ahocorasick"},
		{"https?://", "ahocorasick"},
		{"%d+", "byteset"},
		{"%a+", "byteset"},
		{"%s*(%w+)", "byteset"},
		{"%b()", "memchr1"},
		{".", ""},
		{".-x", ""},
		{"a*", ""},
		{"^hello", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			pf := build(tt.pattern)
			got := ""
			if pf != nil {
				got = pf.String()
			}
			if got != tt.want {
				t.Errorf("Build(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestBuildRespectsRecursionBudget(t *testing.T) {
	// Opening the capture alone exhausts a budget of one, at every offset.
	if pf := Build("(x)", literal.DefaultConfig(), 1); pf != nil {
		t.Errorf("Build with budget 1 = %v, want nil", pf)
	}
	for _, budget := range []int{2, 3} {
		if pf := Build("(x)", literal.DefaultConfig(), budget); pf == nil {
			t.Errorf("Build with budget %d = nil", budget)
		}
	}
}

func TestPrefilterFind(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		start    int
		want     int
	}{
		{"x", "abcx", 0, 3},
		{"x", "abcx", 4, -1},
		{"hello", "say hello", 0, 4},
		{"hello", "say hello", 5, -1},
		{"[Hh]ello", "say Hello", 0, 4},
		{"[Hh]ello", "hello Hello", 1, 6},
		{"%a+", "123 abc", 0, 4},
		{"%a+", "123", 0, -1},
		{"[xyz]", "aaaz", 0, 3},
	}

	for _, tt := range tests {
		pf := build(tt.pattern)
		if pf == nil {
			t.Fatalf("Build(%q) = nil", tt.pattern)
		}
		if got := pf.Find([]byte(tt.haystack), tt.start); got != tt.want {
			t.Errorf("%s Find(%q, %d) = %d, want %d", pf, tt.haystack, tt.start, got, tt.want)
		}
	}
}

// TestPrefilterNeverSkipsMatch checks that every offset where the matcher
// succeeds is reported as a candidate.
func TestPrefilterNeverSkipsMatch(t *testing.T) {
	patterns := []string{
		"x", "hello", "[Hh]ello", "https?://", "key=(%w+)", "%d+",
		"%a+", "%s*(%w+)", "%b()", "a?b", "(a)%1", "ab+", "colou?r",
	}
	subjects := []string{
		"", "hello Hello", "http://x https://y", "key=1 key=abc",
		"2024-01-02", "  word", "(a(b)c)", "ab b aab", "aa a", "color colour",
	}

	for _, pat := range patterns {
		pf := build(pat)
		if pf == nil {
			t.Fatalf("Build(%q) = nil", pat)
		}
		for _, subj := range subjects {
			ms := matcher.New(subj, pat, 0, nil)
			for s := 0; s <= len(subj); s++ {
				ms.Reset()
				e, err := ms.Match(s)
				if err != nil {
					t.Fatalf("Match(%q, %q): %v", subj, pat, err)
				}
				if e < 0 {
					continue
				}
				if got := pf.Find([]byte(subj), s); got != s {
					t.Errorf("%q on %q: match at %d but %s candidate is %d", pat, subj, s, pf, got)
				}
			}
		}
	}
}
