package literal

import (
	"github.com/coregx/luapat/charclass"
	"github.com/coregx/luapat/matcher"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: caps the cross product of bracket sets like "[Hh][Ee]llo"
//   - MaxLiteralLen: stops extending prefixes past this length
//   - MaxClassSize: classes larger than this (e.g. "%a") end the prefix
type ExtractorConfig struct {
	MaxLiterals   int
	MaxLiteralLen int
	MaxClassSize  int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts literal prefixes from Lua patterns.
//
// The walk follows the pattern item by item, extending every candidate prefix
// by each byte an item may consume, and stops at the first item it cannot
// expand: large classes, '*' and '-' repetitions, back-references, frontiers
// and anything malformed. Captures are skipped since they consume nothing.
//
// Because the walk never looks past an item that could fail with an error,
// every error the matcher can raise at some offset is raised only after the
// prefix has been consumed there. Skipping offsets that lack a prefix never
// hides an error.
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// walker tracks the capture state the matcher would have at a pattern
// position, so the walk stops where the matcher would fail with an error.
type walker struct {
	pattern    string
	level      int // captures opened so far
	unfinished int // captures opened but not closed
	branches   int
}

// skipCaptures advances over capture boundaries at p. It returns the new
// position and false if a boundary would make the matcher fail.
func (w *walker) skipCaptures(p int) (int, bool) {
	for p < len(w.pattern) {
		switch w.pattern[p] {
		case '(':
			if w.level == matcher.MaxCaptures {
				return p, false
			}
			w.level++
			w.branches++
			if p+1 < len(w.pattern) && w.pattern[p+1] == ')' {
				p += 2
				continue
			}
			w.unfinished++
			p++
		case ')':
			if w.unfinished == 0 {
				return p, false
			}
			w.unfinished--
			w.branches++
			p++
		default:
			return p, true
		}
	}
	return p, true
}

// ExtractPrefixes returns the literal prefixes of pattern: every match of the
// pattern starts with one of them. Returns an empty Seq for anchored patterns,
// and a Seq holding the empty literal when nothing is known.
//
// Examples:
//
//	"hello"        → ["hello"] (complete)
//	"[Hh]ello%s"   → ["Hello", "hello"]
//	"https?://"    → ["http://", "https://"] (complete)
//	"key=(%w+)"    → ["key="]
//	"%d+"          → [""]
func (e *Extractor) ExtractPrefixes(pattern string) *Seq {
	if len(pattern) > 0 && pattern[0] == '^' {
		return NewSeq()
	}

	w := walker{pattern: pattern}
	prefixes := [][]byte{{}}
	complete := false

	p := 0
walk:
	for {
		var ok bool
		if p, ok = w.skipCaptures(p); !ok {
			break
		}
		if p >= len(pattern) {
			complete = true
			break
		}
		if pattern[p] == '$' && p+1 == len(pattern) {
			complete = true
			break
		}
		if pattern[p] == charclass.Esc && p+1 < len(pattern) {
			switch pattern[p+1] {
			case 'b':
				if p+3 < len(pattern) {
					if next, ok := e.cross(prefixes, []byte{pattern[p+2]}); ok {
						prefixes = next
					}
				}
				break walk
			case 'f', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				break walk
			}
		}

		ep, err := charclass.ClassEnd(pattern, p)
		if err != nil {
			break
		}
		set := charclass.Compile(pattern[p:ep])
		if set.Len() > e.config.MaxClassSize {
			break
		}
		var suffix byte
		if ep < len(pattern) {
			suffix = pattern[ep]
		}

		next, ok := e.cross(prefixes, set.Bytes())
		switch suffix {
		case '*', '-':
			break walk
		case '?':
			if !ok || len(next)+len(prefixes) > e.config.MaxLiterals {
				break walk
			}
			prefixes = append(prefixes, next...)
			w.branches++
			p = ep + 1
		case '+':
			if ok {
				prefixes = next
			}
			break walk
		default:
			if !ok {
				break walk
			}
			prefixes = next
			p = ep
		}

		if e.longest(prefixes) >= e.config.MaxLiteralLen {
			break
		}
	}

	lits := make([]Literal, len(prefixes))
	for i, b := range prefixes {
		lits[i] = NewLiteral(b, complete)
	}
	seq := NewSeq(lits...)
	seq.Branches = w.branches
	return seq
}

// cross extends every prefix by every byte of set. It fails when the result
// would exceed MaxLiterals or when set is empty.
func (e *Extractor) cross(prefixes [][]byte, set []byte) ([][]byte, bool) {
	if len(set) == 0 || len(prefixes)*len(set) > e.config.MaxLiterals {
		return nil, false
	}
	out := make([][]byte, 0, len(prefixes)*len(set))
	for _, pre := range prefixes {
		for _, b := range set {
			lit := make([]byte, len(pre)+1)
			copy(lit, pre)
			lit[len(pre)] = b
			out = append(out, lit)
		}
	}
	return out, true
}

func (e *Extractor) longest(prefixes [][]byte) int {
	n := 0
	for _, p := range prefixes {
		n = max(n, len(p))
	}
	return n
}

// ExtractFirstBytes returns the set of bytes a match of pattern can start
// with, and the number of branch points crossed to establish it. The set is
// nil when a match may be empty or its first byte cannot be determined, and
// for anchored patterns.
//
// Examples:
//
//	"%d+"      → [0-9]
//	"%s*(%w+)" → whitespace and alphanumerics
//	"a*"       → nil (may match empty)
func (e *Extractor) ExtractFirstBytes(pattern string) (*charclass.Set, int) {
	if len(pattern) > 0 && pattern[0] == '^' {
		return nil, 0
	}

	w := walker{pattern: pattern}
	var first charclass.Set

	p := 0
	for {
		var ok bool
		if p, ok = w.skipCaptures(p); !ok || p >= len(pattern) {
			return nil, 0
		}
		if pattern[p] == '$' && p+1 == len(pattern) {
			return nil, 0
		}
		if pattern[p] == charclass.Esc && p+1 < len(pattern) {
			switch pattern[p+1] {
			case 'b':
				if p+3 >= len(pattern) {
					return nil, 0
				}
				first[pattern[p+2]] = true
				return &first, w.branches
			case 'f', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				return nil, 0
			}
		}

		ep, err := charclass.ClassEnd(pattern, p)
		if err != nil {
			return nil, 0
		}
		set := charclass.Compile(pattern[p:ep])
		for b, in := range set {
			if in {
				first[b] = true
			}
		}

		if ep < len(pattern) {
			switch pattern[ep] {
			case '*', '-', '?':
				w.branches++
				p = ep + 1
				continue
			}
		}
		return &first, w.branches
	}
}
