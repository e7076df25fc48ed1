// Package prefilter provides fast candidate filtering for pattern search
// using the literal prefixes of a pattern.
//
// A prefilter rejects subject offsets at which a match cannot start, so the
// backtracking matcher only runs where a required prefix is present.
//
// Build selects the strategy from what the literal extractor finds:
//   - 1-3 distinct single bytes → Memchr (SWAR byte search)
//   - one literal → Memmem (rare-byte substring search)
//   - several literals → Aho-Corasick automaton
//   - no literal, but a known first-byte set → byte table scan
//
// Example usage:
//
//	pf := prefilter.Build("key=(%w+)", literal.DefaultConfig(), 200)
//	pos := pf.Find([]byte("a=1 key=2"), 0)
//	// pos == 4
package prefilter

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/luapat/charclass"
	"github.com/coregx/luapat/literal"
	"github.com/coregx/luapat/simd"
)

// Prefilter locates candidate match starts.
type Prefilter interface {
	// Find returns the first offset at or after start where a match could
	// begin, or -1. No match can start in haystack[start:pos].
	Find(haystack []byte, start int) int

	// String names the strategy, for logs and metrics labels.
	String() string
}

// Build returns the prefilter for pattern, or nil when the pattern places no
// usable constraint on where matches start. maxDepth is the recursion budget
// of the matcher the prefilter will serve: a prefilter is only built when the
// pattern cannot exhaust the budget before its prefix is consumed.
func Build(pattern string, cfg literal.ExtractorConfig, maxDepth int) Prefilter {
	ex := literal.New(cfg)

	seq := ex.ExtractPrefixes(pattern)
	if !seq.IsEmpty() && !seq.HasEmpty() && seq.Branches < maxDepth {
		seq.Minimize()
		if pf := fromLiterals(seq); pf != nil {
			return pf
		}
	}

	set, branches := ex.ExtractFirstBytes(pattern)
	if set == nil || branches >= maxDepth {
		return nil
	}
	return fromByteSet(set)
}

func fromLiterals(seq *literal.Seq) Prefilter {
	if first, ok := seq.FirstBytes(); ok && allSingleBytes(seq) {
		return fromByteSet(setOf(first))
	}
	if seq.Len() == 1 {
		return newMemmem(seq.Get(0).Bytes)
	}
	return newAhoCorasick(seq)
}

func allSingleBytes(seq *literal.Seq) bool {
	for _, l := range seq.Literals() {
		if l.Len() != 1 {
			return false
		}
	}
	return true
}

func setOf(bytes []byte) *charclass.Set {
	var set charclass.Set
	for _, b := range bytes {
		set[b] = true
	}
	return &set
}

func fromByteSet(set *charclass.Set) Prefilter {
	switch n := set.Len(); {
	case n == 256:
		return nil
	case n > 0 && n <= 3:
		return newMemchr(set.Bytes())
	default:
		return &tablePrefilter{table: set.Table()}
	}
}

// memchrPrefilter finds any of up to three bytes.
type memchrPrefilter struct {
	needles []byte
}

func newMemchr(needles []byte) *memchrPrefilter {
	return &memchrPrefilter{needles: needles}
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	h := haystack[start:]
	var pos int
	switch len(p.needles) {
	case 1:
		pos = simd.Memchr(h, p.needles[0])
	case 2:
		pos = simd.Memchr2(h, p.needles[0], p.needles[1])
	default:
		pos = simd.Memchr3(h, p.needles[0], p.needles[1], p.needles[2])
	}
	if pos < 0 {
		return -1
	}
	return start + pos
}

func (p *memchrPrefilter) String() string {
	return fmt.Sprintf("memchr%d", len(p.needles))
}

// tablePrefilter finds any byte of a class.
type tablePrefilter struct {
	table *[256]bool
}

func (p *tablePrefilter) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	pos := simd.MemchrInTable(haystack[start:], p.table)
	if pos < 0 {
		return -1
	}
	return start + pos
}

func (p *tablePrefilter) String() string {
	return "byteset"
}

// memmemPrefilter finds one literal.
type memmemPrefilter struct {
	needle []byte
}

func newMemmem(needle []byte) *memmemPrefilter {
	return &memmemPrefilter{needle: needle}
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	pos := simd.Memmem(haystack[start:], p.needle)
	if pos < 0 {
		return -1
	}
	return start + pos
}

func (p *memmemPrefilter) String() string {
	return "memmem"
}

// ahoCorasickPrefilter finds the leftmost of several literals.
type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
}

func newAhoCorasick(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	for _, l := range seq.Literals() {
		builder.AddPattern(l.Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		// Fall back to the first-byte set, which is always sound.
		if first, ok := seq.FirstBytes(); ok {
			return fromByteSet(setOf(first))
		}
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto}
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) String() string {
	return "ahocorasick"
}
