// Package literal extracts literal byte sequences from Lua patterns.
//
// The primary use case is prefiltering: a pattern such as "key=(%w+)" can
// only match where the subject contains "key=", so the search drivers can
// jump between occurrences of that literal instead of attempting a match at
// every offset.
//
// Key concepts:
//   - A Literal is a byte sequence every match at some offset must begin with
//   - A Seq is a set of alternative literals (e.g. from "[Hh]ello" or "https?")
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte sequence extracted from a pattern. Complete reports
// whether the literal is an entire match rather than just its prefix.
//
// Example:
//   - Pattern "hello" → Literal{"hello", Complete: true}
//   - Pattern "hello%s+" → Literal{"hello ", Complete: false}
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a debugging representation of the literal.
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals.
//
// Branches counts the branch points (capture boundaries and optional items)
// the pattern crosses before its literal prefix is fully consumed. Each one
// costs the matcher one level of recursion, so a prefilter built from the Seq
// is only sound when the recursion budget exceeds it.
type Seq struct {
	literals []Literal
	Branches int
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// Literals returns the literals of the sequence.
func (s *Seq) Literals() []Literal {
	if s == nil {
		return nil
	}
	return s.literals
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// HasEmpty reports whether the sequence contains the empty literal, in which
// case it places no constraint on where a match may start.
func (s *Seq) HasEmpty() bool {
	for _, l := range s.Literals() {
		if len(l.Bytes) == 0 {
			return true
		}
	}
	return false
}

// Minimize removes literals made redundant by a shorter literal that is their
// prefix: any subject position starting with "foobar" also starts with "foo".
// Duplicates are removed as well. The survivors are sorted by length, then
// bytewise.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("foobar"), true),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // 1
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.Slice(s.literals, func(i, j int) bool {
		a, b := s.literals[i].Bytes, s.literals[j].Bytes
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return bytes.Compare(a, b) < 0
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(cur.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest common prefix of all literals.
//
// Example:
//
//	["hello", "help", "hero"] → "he"
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, l := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(l.Bytes) && prefix[n] == l.Bytes[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return append([]byte{}, prefix...)
}

// FirstBytes returns the distinct first bytes of the literals in increasing
// order. ok is false when some literal is empty.
func (s *Seq) FirstBytes() (first []byte, ok bool) {
	var seen [256]bool
	for _, l := range s.Literals() {
		if len(l.Bytes) == 0 {
			return nil, false
		}
		seen[l.Bytes[0]] = true
	}
	for b, in := range seen {
		if in {
			first = append(first, byte(b))
		}
	}
	return first, true
}
