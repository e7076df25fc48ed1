package charclass

// Set is the membership table of a class token: Set[b] is true when byte b
// belongs to the class.
//
// Sets are used by analysis code (literal prefix extraction, byte-table
// scanning); the matcher itself evaluates tokens directly with Single.
type Set [256]bool

// Compile builds the Set of a single class token as delimited by ClassEnd
// (token = pattern[p:ClassEnd(pattern, p)]).
func Compile(token string) Set {
	var s Set
	for i := 0; i < 256; i++ {
		s[i] = Single(byte(i), token, 0, len(token))
	}
	return s
}

// Has reports whether b is a member.
func (s *Set) Has(b byte) bool {
	return s[b]
}

// Len returns the number of members.
func (s *Set) Len() int {
	n := 0
	for _, in := range s {
		if in {
			n++
		}
	}
	return n
}

// Bytes returns the members in increasing order.
func (s *Set) Bytes() []byte {
	out := make([]byte, 0, s.Len())
	for i, in := range s {
		if in {
			out = append(out, byte(i))
		}
	}
	return out
}

// Table exposes the set as a lookup table for byte scanning.
func (s *Set) Table() *[256]bool {
	return (*[256]bool)(s)
}
