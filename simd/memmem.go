package simd

import (
	"bytes"
	"strings"
)

// Memmem returns the index of the first occurrence of needle in haystack,
// or -1. An empty needle matches at 0, like bytes.Index.
//
// Candidates are located by scanning for the rarest byte of the needle with
// Memchr and then verified in full.
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare := RareByteIndex(needle)
	last := len(haystack) - len(needle) // last valid start
	from := rare
	for from < len(haystack) {
		c := Memchr(haystack[from:], needle[rare])
		if c < 0 {
			return -1
		}
		start := from + c - rare
		if start > last {
			return -1
		}
		if bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		from += c + 1
	}
	return -1
}

// RareByteIndex returns the index of the byte of needle that is least likely
// to occur in text, by ByteRank. Ties go to the later byte. needle must not
// be empty.
func RareByteIndex(needle []byte) int {
	best := len(needle) - 1
	for i := len(needle) - 2; i >= 0; i-- {
		if ByteRank(needle[i]) < ByteRank(needle[best]) {
			best = i
		}
	}
	return best
}

// letterRank orders the lowercase letters by their approximate frequency in
// English prose and source code, most common first.
const letterRank = "etaoinsrhldcumfpgwybvkxjqz"

// ByteRank estimates how common b is in typical text: higher is more common.
// Controls and non-ASCII bytes rank lowest, space ranks highest.
func ByteRank(b byte) byte {
	switch {
	case b == ' ':
		return 255
	case b == '\n' || b == '\t' || b == '\r':
		return 120
	case b >= 'a' && b <= 'z':
		return 250 - 5*byte(strings.IndexByte(letterRank, b))
	case b >= 'A' && b <= 'Z':
		return 130 - 3*byte(strings.IndexByte(letterRank, b+('a'-'A')))
	case b >= '0' && b <= '9':
		return 140
	case b == '.' || b == ',' || b == '_' || b == '(' || b == ')':
		return 150
	case b < 0x20 || b >= 0x7f:
		return 1
	default:
		return 60
	}
}
