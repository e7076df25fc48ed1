// Package simd provides word-at-a-time byte scanning for the literal
// prefilters of the pattern engine.
//
// The scanners use SWAR (SIMD Within A Register): eight subject bytes are
// loaded into a uint64 and compared against a broadcast needle with a handful
// of integer operations. Single-byte search defers to bytes.IndexByte when the
// CPU has vector units the runtime already exploits, since the runtime's
// assembly beats any portable loop there.
package simd

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// hasVectorIndexByte reports whether the runtime's IndexByte is vectorized on
// this CPU.
var hasVectorIndexByte = cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD

const (
	lo8 = uint64(0x0101010101010101)
	hi8 = uint64(0x8080808080808080)
)

// zeroBytes returns a word whose high bit is set in every byte lane of v that
// is zero. Lanes above the first zero lane may be set spuriously, so only the
// lowest set lane is meaningful.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) &^ v & hi8
}

func broadcast(b byte) uint64 {
	return uint64(b) * lo8
}

// Memchr returns the index of the first needle in haystack, or -1.
//
// Example:
//
//	simd.Memchr([]byte("hello world"), 'o') // 4
func Memchr(haystack []byte, needle byte) int {
	if hasVectorIndexByte {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrSWAR(haystack, needle)
}

func memchrSWAR(haystack []byte, needle byte) int {
	m := broadcast(needle)
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		w := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(w ^ m); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// Memchr2 returns the index of the first byte equal to n1 or n2, or -1.
func Memchr2(haystack []byte, n1, n2 byte) int {
	m1, m2 := broadcast(n1), broadcast(n2)
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		w := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(w^m1) | zeroBytes(w^m2); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if b := haystack[i]; b == n1 || b == n2 {
			return i
		}
	}
	return -1
}

// Memchr3 returns the index of the first byte equal to n1, n2 or n3, or -1.
func Memchr3(haystack []byte, n1, n2, n3 byte) int {
	m1, m2, m3 := broadcast(n1), broadcast(n2), broadcast(n3)
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		w := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(w^m1) | zeroBytes(w^m2) | zeroBytes(w^m3); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if b := haystack[i]; b == n1 || b == n2 || b == n3 {
			return i
		}
	}
	return -1
}

// MemchrInTable returns the index of the first byte b with table[b] set,
// or -1. A nil table matches nothing.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	if table == nil {
		return -1
	}
	i := 0
	for ; i+4 <= len(haystack); i += 4 {
		switch {
		case table[haystack[i]]:
			return i
		case table[haystack[i+1]]:
			return i + 1
		case table[haystack[i+2]]:
			return i + 2
		case table[haystack[i+3]]:
			return i + 3
		}
	}
	for ; i < len(haystack); i++ {
		if table[haystack[i]] {
			return i
		}
	}
	return -1
}
