// Package charclass classifies single bytes against Lua pattern class tokens.
//
// A class token is one of:
//   - a literal byte, e.g. "a"
//   - the wildcard "."
//   - an escaped class "%x": letters a c d g l p s u w x (and z) name ASCII
//     classes, the uppercase letter is the complement, any other escaped byte
//     is itself
//   - a bracket set "[...]" or "[^...]" with escaped classes and x-y ranges
//
// Classes follow the C locale: all bytes >= 0x80 are outside every named class.
package charclass

import "errors"

// Esc is the pattern escape byte.
const Esc = '%'

// ErrMalformed is the cause of every token scanning error.
var ErrMalformed = errors.New("malformed pattern")

// ScanError reports a malformed class token.
type ScanError struct {
	Pos     int
	Message string
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return e.Message
}

// Unwrap returns ErrMalformed.
func (e *ScanError) Unwrap() error {
	return ErrMalformed
}

// ClassEnd returns the index just past the class token starting at p.
// The bytes of the token are pattern[p:end]. A trailing escape or an
// unterminated bracket set is reported as a *ScanError.
func ClassEnd(pattern string, p int) (int, error) {
	c := pattern[p]
	p++
	switch c {
	case Esc:
		if p >= len(pattern) {
			return 0, &ScanError{Pos: p - 1, Message: "malformed pattern (ends with '%')"}
		}
		return p + 1, nil

	case '[':
		if p < len(pattern) && pattern[p] == '^' {
			p++
		}
		// The first member is taken unconditionally so "[]]" is valid.
		for {
			if p >= len(pattern) {
				return 0, &ScanError{Pos: p, Message: "malformed pattern (missing ']')"}
			}
			c := pattern[p]
			p++
			if c == Esc && p < len(pattern) {
				p++ // skip escapes (e.g. '%]')
			}
			if p < len(pattern) && pattern[p] == ']' {
				return p + 1, nil
			}
		}

	default:
		return p, nil
	}
}

// MatchClass reports whether c belongs to the escaped class letter cl.
// Letters that do not name a class match themselves.
func MatchClass(c, cl byte) bool {
	var res bool
	switch toLower(cl) {
	case 'a':
		res = isAlpha(c)
	case 'c':
		res = isCntrl(c)
	case 'd':
		res = isDigit(c)
	case 'g':
		res = isGraph(c)
	case 'l':
		res = isLower(c)
	case 'p':
		res = isPunct(c)
	case 's':
		res = isSpace(c)
	case 'u':
		res = isUpper(c)
	case 'w':
		res = isAlnum(c)
	case 'x':
		res = isXDigit(c)
	case 'z':
		res = c == 0
	default:
		return cl == c
	}
	if isLower(cl) {
		return res
	}
	return !res
}

// MatchBracket reports whether c belongs to the bracket set. set starts at
// the opening '[' and stops before the closing ']', as delimited by ClassEnd.
func MatchBracket(c byte, set string) bool {
	sig := true
	p := 0
	if len(set) > 1 && set[1] == '^' {
		sig = false
		p++
	}
	for p++; p < len(set); p++ {
		switch {
		case set[p] == Esc:
			p++
			if p < len(set) && MatchClass(c, set[p]) {
				return sig
			}
		case p+2 < len(set) && set[p+1] == '-':
			p += 2
			if set[p-2] <= c && c <= set[p] {
				return sig
			}
		case set[p] == c:
			return sig
		}
	}
	return !sig
}

// Single reports whether c matches the class token pattern[p:ep].
func Single(c byte, pattern string, p, ep int) bool {
	switch pattern[p] {
	case '.':
		return true
	case Esc:
		return MatchClass(c, pattern[p+1])
	case '[':
		return MatchBracket(c, pattern[p:ep-1])
	default:
		return pattern[p] == c
	}
}
