package matcher

import (
	"github.com/coregx/luapat/charclass"
)

// Match runs one attempt of the whole pattern at subject offset s.
// It returns the end offset of the match, or -1 when there is no match here.
func (ms *State) Match(s int) (int, error) {
	return ms.match(s, 0)
}

// match is the recursive entry point. It accounts for the recursion budget
// and delegates to doMatch.
func (ms *State) match(s, p int) (int, error) {
	if ms.depth == 0 {
		return -1, &Error{Kind: ComplexityExceeded, Message: "pattern too complex"}
	}
	ms.depth--
	res, err := ms.doMatch(s, p)
	ms.depth++
	return res, err
}

// doMatch matches pattern[p:] against src[s:]. Transitions that simply
// continue with advanced cursors loop in place; genuine branch points recurse
// through match.
//
//nolint:gocyclo,cyclop // complexity is inherent to token dispatch
func (ms *State) doMatch(s, p int) (int, error) {
	for p < len(ms.pat) {
		switch ms.pat[p] {
		case '(':
			if p+1 < len(ms.pat) && ms.pat[p+1] == ')' {
				return ms.startCapture(s, p+2, capPosition)
			}
			return ms.startCapture(s, p+1, capUnfinished)

		case ')':
			return ms.endCapture(s, p+1)

		case '$':
			if p+1 == len(ms.pat) {
				if s == len(ms.src) {
					return s, nil
				}
				return -1, nil
			}
			// not the last byte: a literal '$'

		case charclass.Esc:
			if p+1 >= len(ms.pat) {
				break // classEnd reports the trailing escape
			}
			switch ms.pat[p+1] {
			case 'b':
				e, err := ms.matchBalance(s, p+2)
				if err != nil || e < 0 {
					return -1, err
				}
				s, p = e, p+4
				continue

			case 'f':
				p += 2
				if p >= len(ms.pat) || ms.pat[p] != '[' {
					return -1, malformed("missing '[' after '%%f' in pattern")
				}
				ep, err := charclass.ClassEnd(ms.pat, p)
				if err != nil {
					return -1, wrapMalformed(err)
				}
				set := ms.pat[p : ep-1]
				if !charclass.MatchBracket(ms.byteAt(s-1), set) &&
					charclass.MatchBracket(ms.byteAt(s), set) {
					p = ep
					continue
				}
				return -1, nil

			case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				e, err := ms.matchCapture(s, ms.pat[p+1])
				if err != nil || e < 0 {
					return -1, err
				}
				s, p = e, p+2
				continue
			}
		}

		// Default: a single class with an optional quantifier suffix.
		ep, err := charclass.ClassEnd(ms.pat, p)
		if err != nil {
			return -1, wrapMalformed(err)
		}
		var suffix byte
		if ep < len(ms.pat) {
			suffix = ms.pat[ep]
		}

		ok, err := ms.singleMatch(s, p, ep)
		if err != nil {
			return -1, err
		}
		if !ok {
			if suffix == '*' || suffix == '?' || suffix == '-' {
				p = ep + 1 // accept empty
				continue
			}
			return -1, nil // '+' or no suffix
		}

		switch suffix {
		case '?':
			res, err := ms.match(s+1, ep+1)
			if err != nil || res >= 0 {
				return res, err
			}
			p = ep + 1
		case '+':
			return ms.maxExpand(s+1, p, ep)
		case '*':
			return ms.maxExpand(s, p, ep)
		case '-':
			return ms.minExpand(s, p, ep)
		default:
			s, p = s+1, ep
		}
	}
	return s, nil
}

// byteAt returns src[i], or the zero byte outside the subject.
func (ms *State) byteAt(i int) byte {
	if i < 0 || i >= len(ms.src) {
		return 0
	}
	return ms.src[i]
}

// singleMatch tests the class pattern[p:ep] against the byte at s. Every call
// is one governor step.
func (ms *State) singleMatch(s, p, ep int) (bool, error) {
	if err := ms.gov.Step(); err != nil {
		return false, cancelled(err)
	}
	if s >= len(ms.src) {
		return false, nil
	}
	return charclass.Single(ms.src[s], ms.pat, p, ep), nil
}

// matchBalance implements %bxy with the operands at pattern[p:p+2].
func (ms *State) matchBalance(s, p int) (int, error) {
	if p+1 >= len(ms.pat) {
		return -1, malformed("malformed pattern (missing arguments to '%%b')")
	}
	if s >= len(ms.src) || ms.src[s] != ms.pat[p] {
		return -1, nil
	}
	b, e := ms.pat[p], ms.pat[p+1]
	cont := 1
	for s++; s < len(ms.src); s++ {
		switch ms.src[s] {
		case e:
			cont--
			if cont == 0 {
				return s + 1, nil
			}
		case b:
			cont++
		}
	}
	return -1, nil // string ends out of balance
}

// maxExpand is the greedy expansion for '*' and '+': measure the longest run,
// then back off one repetition at a time.
func (ms *State) maxExpand(s, p, ep int) (int, error) {
	i := 0
	for {
		ok, err := ms.singleMatch(s+i, p, ep)
		if err != nil {
			return -1, err
		}
		if !ok {
			break
		}
		i++
	}
	for ; i >= 0; i-- {
		res, err := ms.match(s+i, ep+1)
		if err != nil || res >= 0 {
			return res, err
		}
	}
	return -1, nil
}

// minExpand is the lazy expansion for '-': try the continuation first, then
// grow the repetition count one byte at a time.
func (ms *State) minExpand(s, p, ep int) (int, error) {
	for {
		res, err := ms.match(s, ep+1)
		if err != nil || res >= 0 {
			return res, err
		}
		ok, err := ms.singleMatch(s, p, ep)
		if err != nil {
			return -1, err
		}
		if !ok {
			return -1, nil
		}
		s++
	}
}

// startCapture opens a capture at s and matches the rest of the pattern. The
// capture is dropped again if the continuation fails.
func (ms *State) startCapture(s, p, what int) (int, error) {
	if ms.level >= MaxCaptures {
		return -1, &Error{Kind: CaptureOverflow, Message: "too many captures"}
	}
	ms.capture[ms.level] = captureSlot{init: s, len: what}
	ms.level++
	res, err := ms.match(s, p)
	if err == nil && res < 0 {
		ms.level--
	}
	return res, err
}

// endCapture closes the innermost unfinished capture at s. The capture is
// reopened if the continuation fails.
func (ms *State) endCapture(s, p int) (int, error) {
	l, err := ms.captureToClose()
	if err != nil {
		return -1, err
	}
	ms.capture[l].len = s - ms.capture[l].init
	res, err := ms.match(s, p)
	if err == nil && res < 0 {
		ms.capture[l].len = capUnfinished
	}
	return res, err
}

func (ms *State) captureToClose() (int, error) {
	for level := ms.level - 1; level >= 0; level-- {
		if ms.capture[level].len == capUnfinished {
			return level, nil
		}
	}
	return -1, malformed("invalid pattern capture")
}

// matchCapture implements the back-reference %1-%9 given its digit.
func (ms *State) matchCapture(s int, digit byte) (int, error) {
	l := int(digit) - '1'
	if l < 0 || l >= ms.level || ms.capture[l].len == capUnfinished {
		return -1, malformed("invalid capture index %%%d", l+1)
	}
	n := ms.capture[l].len
	if n < 0 {
		// position captures hold no text and never match
		return -1, nil
	}
	init := ms.capture[l].init
	if len(ms.src)-s >= n && ms.src[init:init+n] == ms.src[s:s+n] {
		return s + n, nil
	}
	return -1, nil
}
