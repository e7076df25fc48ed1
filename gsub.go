package luapat

import (
	"fmt"
	"strings"

	"github.com/coregx/luapat/matcher"
)

// Replacement computes the text substituted for a match in GSub.
// It is implemented by Template, Table and Func.
type Replacement interface {
	// expand appends the replacement for the match subject[s:e] and reports
	// whether the match text was replaced.
	expand(b *strings.Builder, ms *matcher.State, s, e int) (bool, error)
}

// Template is a replacement string. "%0" stands for the whole match, "%1"
// to "%9" for a capture and "%%" for a literal percent sign; any other use
// of '%' is an error. Position captures expand to their decimal offset.
type Template string

func (t Template) expand(b *strings.Builder, ms *matcher.State, s, e int) (bool, error) {
	tpl := string(t)
	for {
		i := strings.IndexByte(tpl, '%')
		if i < 0 {
			b.WriteString(tpl)
			return true, nil
		}
		b.WriteString(tpl[:i])
		if i+1 == len(tpl) {
			return false, invalidReplacement("invalid use of '%%' in replacement string")
		}
		switch c := tpl[i+1]; {
		case c == '%':
			b.WriteByte('%')
		case c == '0':
			b.WriteString(ms.Subject()[s:e])
		case c >= '1' && c <= '9':
			idx := int(c - '1')
			if idx >= ms.Level() && idx != 0 {
				return false, invalidReplacement("invalid capture index %%%d in replacement string", idx+1)
			}
			cp, err := ms.Capture(idx, s, e)
			if err != nil {
				return false, err
			}
			b.WriteString(cp.String())
		default:
			return false, invalidReplacement("invalid use of '%%' in replacement string")
		}
		tpl = tpl[i+2:]
	}
}

// Table replaces a match by looking up its first capture, or the whole match
// when the pattern declares none. A missing key keeps the match text.
type Table map[string]string

func (t Table) expand(b *strings.Builder, ms *matcher.State, s, e int) (bool, error) {
	key, err := ms.Capture(0, s, e)
	if err != nil {
		return false, err
	}
	v, ok := t[key.String()]
	if !ok {
		b.WriteString(ms.Subject()[s:e])
		return false, nil
	}
	b.WriteString(v)
	return true, nil
}

// Func computes the replacement from the captures of a match (the whole
// match when the pattern declares none). Returning false keeps the match
// text. A returned error aborts GSub; it is reported as InvalidReplacement
// unless it already is an *Error.
type Func func(caps []Capture) (string, bool, error)

func (f Func) expand(b *strings.Builder, ms *matcher.State, s, e int) (bool, error) {
	caps, err := ms.Captures(s, e, true)
	if err != nil {
		return false, err
	}
	repl, ok, err := f(caps)
	if err != nil {
		if matcher.KindOf(err) != 0 {
			return false, err
		}
		return false, &Error{Kind: InvalidReplacement, Message: err.Error(), Cause: err}
	}
	if !ok {
		b.WriteString(ms.Subject()[s:e])
		return false, nil
	}
	b.WriteString(repl)
	return true, nil
}

func invalidReplacement(format string, args ...any) *Error {
	return &Error{Kind: InvalidReplacement, Message: fmt.Sprintf(format, args...)}
}

// GSub replaces the non-overlapping matches of pattern in subject, left to
// right, and returns the result with the number of matches. At most
// WithMaxReplacements matches are replaced. An anchored pattern is tried only
// at the start of the subject.
//
// When no match text was actually replaced the subject is returned as is.
// On error the partial result is discarded.
//
// Example:
//
//	out, n, _ := engine.GSub("hello world", "(%w+)", luapat.Template("<%1>"))
//	// out == "<hello> <world>", n == 2
func (e *Engine) GSub(subject, pattern string, repl Replacement, opts ...Option) (string, int, error) {
	if repl == nil {
		return "", 0, invalidReplacement("missing replacement")
	}
	o := buildOptions(opts)
	maxN := len(subject) + 1
	if o.hasMax {
		maxN = o.maxRepl
	}

	sr := e.newSearch(OpGSub, subject, pattern, &o)
	var b strings.Builder
	src, lastmatch, n := 0, -1, 0
	changed := false

	for n < maxN {
		if !sr.anchored && sr.tracker.IsActive() {
			c := sr.candidate(src)
			if c < 0 {
				break
			}
			b.WriteString(subject[src:c])
			src = c
		}

		end, err := sr.attempt(src)
		if err != nil {
			sr.finish(n, err)
			return "", 0, err
		}
		switch {
		case end >= 0 && end != lastmatch:
			n++
			replaced, err := repl.expand(&b, sr.ms, src, end)
			if err != nil {
				sr.finish(n, err)
				return "", 0, err
			}
			changed = changed || replaced
			src, lastmatch = end, end
			sr.confirm()
		case src < len(subject):
			b.WriteByte(subject[src])
			src++
		default:
			sr.finish(n, nil)
			return result(subject, &b, src, changed), n, nil
		}
		if sr.anchored {
			break
		}
	}

	sr.finish(n, nil)
	return result(subject, &b, src, changed), n, nil
}

func result(subject string, b *strings.Builder, src int, changed bool) string {
	if !changed {
		return subject
	}
	b.WriteString(subject[src:])
	return b.String()
}
