package luapat

import (
	"strings"
	"time"

	"github.com/coregx/luapat/governor"
	"github.com/coregx/luapat/internal/conv"
	"github.com/coregx/luapat/simd"
)

// specials are the bytes that make a pattern more than a literal.
const specials = "^$*+?.([%-"

// FindResult is the outcome of a successful Find.
type FindResult struct {
	// Start and End are the 1-based inclusive bounds of the match.
	// An empty match has End == Start-1.
	Start, End int

	// Captures holds the values of the captures the pattern declares.
	// It is empty when the pattern declares none.
	Captures []Capture
}

// Find returns the first match of pattern in subject at or after the init
// position, or nil when there is none.
//
// With WithPlain, or when the pattern contains no special characters and the
// call is not governed, the pattern is searched as a literal substring.
//
// Example:
//
//	r, _ := engine.Find("hello world", "o (w)")
//	// r.Start == 5, r.End == 7, r.Captures[0].Text == "w"
func (e *Engine) Find(subject, pattern string, opts ...Option) (*FindResult, error) {
	o := buildOptions(opts)
	init, ok := startOffset(o.init, len(subject))
	if !ok {
		return nil, nil
	}

	if o.plain || (!strings.ContainsAny(pattern, specials) && o.gov.Mode() == governor.Unbounded) {
		return e.findPlain(subject, pattern, init), nil
	}

	sr := e.newSearch(OpFind, subject, pattern, &o)
	start, end, err := sr.first(init)
	if err != nil || start < 0 {
		sr.finish(0, err)
		return nil, err
	}
	caps, err := sr.ms.Captures(start, end, false)
	if err != nil {
		sr.finish(0, err)
		return nil, err
	}
	sr.finish(1, nil)
	return &FindResult{Start: start + 1, End: end, Captures: caps}, nil
}

func (e *Engine) findPlain(subject, needle string, init int) *FindResult {
	begin := time.Now()
	pos := simd.Memmem(conv.StringBytes(subject[init:]), conv.StringBytes(needle))

	var r *FindResult
	if pos >= 0 {
		r = &FindResult{Start: init + pos + 1, End: init + pos + len(needle)}
	}
	if e.config.Observer != nil {
		matches := 0
		if r != nil {
			matches = 1
		}
		e.config.Observer.ObserveSearch(SearchEvent{
			Op:       OpFind,
			Matches:  matches,
			Plain:    true,
			Duration: time.Since(begin),
		})
	}
	return r
}

// Match returns the captures of the first match of pattern in subject at or
// after the init position, or the whole match when the pattern declares no
// captures. It returns nil when there is no match.
//
// Example:
//
//	caps, _ := engine.Match("key=value", "(%a+)=(%a+)")
//	// caps[0].Text == "key", caps[1].Text == "value"
func (e *Engine) Match(subject, pattern string, opts ...Option) ([]Capture, error) {
	o := buildOptions(opts)
	init, ok := startOffset(o.init, len(subject))
	if !ok {
		return nil, nil
	}

	sr := e.newSearch(OpMatch, subject, pattern, &o)
	start, end, err := sr.first(init)
	if err != nil || start < 0 {
		sr.finish(0, err)
		return nil, err
	}
	caps, err := sr.ms.Captures(start, end, true)
	if err != nil {
		sr.finish(0, err)
		return nil, err
	}
	sr.finish(1, nil)
	return caps, nil
}
