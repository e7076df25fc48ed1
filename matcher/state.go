// Package matcher implements the recursive backtracking core of the Lua
// pattern engine.
//
// A State is the match context of one driver call: the immutable subject and
// pattern, the capture table, the recursion budget and the governor. Drivers
// call Reset before every attempt at a new start offset and Match to run the
// attempt; the governor is shared by all attempts of the call.
//
// The core never panics on malformed input. Every fatal condition is returned
// as an *Error and unwinds the whole recursion; "no match" is reported as -1.
package matcher

import (
	"strconv"

	"github.com/coregx/luapat/governor"
)

const (
	// MaxCaptures is the capacity of the capture table.
	MaxCaptures = 32

	// DefaultMaxDepth is the default recursion budget.
	DefaultMaxDepth = 200
)

// Capture slot length sentinels.
const (
	capUnfinished = -1
	capPosition   = -2
)

type captureSlot struct {
	init int
	len  int
}

// State is the match context of one driver call.
// A State is not safe for concurrent use.
type State struct {
	src string
	pat string

	// depth is the remaining recursion budget; it is decremented on entry to
	// match and restored on return.
	depth    int
	maxDepth int

	level   int // number of slots in use, finished or not
	capture [MaxCaptures]captureSlot

	gov *governor.Governor
}

// New creates a State for matching pattern against src. maxDepth <= 0 means
// DefaultMaxDepth; a nil gov means an unbounded governor.
func New(src, pattern string, maxDepth int, gov *governor.Governor) *State {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if gov == nil {
		gov = governor.New(governor.Config{})
	}
	return &State{
		src:      src,
		pat:      pattern,
		depth:    maxDepth,
		maxDepth: maxDepth,
		gov:      gov,
	}
}

// Reset prepares the State for an attempt at a new start offset.
func (ms *State) Reset() {
	ms.level = 0
	ms.depth = ms.maxDepth
}

// Level returns the number of captures opened by the last attempt.
func (ms *State) Level() int {
	return ms.level
}

// Depth returns the remaining recursion budget. Between attempts it always
// equals the configured budget.
func (ms *State) Depth() int {
	return ms.depth
}

// Governor returns the governor shared by the attempts of this State.
func (ms *State) Governor() *governor.Governor {
	return ms.gov
}

// Subject returns the subject text.
func (ms *State) Subject() string {
	return ms.src
}

// Capture is one result of a successful match.
type Capture struct {
	// Start and End are 0-based byte offsets into the subject (End exclusive).
	// For position captures Start == End.
	Start, End int

	// Text is the captured text; empty for position captures.
	Text string

	// Position marks a "()" capture whose value is the 1-based offset Start+1.
	Position bool
}

// Pos returns the 1-based offset of a position capture.
func (c Capture) Pos() int {
	return c.Start + 1
}

// String returns the captured text, or the decimal offset of a position
// capture.
func (c Capture) String() string {
	if c.Position {
		return strconv.Itoa(c.Pos())
	}
	return c.Text
}

// Capture returns capture i (0-based) of the last successful attempt, which
// matched src[s:e]. When no captures were declared, index 0 is the whole
// match.
func (ms *State) Capture(i, s, e int) (Capture, error) {
	if i >= ms.level {
		if i != 0 {
			return Capture{}, malformed("invalid capture index %%%d", i+1)
		}
		return Capture{Start: s, End: e, Text: ms.src[s:e]}, nil
	}
	slot := ms.capture[i]
	switch slot.len {
	case capUnfinished:
		return Capture{}, malformed("unfinished capture")
	case capPosition:
		return Capture{Start: slot.init, End: slot.init, Position: true}, nil
	default:
		end := slot.init + slot.len
		return Capture{Start: slot.init, End: end, Text: ms.src[slot.init:end]}, nil
	}
}

// Captures returns all captures of the last successful attempt, which matched
// src[s:e]. If the pattern declared none and whole is true, the whole match
// is returned as the only capture.
func (ms *State) Captures(s, e int, whole bool) ([]Capture, error) {
	n := ms.level
	if n == 0 && whole {
		n = 1
	}
	if n == 0 {
		return nil, nil
	}
	caps := make([]Capture, n)
	for i := range caps {
		c, err := ms.Capture(i, s, e)
		if err != nil {
			return nil, err
		}
		caps[i] = c
	}
	return caps, nil
}
