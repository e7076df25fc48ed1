// Package governor implements the execution budget that guards pattern
// matching against catastrophic backtracking.
//
// A Governor is consulted once per elementary matching step. Checks are
// batched behind a configurable stride (Threshold): every Threshold steps the
// governor runs the check selected by its mode:
//   - Unbounded: no check (the stride is counted but nothing fires)
//   - Deadline: abort once the wall-clock time since New exceeds Timeout
//   - Callback: call the host callback with the cumulative step count and
//     abort when it returns true
//
// A Governor belongs to exactly one driver call. Its counters persist across
// the start offsets tried by that call, so a budget cannot be reset by
// retrying at the next offset.
//
// Example:
//
//	g := governor.New(governor.Config{
//	    Threshold: 1000,
//	    Timeout:   50 * time.Millisecond,
//	})
//	for ... {
//	    if err := g.Step(); err != nil {
//	        return err // errors.Is(err, governor.ErrTimeLimit)
//	    }
//	}
package governor

import (
	"errors"
	"fmt"
	"time"
)

// DefaultThreshold is the number of steps between two checks.
const DefaultThreshold = 100_000

var (
	// ErrTimeLimit is returned by Step when the deadline has passed.
	ErrTimeLimit = errors.New("time limit exceeded")

	// ErrStopped is returned by Step when the callback asked to stop.
	ErrStopped = errors.New("callback requested stop")
)

// Mode selects what a Governor checks when the stride is reached.
type Mode uint8

const (
	// Unbounded performs no check.
	Unbounded Mode = iota

	// Deadline compares elapsed wall-clock time against Config.Timeout.
	Deadline

	// Callback polls Config.Callback.
	Callback
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case Unbounded:
		return "unbounded"
	case Deadline:
		return "deadline"
	case Callback:
		return "callback"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// CallbackFunc is polled in Callback mode with the cumulative step count.
// Returning true aborts the match.
type CallbackFunc func(steps uint64) bool

// Config describes the budget of one driver call.
//
// The mode is derived from the fields: a non-nil Callback selects Callback
// mode, otherwise a positive Timeout selects Deadline mode, otherwise the
// governor is Unbounded.
type Config struct {
	// Threshold is the number of steps between two checks.
	// Zero means DefaultThreshold.
	Threshold uint64

	// Timeout is the wall-clock budget measured from New.
	Timeout time.Duration

	// Callback is polled every Threshold steps.
	Callback CallbackFunc

	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
}

// Mode returns the mode this configuration resolves to.
func (c Config) Mode() Mode {
	switch {
	case c.Callback != nil:
		return Callback
	case c.Timeout > 0:
		return Deadline
	default:
		return Unbounded
	}
}

// Governor counts matching steps and enforces a Config.
// A Governor is not safe for concurrent use.
type Governor struct {
	mode      Mode
	threshold uint64
	timeout   time.Duration
	callback  CallbackFunc
	clock     func() time.Time
	start     time.Time

	// cur counts steps since the last check, total the steps folded in at
	// previous checks.
	cur   uint64
	total uint64
}

// New creates a Governor and starts its clock.
func New(cfg Config) *Governor {
	g := &Governor{
		mode:      cfg.Mode(),
		threshold: cfg.Threshold,
		timeout:   cfg.Timeout,
		callback:  cfg.Callback,
		clock:     cfg.Clock,
	}
	if g.threshold == 0 {
		g.threshold = DefaultThreshold
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	g.start = g.clock()
	return g
}

// Step records one elementary matching step and runs the mode check when the
// stride is reached. It returns ErrTimeLimit or ErrStopped when the match
// must be aborted.
func (g *Governor) Step() error {
	g.cur++
	if g.cur < g.threshold {
		return nil
	}
	g.total += g.cur
	g.cur = 0

	switch g.mode {
	case Deadline:
		if g.clock().Sub(g.start) > g.timeout {
			return ErrTimeLimit
		}
	case Callback:
		if g.callback(g.total) {
			return ErrStopped
		}
	}
	return nil
}

// Steps returns the cumulative number of steps recorded so far.
func (g *Governor) Steps() uint64 {
	return g.total + g.cur
}

// Mode returns the resolved mode.
func (g *Governor) Mode() Mode {
	return g.mode
}

// Threshold returns the effective stride.
func (g *Governor) Threshold() uint64 {
	return g.threshold
}

// Elapsed returns the time since the governor was created.
func (g *Governor) Elapsed() time.Duration {
	return g.clock().Sub(g.start)
}
