// Package luapat implements Lua 5.4 pattern matching for Go with a
// cancellation governor.
//
// Lua patterns are a compact matching language: single-byte classes (%a, %d,
// [a-z], ...) with the quantifiers * + - ?, captures, back-references (%1),
// balanced matches (%b()) and frontiers (%f[set]). They have no alternation,
// and matching is done by a backtracking engine, so a hostile pattern can run
// for a very long time. Every search can therefore be bounded by a governor:
// a step counter checked against a wall-clock deadline or a caller callback.
//
// Basic usage:
//
//	r, err := luapat.Find("hello world", "wor")
//	// r.Start == 7, r.End == 9 (1-based, inclusive)
//
//	caps, err := luapat.Match("key=value", "(%a+)=(%a+)")
//	// caps[0].Text == "key", caps[1].Text == "value"
//
//	out, n, err := luapat.GSub("2024-01-02", "%d+", luapat.Template("#"))
//	// out == "#-#-#", n == 3
//
// Bounded usage:
//
//	_, err := luapat.Find(subject, pattern, luapat.WithTimeout(10*time.Millisecond))
//	if errors.Is(err, luapat.ErrCancelled) {
//	    // the search ran out of time
//	}
//
// Offsets are 1-based in results, as in Lua. "Not found" is a nil result with
// a nil error; errors are reserved for malformed patterns, resource limits and
// cancellation.
package luapat

import (
	"log/slog"
	"time"

	"github.com/coregx/luapat/governor"
	"github.com/coregx/luapat/internal/conv"
	"github.com/coregx/luapat/literal"
	"github.com/coregx/luapat/matcher"
	"github.com/coregx/luapat/prefilter"
)

// Capture is one captured value. Position captures ("()") carry their
// 1-based offset instead of text.
type Capture = matcher.Capture

// Error is the error type of failed searches.
type Error = matcher.Error

// ErrorKind classifies an Error.
type ErrorKind = matcher.ErrorKind

// Error kinds.
const (
	MalformedPattern   = matcher.MalformedPattern
	CaptureOverflow    = matcher.CaptureOverflow
	ComplexityExceeded = matcher.ComplexityExceeded
	Cancelled          = matcher.Cancelled
	InvalidReplacement = matcher.InvalidReplacement
)

// Sentinels for errors.Is. The kind sentinels match any Error of their kind;
// ErrTimeLimit and ErrStopped tell the cause of a cancellation apart.
var (
	ErrMalformedPattern   = matcher.ErrMalformedPattern
	ErrCaptureOverflow    = matcher.ErrCaptureOverflow
	ErrComplexityExceeded = matcher.ErrComplexityExceeded
	ErrCancelled          = matcher.ErrCancelled
	ErrInvalidReplacement = matcher.ErrInvalidReplacement

	ErrTimeLimit = governor.ErrTimeLimit
	ErrStopped   = governor.ErrStopped
)

// Engine runs searches with a fixed configuration.
//
// An Engine is immutable after New and safe for concurrent use; every call
// builds its own match state and governor.
type Engine struct {
	config  Config
	logger  *slog.Logger
	extract literal.ExtractorConfig
}

// New creates an Engine. It returns a *ConfigError if config is invalid.
func New(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	extract := literal.DefaultConfig()
	extract.MaxLiterals = config.MaxPrefixLiterals
	return &Engine{
		config:  config,
		logger:  logger,
		extract: extract,
	}, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(config Config) *Engine {
	e, err := New(config)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

var defaultEngine = MustNew(DefaultConfig())

// Find runs Engine.Find on an engine with DefaultConfig.
func Find(subject, pattern string, opts ...Option) (*FindResult, error) {
	return defaultEngine.Find(subject, pattern, opts...)
}

// Match runs Engine.Match on an engine with DefaultConfig.
func Match(subject, pattern string, opts ...Option) ([]Capture, error) {
	return defaultEngine.Match(subject, pattern, opts...)
}

// GMatch runs Engine.GMatch on an engine with DefaultConfig.
func GMatch(subject, pattern string, opts ...Option) *Iterator {
	return defaultEngine.GMatch(subject, pattern, opts...)
}

// GSub runs Engine.GSub on an engine with DefaultConfig.
func GSub(subject, pattern string, repl Replacement, opts ...Option) (string, int, error) {
	return defaultEngine.GSub(subject, pattern, repl, opts...)
}

// search is the state of one driver call.
type search struct {
	eng      *Engine
	op       Op
	subject  string
	anchored bool
	ms       *matcher.State
	gov      *governor.Governor
	tracker  *prefilter.Tracker
	begin    time.Time
	finished bool
}

func (e *Engine) newSearch(op Op, subject, pattern string, o *callOptions) *search {
	gcfg := o.gov
	if gcfg.Threshold == 0 {
		gcfg.Threshold = e.config.StepThreshold
	}
	gov := governor.New(gcfg)

	anchored := len(pattern) > 0 && pattern[0] == '^'
	if anchored {
		pattern = pattern[1:]
	}

	sr := &search{
		eng:      e,
		op:       op,
		subject:  subject,
		anchored: anchored,
		ms:       matcher.New(subject, pattern, e.config.MaxRecursionDepth, gov),
		gov:      gov,
		begin:    time.Now(),
	}
	// Governed searches attempt every offset so the governor sees the same
	// steps as an unfiltered engine.
	if e.config.EnablePrefilter && !anchored && gov.Mode() == governor.Unbounded {
		if pf := prefilter.Build(pattern, e.extract, e.config.MaxRecursionDepth); pf != nil {
			e.logger.Debug("prefilter selected", "op", op, "pattern", pattern, "strategy", pf.String())
			sr.tracker = prefilter.NewTracker(pf)
		}
	}
	return sr
}

// candidate returns the first offset at or after s where a match may start,
// or -1 when none remains.
func (sr *search) candidate(s int) int {
	if sr.tracker.IsActive() {
		return sr.tracker.Find(conv.StringBytes(sr.subject), s)
	}
	return s
}

// attempt runs one match attempt at offset s.
func (sr *search) attempt(s int) (int, error) {
	sr.ms.Reset()
	return sr.ms.Match(s)
}

func (sr *search) confirm() {
	if sr.tracker != nil {
		sr.tracker.ConfirmMatch()
	}
}

// first returns the leftmost match at or after offset s, or -1, -1.
func (sr *search) first(s int) (start, end int, err error) {
	for {
		if !sr.anchored {
			if s = sr.candidate(s); s < 0 {
				return -1, -1, nil
			}
		}
		e, err := sr.attempt(s)
		if err != nil {
			return -1, -1, err
		}
		if e >= 0 {
			sr.confirm()
			return s, e, nil
		}
		if sr.anchored || s >= len(sr.subject) {
			return -1, -1, nil
		}
		s++
	}
}

func (sr *search) prefilterName() string {
	if sr.tracker == nil {
		return ""
	}
	return sr.tracker.Inner().String()
}

// finish logs and reports the outcome of the call once.
func (sr *search) finish(matches int, err error) {
	if sr.finished {
		return
	}
	sr.finished = true
	e := sr.eng
	if err != nil {
		e.logger.Debug("search aborted",
			"op", sr.op,
			"kind", matcher.KindOf(err),
			"steps", sr.gov.Steps(),
			"error", err)
	}
	if e.config.Observer != nil {
		e.config.Observer.ObserveSearch(SearchEvent{
			Op:        sr.op,
			Matches:   matches,
			Steps:     sr.gov.Steps(),
			Mode:      sr.gov.Mode(),
			Prefilter: sr.prefilterName(),
			Duration:  time.Since(sr.begin),
			Err:       err,
		})
	}
}
