package luapat

import (
	"time"

	"github.com/coregx/luapat/governor"
)

// Option configures a single driver call.
type Option func(*callOptions)

type callOptions struct {
	init    int
	plain   bool
	gov     governor.Config
	maxRepl int
	hasMax  bool
}

func buildOptions(opts []Option) callOptions {
	o := callOptions{init: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithInit sets the 1-based start position. Negative values count from the
// end of the subject; 0 is treated as 1.
func WithInit(init int) Option {
	return func(o *callOptions) { o.init = init }
}

// WithPlain makes Find treat the pattern as a literal substring.
// Other drivers ignore it.
func WithPlain() Option {
	return func(o *callOptions) { o.plain = true }
}

// WithTimeout bounds the call by wall-clock time. The deadline is checked
// every step-threshold steps.
func WithTimeout(d time.Duration) Option {
	return func(o *callOptions) { o.gov.Timeout = d }
}

// WithCallback polls fn with the cumulative step count every step-threshold
// steps; returning true cancels the call. A callback takes precedence over a
// timeout.
func WithCallback(fn func(steps uint64) bool) Option {
	return func(o *callOptions) { o.gov.Callback = fn }
}

// WithStepThreshold overrides the engine's governor stride for this call.
func WithStepThreshold(n uint64) Option {
	return func(o *callOptions) { o.gov.Threshold = n }
}

// WithGovernor replaces the whole governor configuration of the call.
func WithGovernor(cfg governor.Config) Option {
	return func(o *callOptions) { o.gov = cfg }
}

// WithMaxReplacements limits GSub to n substitutions. The default is one
// more than the subject length, which never limits.
func WithMaxReplacements(n int) Option {
	return func(o *callOptions) {
		o.maxRepl = n
		o.hasMax = true
	}
}

// startOffset converts a 1-based init to a 0-based offset. ok is false when
// init lies past the end of the subject plus one.
func startOffset(init, n int) (int, bool) {
	switch {
	case init > 0:
	case init == 0:
		init = 1
	case init < -n:
		init = 1
	default:
		init = n + init + 1
	}
	if init-1 > n {
		return 0, false
	}
	return init - 1, true
}
