package prefilter

// Tracker wraps a Prefilter with effectiveness tracking for one driver call.
//
// The tracker counts candidates returned by the prefilter and how many of
// them the matcher confirmed. When too many candidates turn out false, the
// tracker retires the prefilter and the driver goes back to attempting a
// match at every offset, which is cheaper than a prefilter scan per failure.
//
// Example usage:
//
//	tr := prefilter.NewTracker(pf)
//	for s := 0; s <= len(subject); s++ {
//	    if tr.IsActive() {
//	        if s = tr.Find(subject, s); s < 0 {
//	            break
//	        }
//	    }
//	    if matchAt(s) {
//	        tr.ConfirmMatch()
//	    }
//	}
type Tracker struct {
	inner Prefilter

	candidates uint64
	confirms   uint64

	checkInterval  uint64
	minEfficiency  float64
	warmupPeriod   uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness, in candidates.
	CheckInterval uint64

	// MinEfficiency is the minimum acceptable ratio of confirms to
	// candidates.
	MinEfficiency float64

	// WarmupPeriod is the number of candidates before the first check.
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration: check every
// 64 candidates after a warmup of 128, and retire below 10% efficiency.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a tracker with the default configuration.
// Returns nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration.
// Returns nil if inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{
		inner:         inner,
		checkInterval: config.CheckInterval,
		minEfficiency: config.MinEfficiency,
		warmupPeriod:  config.WarmupPeriod,
		active:        true,
	}
}

// Find returns the next candidate at or after start, or -1. Callers must
// check IsActive first: a retired tracker finds nothing.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.checkEffectiveness()
	}
	return pos
}

// ConfirmMatch records that the last candidate was a real match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the prefilter is still in use. A nil Tracker is
// never active.
func (t *Tracker) IsActive() bool {
	return t != nil && t.active
}

// Stats returns the tracking statistics.
func (t *Tracker) Stats() (candidates, confirms uint64, efficiency float64, active bool) {
	candidates = t.candidates
	confirms = t.confirms
	if candidates > 0 {
		efficiency = float64(confirms) / float64(candidates)
	}
	active = t.active
	return
}

// Inner returns the underlying prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}

func (t *Tracker) checkEffectiveness() {
	if t.candidates < t.warmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.checkInterval {
		return
	}
	t.lastCheckpoint = t.candidates

	if float64(t.confirms)/float64(t.candidates) < t.minEfficiency {
		t.active = false
	}
}
