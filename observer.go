package luapat

import (
	"time"

	"github.com/coregx/luapat/governor"
)

// Op names a search driver.
type Op string

// Driver names reported in SearchEvent.Op.
const (
	OpFind   Op = "find"
	OpMatch  Op = "match"
	OpGMatch Op = "gmatch"
	OpGSub   Op = "gsub"
)

// SearchEvent describes one finished driver call. For GMatch an event is
// emitted when the iterator is exhausted or fails.
type SearchEvent struct {
	Op Op

	// Matches is the number of matches found (replacements for GSub).
	Matches int

	// Steps is the number of governor steps the call consumed.
	Steps uint64

	// Mode is the governor mode of the call.
	Mode governor.Mode

	// Prefilter names the prefilter strategy, or "" when none was used.
	Prefilter string

	// Plain reports a literal substring search that bypassed the matcher.
	Plain bool

	Duration time.Duration

	// Err is the error that ended the call, if any.
	Err error
}

// Observer receives SearchEvents. Implementations must be safe for
// concurrent use when the Engine is shared.
type Observer interface {
	ObserveSearch(ev SearchEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev SearchEvent)

// ObserveSearch calls f(ev).
func (f ObserverFunc) ObserveSearch(ev SearchEvent) {
	f(ev)
}
