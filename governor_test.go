package luapat

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/coregx/luapat/governor"
)

// A lazy chain that cannot match explores a combinatorial number of splits.
var (
	slowPattern = strings.Repeat("a-", 20) + "b"
	slowSubject = strings.Repeat("a", 30)
)

func TestCallbackStops(t *testing.T) {
	var last uint64
	_, err := Find(slowSubject, slowPattern,
		WithStepThreshold(10_000),
		WithCallback(func(steps uint64) bool {
			last = steps
			return steps >= 1_000_000
		}))

	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want Cancelled", err)
	}
	if !errors.Is(err, ErrStopped) {
		t.Errorf("err = %v, want it to wrap ErrStopped", err)
	}
	if last != 1_000_000 {
		t.Errorf("last callback saw %d steps, want 1000000", last)
	}
}

func TestCallbackEveryStep(t *testing.T) {
	calls := 0
	_, err := Find("abc", "b", WithStepThreshold(1), WithCallback(func(uint64) bool {
		calls++
		return true
	}))
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("err = %v, want ErrStopped", err)
	}
	if calls != 1 {
		t.Errorf("callback called %d times, want 1", calls)
	}
}

func TestCallbackCumulativeSteps(t *testing.T) {
	var seen []uint64
	_, n, err := GSub("aaa bbb aaa", "a+", Template("x"),
		WithStepThreshold(3),
		WithCallback(func(steps uint64) bool {
			seen = append(seen, steps)
			return false
		}))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
	if len(seen) == 0 {
		t.Fatal("callback never called")
	}
	for i, s := range seen {
		if want := uint64(3 * (i + 1)); s != want {
			t.Errorf("call %d saw %d steps, want %d", i, s, want)
		}
	}
}

func TestCallbackNestedSearch(t *testing.T) {
	nested := 0
	got, n, err := GSub("one two", "%a+", Template("<%0>"),
		WithStepThreshold(1),
		WithCallback(func(uint64) bool {
			if _, err := Match("inner", "(%a+)"); err == nil {
				nested++
			}
			return false
		}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "<one> <two>" || n != 2 {
		t.Errorf("GSub = %q, %d", got, n)
	}
	if nested == 0 {
		t.Error("nested searches did not run")
	}
}

func TestDeadline(t *testing.T) {
	base := time.Unix(0, 0)
	ticks := 0
	clock := func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Second)
	}

	_, err := Find(slowSubject, slowPattern, WithGovernor(governor.Config{
		Threshold: 100,
		Timeout:   500 * time.Millisecond,
		Clock:     clock,
	}))
	if !errors.Is(err, ErrCancelled) || !errors.Is(err, ErrTimeLimit) {
		t.Fatalf("err = %v, want time limit cancellation", err)
	}
	// One reading at start, one at the first check.
	if ticks != 2 {
		t.Errorf("clock read %d times, want 2", ticks)
	}
}

func TestWallClockTimeout(t *testing.T) {
	it := GMatch(slowSubject, slowPattern, WithTimeout(5*time.Millisecond), WithStepThreshold(1000))
	_, ok, err := it.Next()
	if ok || !errors.Is(err, ErrTimeLimit) {
		t.Fatalf("Next() = %v, %v; want time limit", ok, err)
	}
}

func TestCallbackBeatsTimeout(t *testing.T) {
	_, err := Find(slowSubject, slowPattern,
		WithTimeout(time.Hour),
		WithStepThreshold(1000),
		WithCallback(func(uint64) bool { return true }))
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("err = %v, want ErrStopped", err)
	}
}

func TestComplexityExceeded(t *testing.T) {
	pattern := strings.Repeat("a?", 300)
	subject := strings.Repeat("a", 300)

	_, err := Match(subject, pattern)
	if !errors.Is(err, ErrComplexityExceeded) {
		t.Fatalf("err = %v, want ComplexityExceeded", err)
	}

	cfg := DefaultConfig()
	cfg.MaxRecursionDepth = 1000
	caps, err := MustNew(cfg).Match(subject, pattern)
	if err != nil {
		t.Fatalf("deeper budget: %v", err)
	}
	if len(caps) != 1 || caps[0].Text != subject {
		t.Errorf("deeper budget matched %d captures", len(caps))
	}
}

func TestCaptureOverflow(t *testing.T) {
	_, err := Find("abc", strings.Repeat("()", 33))
	if !errors.Is(err, ErrCaptureOverflow) {
		t.Fatalf("err = %v, want CaptureOverflow", err)
	}

	caps, err := Match("abc", strings.Repeat("()", 32))
	if err != nil {
		t.Fatal(err)
	}
	if len(caps) != 32 {
		t.Errorf("got %d captures, want 32", len(caps))
	}
}

func TestGovernedPlainPatternUsesMatcher(t *testing.T) {
	steps := uint64(0)
	var obs []SearchEvent
	eng := MustNew(Config{
		MaxRecursionDepth: 200,
		StepThreshold:     1,
		MaxPrefixLiterals: 64,
		Observer:          ObserverFunc(func(ev SearchEvent) { obs = append(obs, ev) }),
	})
	r, err := eng.Find("hello world", "world", WithCallback(func(s uint64) bool {
		steps = s
		return false
	}))
	if err != nil || r == nil || r.Start != 7 {
		t.Fatalf("Find = %+v, %v", r, err)
	}
	if steps == 0 {
		t.Error("governor saw no steps")
	}
	if len(obs) != 1 || obs[0].Plain || obs[0].Mode != governor.Callback {
		t.Errorf("events = %+v", obs)
	}
}
