package luapat

import "iter"

// Iterator yields the successive matches of a GMatch call.
//
// Errors are sticky: once Next has returned an error it keeps returning it.
// An Iterator is not safe for concurrent use.
type Iterator struct {
	sr        *search
	src       int // offset of the next attempt
	lastmatch int // end of the previous match, or -1
	count     int
	done      bool
	err       error
}

// GMatch returns an iterator over the matches of pattern in subject, starting
// at the init position. Each step yields the captures of a match, or the
// whole match when the pattern declares none.
//
// An empty match that ends where the previous match ended is skipped, so the
// iterator always advances and stops after at most len(subject)+1 attempts.
// An anchored pattern yields at most one match, at the init position.
//
// Example:
//
//	it := engine.GMatch("one two three", "%a+")
//	for caps, err := range it.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(caps[0].Text)
//	}
func (e *Engine) GMatch(subject, pattern string, opts ...Option) *Iterator {
	o := buildOptions(opts)
	it := &Iterator{
		sr:        e.newSearch(OpGMatch, subject, pattern, &o),
		lastmatch: -1,
	}
	init, ok := startOffset(o.init, len(subject))
	if !ok {
		it.stop()
		return it
	}
	it.src = init
	return it
}

// Next returns the captures of the next match. ok is false when the iterator
// is exhausted or failed.
func (it *Iterator) Next() (caps []Capture, ok bool, err error) {
	if it.err != nil {
		return nil, false, it.err
	}
	if it.done {
		return nil, false, nil
	}

	sr := it.sr
	for s := it.src; s <= len(sr.subject); s++ {
		if !sr.anchored {
			if s = sr.candidate(s); s < 0 {
				break
			}
		}
		e, err := sr.attempt(s)
		if err != nil {
			return nil, false, it.fail(err)
		}
		if e >= 0 && e != it.lastmatch {
			caps, err := sr.ms.Captures(s, e, true)
			if err != nil {
				return nil, false, it.fail(err)
			}
			it.src, it.lastmatch = e, e
			it.count++
			sr.confirm()
			if sr.anchored {
				it.stop()
			}
			return caps, true, nil
		}
		if sr.anchored {
			break
		}
	}
	it.stop()
	return nil, false, nil
}

// All returns the remaining matches as a sequence. An error is yielded once,
// with nil captures, and ends the sequence.
func (it *Iterator) All() iter.Seq2[[]Capture, error] {
	return func(yield func([]Capture, error) bool) {
		for {
			caps, ok, err := it.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok || !yield(caps, nil) {
				return
			}
		}
	}
}

// Err returns the error that ended the iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Count returns the number of matches yielded so far.
func (it *Iterator) Count() int {
	return it.count
}

func (it *Iterator) stop() {
	it.done = true
	it.sr.finish(it.count, nil)
}

func (it *Iterator) fail(err error) error {
	it.err = err
	it.done = true
	it.sr.finish(it.count, err)
	return err
}
