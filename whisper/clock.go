package whisper

import "time"

// nowUnix is the one place the core touches the wall clock; everything
// else goes through the injected Clock interface.
func nowUnix() int64 {
	return time.Now().Unix()
}

// SystemClock is the default Clock, backed by time.Now. Open uses it
// unless WithClock is passed.
func SystemClock() Clock { return systemClock{} }

// fixedClock is used by tests to pin "now" the way the teacher's own
// testing hook overrides it, without any process-global state.
type fixedClock uint64

func (f fixedClock) Now() uint64 { return uint64(f) }

// FixedClock returns a Clock that always reports t.
func FixedClock(t uint64) Clock { return fixedClock(t) }
