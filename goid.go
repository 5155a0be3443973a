package sux

import (
	"runtime"
	"strconv"
)

// goroutineID returns a best-effort identifier for the calling goroutine.
//
// Go deliberately exposes no stable API for this, so RecursiveSharedMutex's
// writer field is filled in the way the wider ecosystem does it when a
// per-goroutine identity is unavoidable: ask the runtime for a single-frame
// stack trace and parse the "goroutine N [...]:" header line. This is the
// same family of trick the teacher package uses to reach into the runtime
// via go:linkname for its spin primitives (sync.runtime_canSpin /
// sync.runtime_doSpin); here the reach is through the exported, if informally
// specified, runtime.Stack instead, since the goroutine id itself has no
// linknamed accessor.
//
// The returned value is stable for the lifetime of the goroutine and is
// never 0, so 0 is reserved as the "no writer" sentinel.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	const prefix = "goroutine "
	if len(b) < len(prefix) || string(b[:len(prefix)]) != prefix {
		return -1
	}
	b = b[len(prefix):]

	i := 0
	for i < len(b) && b[i] != ' ' {
		i++
	}
	id, err := strconv.ParseInt(string(b[:i]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
