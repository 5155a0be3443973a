//go:build race

package opt

// Race_ reports whether the race detector is instrumenting this build.
// ElisionGuard consults it: lock elision and the race detector's shadow
// memory model do not mix, so elision is disabled whenever Race_ is true.
const Race_ = true
