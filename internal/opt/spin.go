package opt

import _ "unsafe" // for linkname

// CanSpin and DoSpin expose the Go runtime's own active-spin heuristic
// (the same one sync.Mutex uses to decide whether a short spin is cheaper
// than a park) so that Mutex.SpinLock gets ISA-appropriate pause behavior
// without hand-rolling PAUSE/YIELD opcodes per architecture.

//go:linkname CanSpin sync.runtime_canSpin
func CanSpin(i int) bool

//go:linkname DoSpin sync.runtime_doSpin
func DoSpin()
