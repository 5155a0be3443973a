package opt

import (
	_ "unsafe" // for linkname
)

// Sema is the runtime-provided per-address counting wait/wake primitive
// that backs every blocking operation in this module: sync.Mutex,
// sync.RWMutex, and sync.WaitGroup are all built on the same pair of
// calls. Acquire blocks until a matching Release arrives; Release is a
// no-op deliverable to the next Acquire call, safe to invoke with no
// one waiting.
//
// This is the module's realization of the WaitWake contract: a single
// address identifies the wait queue, acquire/release ordering holds
// across the pair, and the runtime absorbs spurious wakeups and EINTR
// internally.
type Sema uint32

//go:nosplit
func (s *Sema) Acquire() {
	runtime_semacquire((*uint32)(s))
}

//go:nosplit
func (s *Sema) Release() {
	runtime_semrelease((*uint32)(s), false, 0)
}

//go:linkname runtime_semacquire sync.runtime_Semacquire
func runtime_semacquire(s *uint32)

//go:linkname runtime_semrelease sync.runtime_Semrelease
func runtime_semrelease(s *uint32, handoff bool, skipframes int)
