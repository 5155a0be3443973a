package sux

import (
	"sync/atomic"

	"github.com/sux-go/sux/internal/opt"
)

// ConditionVariable is a condition variable in a single 32-bit counter
// plus a parking word, paired with a Mutex (WaitExclusive) or with a
// SharedMutex held in shared or update mode (WaitShared, WaitUpdate).
// There is no wait that releases and re-acquires a SharedMutex's
// exclusive hold. It follows the standard
// condition-variable discipline: Signal and Broadcast carry no
// guarantee that the waited-for predicate is still true by the time a
// waiter resumes, so callers must recheck it in a loop.
//
// The zero value is a ConditionVariable with no pending waiters. A
// ConditionVariable must not be copied after first use.
type ConditionVariable struct {
	_    noCopy
	cw   atomic.Uint32
	sema opt.Sema
}

// WaitExclusive releases m, blocks until signaled, and re-acquires m
// before returning.
func (c *ConditionVariable) WaitExclusive(m *Mutex) {
	c.cw.Add(1)
	m.Unlock()
	c.sema.Acquire()
	m.Lock()
}

// WaitShared releases s's shared hold, blocks until signaled, and
// re-acquires a shared hold before returning.
func (c *ConditionVariable) WaitShared(s *SharedMutex) {
	c.cw.Add(1)
	s.UnlockShared()
	c.sema.Acquire()
	s.LockShared()
}

// WaitUpdate releases s's update hold, blocks until signaled, and
// re-acquires the update hold before returning.
func (c *ConditionVariable) WaitUpdate(s *SharedMutex) {
	c.cw.Add(1)
	s.UnlockUpdate()
	c.sema.Acquire()
	s.LockUpdate()
}

// Signal wakes at most one waiter, if any are pending. It takes
// exactly one waiter off the pending-wait counter and releases one
// wakeup for it, so every waiter still counted is woken by a later
// Signal or Broadcast; when nobody is waiting it makes no runtime call.
// A woken waiter may find its predicate false again, so callers must
// recheck it after every wakeup, which the wait discipline already
// requires.
func (c *ConditionVariable) Signal() {
	for {
		n := c.cw.Load()
		if n == 0 {
			return
		}
		if c.cw.CompareAndSwap(n, n-1) {
			c.sema.Release()
			return
		}
	}
}

// Broadcast wakes every goroutine parked in Wait* at the moment of the
// call.
func (c *ConditionVariable) Broadcast() {
	n := c.cw.Swap(0)
	for i := uint32(0); i < n; i++ {
		c.sema.Release()
	}
}

// IsWaiting reports whether at least one goroutine is parked. Advisory
// only.
func (c *ConditionVariable) IsWaiting() bool {
	return c.cw.Load() != 0
}
