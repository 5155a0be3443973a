package sux

import (
	"sync/atomic"

	"github.com/sux-go/sux/internal/opt"
)

// SharedMutex is a three-mode shared / update / exclusive lock. It is
// built from an embedded Mutex, which serializes all Update and
// Exclusive acquisitions (and the retries of Shared acquisitions that
// lose a race against an in-flight Exclusive request), plus a second
// word that tracks shared-holder count and exclusive intent.
//
// Coexistence:
//
//	holder \ requester   S    U    X
//	S                    ok   ok   blocks
//	U                    ok   blocks blocks
//	X                    blocks blocks blocks
//
// Once an exclusive acquisition has set its intent bit, new Shared
// acquisitions block until it is released, even though existing Shared
// holders are allowed to drain out first.
//
// The zero value is an unlocked SharedMutex. A SharedMutex must not be
// copied after first use.
type SharedMutex struct {
	_    noCopy
	ex   Mutex
	sw   atomic.Uint32
	sema opt.Sema
}

const shuX = uint32(1) << 31

// TryLockShared attempts to take a shared hold without blocking.
func (s *SharedMutex) TryLockShared() bool {
	for {
		old := s.sw.Load()
		if old&shuX != 0 {
			return false
		}
		if s.sw.CompareAndSwap(old, old+1) {
			return true
		}
	}
}

// LockShared takes a shared hold, blocking while an exclusive lock is
// held or requested. A losing attempt takes ex before retrying, which
// guarantees the exclusive requester (or holder) has made progress;
// shared waiters never park directly on sw.
func (s *SharedMutex) LockShared() {
	if s.TryLockShared() {
		return
	}
	for {
		s.ex.Lock()
		acquired := s.TryLockShared()
		s.ex.Unlock()
		if acquired {
			return
		}
	}
}

// UnlockShared releases a shared hold. If this release is the one that
// brings sw down to exactly "exclusive requested, no shared left", it
// wakes the exclusive requester parked in the drain loop; this is the
// only path that ever wakes on sw.
func (s *SharedMutex) UnlockShared() {
	if s.sw.Add(^uint32(0)) == shuX {
		s.sema.Release()
	}
}

// TryLockUpdate attempts to take the update lock without blocking.
func (s *SharedMutex) TryLockUpdate() bool {
	if !s.ex.TryLock() {
		return false
	}
	s.sw.Add(1)
	return true
}

// LockUpdate takes the update lock, which conflicts with other Update
// or Exclusive holders but coexists with Shared holders.
func (s *SharedMutex) LockUpdate() {
	s.ex.Lock()
	s.sw.Add(1)
}

// UnlockUpdate releases the update lock.
func (s *SharedMutex) UnlockUpdate() {
	s.sw.Add(^uint32(0))
	s.ex.Unlock()
}

// TryLock attempts to take the exclusive lock without blocking.
func (s *SharedMutex) TryLock() bool {
	if !s.ex.TryLock() {
		return false
	}
	if s.sw.CompareAndSwap(0, shuX) {
		return true
	}
	s.ex.Unlock()
	return false
}

// Lock takes the exclusive lock, first serializing on ex and then
// draining any shared holders that were already in progress. The order
// matters: ex must be acquired before sw is inspected, or a concurrent
// LockUpdate could slip in between the two steps.
func (s *SharedMutex) Lock() {
	s.ex.Lock()
	if old := s.sw.Or(shuX); old != 0 {
		s.drainToExclusive()
	}
}

// drainToExclusive parks until the last pre-existing shared holder has
// released, i.e. until sw reads back as exactly shuX.
func (s *SharedMutex) drainToExclusive() {
	for s.sw.Load() != shuX {
		s.sema.Acquire()
	}
}

// Unlock releases the exclusive lock. No wake on sw is necessary: any
// waiting exclusive requester was parked inside its own ex.Lock call,
// and any shared waiter is retrying inside its own ex.Lock/ex.Unlock
// pair, not parked on sw.
func (s *SharedMutex) Unlock() {
	s.sw.Store(0)
	s.ex.Unlock()
}

// UpgradeToExclusive converts a held update lock into an exclusive
// lock. The caller must already hold the update lock (and must not
// hold it recursively through RecursiveSharedMutex semantics).
func (s *SharedMutex) UpgradeToExclusive() {
	newVal := s.sw.Add(shuX - 1)
	if old := newVal - (shuX - 1); old != 1 {
		s.drainToExclusive()
	}
}

// DowngradeToUpdate converts a held exclusive lock into an update
// lock. Shared waiters blocked inside their ex.Lock retry remain
// blocked until UnlockUpdate releases ex.
func (s *SharedMutex) DowngradeToUpdate() {
	s.sw.Store(1)
}

// IsHeld reports whether the exclusive lock is currently held.
// Advisory only.
func (s *SharedMutex) IsHeld() bool {
	return s.sw.Load() == shuX
}

// IsContended reports whether any lock (shared, update, or exclusive)
// is held or requested. Advisory only.
func (s *SharedMutex) IsContended() bool {
	return s.sw.Load() != 0 || s.ex.IsContended()
}
