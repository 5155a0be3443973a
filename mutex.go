package sux

import (
	"sync/atomic"

	"github.com/sux-go/sux/internal/opt"
)

// Mutex is a non-recursive exclusive lock packed into a single 32-bit
// word plus a parking word, 8 bytes in all (the same size as
// sync.Mutex), and exposes the contention predicates ElisionGuard needs.
//
// The zero value is an unlocked Mutex. A Mutex must not be copied after
// first use.
//
// Bit layout of the state word:
//
//	bit 31:    holder  (1 = a goroutine holds the lock)
//	bits 0-30: waiters  (count of acquisitions in flight, including the
//	           holder itself if the lock is held)
//
// Re-locking from the goroutine that already holds the Mutex is
// undefined behavior; it is not detected.
type Mutex struct {
	_    noCopy
	w    atomic.Uint32
	sema opt.Sema
}

// mutexHolder is bit 31; the remaining bits count waiters, including
// the holder itself if the lock is held.
const mutexHolder = uint32(1) << 31

// TryLock attempts to acquire the Mutex without blocking.
// It reports whether the acquisition succeeded.
func (m *Mutex) TryLock() bool {
	return m.w.CompareAndSwap(0, mutexHolder|1)
}

// Lock acquires the Mutex, blocking until it is available.
func (m *Mutex) Lock() {
	if m.TryLock() {
		return
	}
	m.parkUntilHolder(m.w.Add(1))
}

// SpinLock is Lock, but spins up to n times before parking on the first
// contended attempt. Each spin round polls the state word and, if the
// holder bit is clear, immediately tries to take it; the pause between
// polls uses the runtime's own active-spin primitive so the backoff is
// ISA-appropriate without per-architecture assembly.
func (m *Mutex) SpinLock(n int) {
	if m.TryLock() {
		return
	}
	lk := m.w.Add(1)
	for i := 0; i < n; i++ {
		if lk&mutexHolder == 0 {
			if old := m.w.Or(mutexHolder); old&mutexHolder == 0 {
				return
			}
		}
		opt.DoSpin()
		lk = m.w.Load()
	}
	m.parkUntilHolder(lk)
}

// parkUntilHolder finishes acquisition given a state word already
// incremented for this goroutine's waiter slot. The holder bit is taken
// with Or, Go's portable equivalent of fetch_or (and of a single locked
// BTS on amd64, which Go's compiler cannot emit inline); whichever
// goroutine observes the bit was clear before its own Or wins.
func (m *Mutex) parkUntilHolder(lk uint32) {
	for {
		if lk&mutexHolder != 0 {
			m.sema.Acquire()
			lk = m.w.Load()
			continue
		}
		if old := m.w.Or(mutexHolder); old&mutexHolder == 0 {
			return
		}
		lk = m.w.Load()
	}
}

// Unlock releases the Mutex. It must be called by the goroutine holding
// the lock (or, per ownership-transfer use, by whichever goroutine is
// acting as the current holder).
//
// Unlock performs exactly one RMW on the fast path and calls into the
// runtime's wake primitive only when the state word shows a waiter
// remains, keeping the uncontended path syscall-free.
func (m *Mutex) Unlock() {
	if remaining := m.w.Add(^((mutexHolder | 1) - 1)); remaining != 0 {
		m.sema.Release()
	}
}

// IsHeld reports whether the Mutex is currently held. It is advisory
// only: by the time the caller observes the result, the state may have
// already changed. It exists so ElisionGuard can decide whether a
// transactional attempt is likely to succeed.
func (m *Mutex) IsHeld() bool {
	return m.w.Load()&mutexHolder != 0
}

// IsContended reports whether the Mutex is held or has waiters. Like
// IsHeld, this is advisory only and must never be used for
// synchronization.
func (m *Mutex) IsContended() bool {
	return m.w.Load() != 0
}
