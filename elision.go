package sux

import "github.com/sux-go/sux/internal/opt"

// Elider is the hardware-transactional-memory hook that
// AcquireTransactional* consults. A real implementation -- built on
// amd64 RTM (_xbegin/_xend/_xabort) or an equivalent ISA facility --
// would attempt to start a transaction and report whether the
// protected critical section is now running inside it instead of
// under the real lock.
//
// Per spec, hardware transactional memory elision is an interface
// contract, not something this package reimplements: Begin is never
// called from a build compiled with the race detector (elision and
// the race detector's shadow memory do not mix), and the bundled
// DefaultElider always declines, so every acquisition takes the real
// lock unless the caller plugs in a platform-specific Elider.
type Elider interface {
	// Begin attempts to start a transaction. held and contended are
	// the lock's own IsHeld/IsContended snapshots, taken before the
	// call, so an implementation can skip the attempt when the lock
	// already looks contended. Begin reports whether the critical
	// section is now running inside the transaction.
	Begin(held, contended bool) bool
	// Commit ends a transaction started by a Begin that returned true.
	Commit()
}

type noElider struct{}

func (noElider) Begin(bool, bool) bool { return false }
func (noElider) Commit()               {}

// DefaultElider never elides. It is the Elider used by
// AcquireTransactional* unless a *With variant is given one.
var DefaultElider Elider = noElider{}

// ElisionGuard is a scoped acquisition obtained from
// AcquireTransactional, AcquireTransactionalShared, or
// AcquireTransactionalUpdate. Calling Release ends the critical
// section, committing the transaction if the acquisition was elided or
// unlocking the real lock otherwise.
type ElisionGuard struct {
	elider  Elider
	elided  bool
	release func()
}

// Release ends the critical section started by the acquisition that
// produced g.
func (g *ElisionGuard) Release() {
	if g.elided {
		g.elider.Commit()
		return
	}
	g.release()
}

// WasElided reports whether the critical section ran inside a hardware
// transaction rather than under the real lock.
func (g *ElisionGuard) WasElided() bool { return g.elided }

func acquireElided(e Elider, held, contended bool, lock, unlock func()) *ElisionGuard {
	if !opt.Race_ && e.Begin(held, contended) {
		return &ElisionGuard{elider: e, elided: true}
	}
	lock()
	return &ElisionGuard{elider: e, release: unlock}
}

// AcquireTransactional acquires m, attempting elision via
// DefaultElider first.
func AcquireTransactional(m *Mutex) *ElisionGuard {
	return AcquireTransactionalWith(DefaultElider, m)
}

// AcquireTransactionalWith acquires m, attempting elision via e first.
func AcquireTransactionalWith(e Elider, m *Mutex) *ElisionGuard {
	return acquireElided(e, m.IsHeld(), m.IsContended(), m.Lock, m.Unlock)
}

// AcquireTransactionalShared takes a shared hold on s, attempting
// elision via DefaultElider first.
func AcquireTransactionalShared(s *SharedMutex) *ElisionGuard {
	return AcquireTransactionalSharedWith(DefaultElider, s)
}

// AcquireTransactionalSharedWith takes a shared hold on s, attempting
// elision via e first.
func AcquireTransactionalSharedWith(e Elider, s *SharedMutex) *ElisionGuard {
	return acquireElided(e, s.IsHeld(), s.IsContended(), s.LockShared, s.UnlockShared)
}

// AcquireTransactionalUpdate takes the update lock on s, attempting
// elision via DefaultElider first.
func AcquireTransactionalUpdate(s *SharedMutex) *ElisionGuard {
	return AcquireTransactionalUpdateWith(DefaultElider, s)
}

// AcquireTransactionalUpdateWith takes the update lock on s,
// attempting elision via e first.
func AcquireTransactionalUpdateWith(e Elider, s *SharedMutex) *ElisionGuard {
	return acquireElided(e, s.IsHeld(), s.IsContended(), s.LockUpdate, s.UnlockUpdate)
}
