package sux

import "sync/atomic"

// RecursiveSharedMutex wraps SharedMutex with owner tracking and nested
// acquisition counts for the Update and Exclusive modes. Shared
// acquisitions are never recursive and must not be issued by a
// goroutine that already holds Update or Exclusive.
//
// The zero value is an unlocked RecursiveSharedMutex. A
// RecursiveSharedMutex must not be copied after first use.
type RecursiveSharedMutex struct {
	_ noCopy
	s SharedMutex

	// recursive packs U_count*2^16 + X_count. Protected by s: only the
	// current Update/Exclusive owner ever reads or writes it.
	recursive uint32

	// writer holds the goroutine id of the current Update/Exclusive
	// owner, or recursiveNoOwner. It is written under s (or by
	// SetWriter) but read without it by the re-entry checks of the
	// Lock*/TryLock* methods and by the Have* observers, so it is
	// atomic independent of recursive.
	writer atomic.Int64
}

const (
	recursiveUMult   = uint32(1) << 16
	recursiveMax     = recursiveUMult - 1
	recursiveNoOwner = int64(0)
)

func (r *RecursiveSharedMutex) writerRecurse(update bool) {
	if update {
		r.recursive += recursiveUMult
	} else {
		r.recursive++
	}
}

// TryLockShared attempts a non-recursive shared hold.
func (r *RecursiveSharedMutex) TryLockShared() bool { return r.s.TryLockShared() }

// LockShared takes a non-recursive shared hold. The calling goroutine
// must not already hold Update or Exclusive.
func (r *RecursiveSharedMutex) LockShared() { r.s.LockShared() }

// UnlockShared releases a shared hold taken via LockShared.
func (r *RecursiveSharedMutex) UnlockShared() { r.s.UnlockShared() }

// TryLockUpdate attempts to take (or recursively re-enter) the update
// lock without blocking.
func (r *RecursiveSharedMutex) TryLockUpdate() bool {
	id := goroutineID()
	if r.writer.Load() == id {
		r.writerRecurse(true)
		return true
	}
	if !r.s.TryLockUpdate() {
		return false
	}
	r.recursive = recursiveUMult
	r.writer.Store(id)
	return true
}

// LockUpdate takes the update lock, or recursively re-enters it if the
// calling goroutine already owns it (as Update or Exclusive).
func (r *RecursiveSharedMutex) LockUpdate() {
	id := goroutineID()
	if r.writer.Load() == id {
		r.writerRecurse(true)
		return
	}
	r.s.LockUpdate()
	r.recursive = recursiveUMult
	r.writer.Store(id)
}

// TryLockUpdateDisowned attempts to take the update lock without
// blocking and without recording an owner, for a lock that will later
// be claimed by another goroutine via SetWriter. The calling goroutine
// must not already be the writer.
func (r *RecursiveSharedMutex) TryLockUpdateDisowned() bool {
	if !r.s.TryLockUpdate() {
		return false
	}
	r.recursive = recursiveUMult
	return true
}

// LockUpdateDisowned takes the update lock without recording an owner.
// A later SetWriter call completes the transfer.
func (r *RecursiveSharedMutex) LockUpdateDisowned() {
	r.s.LockUpdate()
	r.recursive = recursiveUMult
}

// TryLock attempts to take (or recursively re-enter) the exclusive
// lock without blocking.
func (r *RecursiveSharedMutex) TryLock() bool {
	id := goroutineID()
	if r.writer.Load() == id {
		r.writerRecurse(false)
		return true
	}
	if !r.s.TryLock() {
		return false
	}
	r.recursive = 1
	r.writer.Store(id)
	return true
}

// LockExclusive takes the exclusive lock, or recursively re-enters it
// if the calling goroutine already owns it.
func (r *RecursiveSharedMutex) LockExclusive() {
	id := goroutineID()
	if r.writer.Load() == id {
		r.writerRecurse(false)
		return
	}
	r.s.Lock()
	r.recursive = 1
	r.writer.Store(id)
}

// LockExclusiveDisowned takes the exclusive lock without recording an
// owner, for the ultimate owner to claim later via SetWriter. The
// calling goroutine must not already be the writer.
func (r *RecursiveSharedMutex) LockExclusiveDisowned() {
	r.s.Lock()
	r.recursive = 1
}

// LockExclusiveUpgraded acquires the exclusive lock, upgrading in
// place if the calling goroutine already holds only the update lock,
// recursing if it already holds exclusive, and acquiring fresh
// otherwise. It reports whether an in-place upgrade was performed.
func (r *RecursiveSharedMutex) LockExclusiveUpgraded() bool {
	id := goroutineID()
	if r.writer.Load() == id {
		if r.recursive&recursiveMax == 0 {
			r.UpgradeToExclusive()
			return true
		}
		r.writerRecurse(false)
		return false
	}
	r.s.Lock()
	r.recursive = 1
	r.writer.Store(id)
	return false
}

// UpgradeToExclusive converts the calling goroutine's held update lock
// into an exclusive lock. The caller must be the writer, holding
// Update and not already holding Exclusive.
func (r *RecursiveSharedMutex) UpgradeToExclusive() {
	r.s.UpgradeToExclusive()
	r.recursive /= recursiveUMult
}

// DowngradeToUpdate converts a single held exclusive lock into an
// update lock. The caller must hold exactly one exclusive lock and no
// recursive update locks.
func (r *RecursiveSharedMutex) DowngradeToUpdate() {
	r.s.DowngradeToUpdate()
	r.recursive *= recursiveUMult
}

// SetWriter transfers ownership of a currently-held Update or
// Exclusive lock to the goroutine identified by id, without touching
// the lock itself. It is how a disowned acquisition is claimed, and
// how ownership moves between goroutines mid-hold (e.g. handing a lock
// off to a callback running on another goroutine).
func (r *RecursiveSharedMutex) SetWriter(id int64) {
	r.writer.Store(id)
}

func (r *RecursiveSharedMutex) unlock(update bool) {
	if update {
		r.recursive -= recursiveUMult
	} else {
		r.recursive--
	}
	if r.recursive != 0 {
		return
	}
	r.writer.Store(recursiveNoOwner)
	if update {
		r.s.UnlockUpdate()
	} else {
		r.s.Unlock()
	}
}

// UnlockUpdate releases one level of update-lock recursion, releasing
// the underlying SharedMutex's update lock once the count reaches
// zero. It may be called with the writer disowned, provided the
// recursion count matches exactly one acquisition.
func (r *RecursiveSharedMutex) UnlockUpdate() { r.unlock(true) }

// UnlockExclusive releases one level of exclusive-lock recursion,
// releasing the underlying SharedMutex's exclusive lock once the count
// reaches zero. It may be called with the writer disowned, provided
// the recursion count matches exactly one acquisition.
func (r *RecursiveSharedMutex) UnlockExclusive() { r.unlock(false) }

func (r *RecursiveSharedMutex) isWriter() bool {
	return r.writer.Load() == goroutineID()
}

// HaveUpdateOrExclusive reports whether the calling goroutine is the
// current Update or Exclusive owner.
func (r *RecursiveSharedMutex) HaveUpdateOrExclusive() bool { return r.isWriter() }

// HaveUpdate reports whether the calling goroutine holds Update but
// not Exclusive.
func (r *RecursiveSharedMutex) HaveUpdate() bool {
	return r.isWriter() && r.recursive&recursiveMax == 0
}

// HaveExclusive reports whether the calling goroutine holds Exclusive
// (possibly in addition to a since-upgraded Update hold).
func (r *RecursiveSharedMutex) HaveExclusive() bool {
	return r.isWriter() && r.recursive&recursiveMax != 0
}
