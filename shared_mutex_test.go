package sux

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSharedMutex_Basic(t *testing.T) {
	var s SharedMutex
	if s.IsHeld() {
		t.Fatal("zero-value SharedMutex must not be exclusively held")
	}

	if !s.TryLockShared() {
		t.Fatal("TryLockShared on free lock must succeed")
	}
	if !s.TryLockShared() {
		t.Fatal("a second TryLockShared must also succeed")
	}
	s.UnlockShared()
	s.UnlockShared()

	if !s.TryLock() {
		t.Fatal("TryLock on free lock must succeed")
	}
	if s.TryLockShared() {
		t.Fatal("TryLockShared must fail while exclusive is held")
	}
	s.Unlock()
}

// T2: shared-first, then exclusive. 10 reader goroutines hold the
// shared lock and bump a private counter while asserting no exclusive
// holder is active; 2 writer goroutines toggle a shared bool under the
// exclusive lock.
func TestSharedMutex_SharedAndExclusive(t *testing.T) {
	var s SharedMutex
	var critical bool
	const readers = 10
	const readerIterations = 1000
	const writers = 2
	const writerIterations = 1000

	counters := make([]int, readers)

	var wg sync.WaitGroup
	wg.Add(readers + writers)

	for i := range readers {
		go func(i int) {
			defer wg.Done()
			for range readerIterations {
				s.LockShared()
				if critical {
					t.Error("reader observed critical == true")
				}
				counters[i]++
				s.UnlockShared()
			}
		}(i)
	}

	for range writers {
		go func() {
			defer wg.Done()
			for range writerIterations {
				s.Lock()
				critical = true
				critical = false
				s.Unlock()
			}
		}()
	}

	wg.Wait()

	for i, c := range counters {
		if c != readerIterations {
			t.Fatalf("reader %d counter = %d, want %d", i, c, readerIterations)
		}
	}
}

// T3: update-then-upgrade. Thread A holds the update lock while B and
// C repeatedly take shared locks; A then upgrades to exclusive, writes,
// downgrades, and releases. No reader must ever observe the write.
func TestSharedMutex_UpgradeDowngrade(t *testing.T) {
	var s SharedMutex
	var critical atomic.Int32
	const sharedIterations = 100

	var readersDone sync.WaitGroup
	readersDone.Add(2)
	for range 2 {
		go func() {
			defer readersDone.Done()
			for range sharedIterations {
				s.LockShared()
				if critical.Load() == 1 {
					t.Error("reader observed critical == 1")
				}
				s.UnlockShared()
			}
		}()
	}

	s.LockUpdate()
	s.UpgradeToExclusive()
	critical.Store(1)
	critical.Store(0)
	s.DowngradeToUpdate()
	s.UnlockUpdate()

	readersDone.Wait()
}

func TestSharedMutex_ExclusiveBlocksArrival(t *testing.T) {
	var s SharedMutex
	s.Lock()

	done := make(chan struct{})
	go func() {
		s.LockShared()
		close(done)
		s.UnlockShared()
	}()

	select {
	case <-done:
		t.Fatal("LockShared returned while exclusive was held")
	default:
	}

	s.Unlock()
	<-done
}
