package sux

import (
	"runtime"
	"testing"
)

type alwaysElide struct{ commits int }

func (e *alwaysElide) Begin(held, contended bool) bool { return !held && !contended }
func (e *alwaysElide) Commit()                         { e.commits++ }

func TestElisionGuard_FallsBackByDefault(t *testing.T) {
	var m Mutex
	g := AcquireTransactional(&m)
	if g.WasElided() {
		t.Fatal("DefaultElider must never elide")
	}
	if !m.IsHeld() {
		t.Fatal("a non-elided acquisition must take the real lock")
	}
	g.Release()
	if m.IsHeld() {
		t.Fatal("Release must unlock a non-elided acquisition")
	}
}

func TestElisionGuard_ElidesWhenOffered(t *testing.T) {
	var m Mutex
	e := &alwaysElide{}
	g := AcquireTransactionalWith(e, &m)
	if !g.WasElided() {
		t.Fatal("custom Elider reporting success must elide")
	}
	if m.IsHeld() {
		t.Fatal("an elided acquisition must not take the real lock")
	}
	g.Release()
	if e.commits != 1 {
		t.Fatalf("commits = %d, want 1", e.commits)
	}
}

func TestElisionGuard_FallsBackUnderContention(t *testing.T) {
	var m Mutex
	m.Lock()
	e := &alwaysElide{}
	done := make(chan struct{})
	go func() {
		g := AcquireTransactionalWith(e, &m)
		if g.WasElided() {
			t.Error("must not elide while the lock is held")
		}
		g.Release()
		close(done)
	}()

	// Release m only once the goroutine has queued behind it (fallen
	// back to the real lock) or finished, so that its IsHeld snapshot is
	// taken while m is still held.
waiting:
	for m.w.Load() == mutexHolder|1 {
		select {
		case <-done:
			break waiting
		default:
			runtime.Gosched()
		}
	}
	m.Unlock()
	<-done
}

func TestElisionGuard_SharedAndUpdate(t *testing.T) {
	var s SharedMutex

	gs := AcquireTransactionalShared(&s)
	gs.Release()

	gu := AcquireTransactionalUpdate(&s)
	gu.Release()

	if s.IsHeld() {
		t.Fatal("SharedMutex must be vacant after both guards release")
	}
}
