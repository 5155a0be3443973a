package sux

import (
	"sync"
	"testing"
)

func TestLockGroup_ShardCountRoundsUpToPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 16: 16, 17: 32}
	for n, want := range cases {
		g := NewLockGroup[string](n)
		if got := g.ShardCount(); got != want {
			t.Errorf("NewLockGroup(%d).ShardCount() = %d, want %d", n, got, want)
		}
	}
}

func TestLockGroup_MutualExclusionPerKey(t *testing.T) {
	g := NewLockGroup[string](8)
	counters := map[string]*int{"a": new(int), "b": new(int), "c": new(int)}

	const iterations = 2000
	var wg sync.WaitGroup
	for k, counter := range counters {
		wg.Add(2)
		for range 2 {
			go func(k string, counter *int) {
				defer wg.Done()
				for range iterations {
					g.Lock(k)
					*counter++
					g.Unlock(k)
				}
			}(k, counter)
		}
	}
	wg.Wait()

	for k, counter := range counters {
		if *counter != iterations*2 {
			t.Errorf("counter for %q = %d, want %d", k, *counter, iterations*2)
		}
	}
}

func TestRWLockGroup_SharedAndExclusivePerKey(t *testing.T) {
	g := NewRWLockGroup[int](4)
	var value int

	const readers = 6
	const writers = 2
	const iterations = 300

	var wg sync.WaitGroup
	wg.Add(readers + writers)
	for range readers {
		go func() {
			defer wg.Done()
			for range iterations {
				g.RLock(0)
				_ = value
				g.RUnlock(0)
			}
		}()
	}
	for range writers {
		go func() {
			defer wg.Done()
			for range iterations {
				g.Lock(0)
				value++
				g.Unlock(0)
			}
		}()
	}
	wg.Wait()

	if value != writers*iterations {
		t.Fatalf("value = %d, want %d", value, writers*iterations)
	}
}
