package sux

import (
	"hash/maphash"

	"github.com/sux-go/sux/internal/opt"
)

// LockGroup is a fixed-size array of Mutex shards selected by hashing a
// caller-supplied key. It serves the same purpose as the teacher
// package's map-backed TicketLockGroup/RWLockGroup -- many independent
// per-key locks without allocating a lock object per key -- but trades
// "infinite keys, auto-cleanup" for a fixed memory footprint and no
// per-acquisition map traffic: good for a fixed or slowly-varying key
// space, such as per-bucket locks in a hash table.
//
// The zero value is not usable; construct with NewLockGroup.
type LockGroup[K comparable] struct {
	_      noCopy
	seed   maphash.Seed
	shards []lockGroupShard
}

type lockGroupShard struct {
	mu Mutex
	_  [opt.PadBytes_]byte
}

// NewLockGroup creates a LockGroup with at least n shards, rounded up
// to the next power of two so shard selection can mask instead of
// dividing.
func NewLockGroup[K comparable](n int) *LockGroup[K] {
	return &LockGroup[K]{
		seed:   maphash.MakeSeed(),
		shards: make([]lockGroupShard, shardCount(n)),
	}
}

func shardCount(n int) int {
	if n < 1 {
		n = 1
	}
	c := 1
	for c < n {
		c <<= 1
	}
	return c
}

func (g *LockGroup[K]) shard(k K) *lockGroupShard {
	h := maphash.Comparable(g.seed, k)
	return &g.shards[h&uint64(len(g.shards)-1)]
}

// Lock acquires the shard that k hashes to.
func (g *LockGroup[K]) Lock(k K) { g.shard(k).mu.Lock() }

// TryLock attempts to acquire the shard that k hashes to, without
// blocking.
func (g *LockGroup[K]) TryLock(k K) bool { return g.shard(k).mu.TryLock() }

// Unlock releases the shard that k hashes to.
func (g *LockGroup[K]) Unlock(k K) { g.shard(k).mu.Unlock() }

// ShardCount reports the number of shards backing the group.
func (g *LockGroup[K]) ShardCount() int { return len(g.shards) }

// RWLockGroup is LockGroup's shared/update/exclusive counterpart: a
// fixed array of SharedMutex shards selected by hashing a key.
//
// The zero value is not usable; construct with NewRWLockGroup.
type RWLockGroup[K comparable] struct {
	_      noCopy
	seed   maphash.Seed
	shards []rwLockGroupShard
}

type rwLockGroupShard struct {
	mu SharedMutex
	_  [opt.PadBytes_]byte
}

// NewRWLockGroup creates an RWLockGroup with at least n shards,
// rounded up to the next power of two.
func NewRWLockGroup[K comparable](n int) *RWLockGroup[K] {
	return &RWLockGroup[K]{
		seed:   maphash.MakeSeed(),
		shards: make([]rwLockGroupShard, shardCount(n)),
	}
}

func (g *RWLockGroup[K]) shard(k K) *rwLockGroupShard {
	h := maphash.Comparable(g.seed, k)
	return &g.shards[h&uint64(len(g.shards)-1)]
}

// Lock takes the exclusive lock on the shard that k hashes to.
func (g *RWLockGroup[K]) Lock(k K) { g.shard(k).mu.Lock() }

// Unlock releases the exclusive lock on the shard that k hashes to.
func (g *RWLockGroup[K]) Unlock(k K) { g.shard(k).mu.Unlock() }

// RLock takes a shared lock on the shard that k hashes to.
func (g *RWLockGroup[K]) RLock(k K) { g.shard(k).mu.LockShared() }

// RUnlock releases a shared lock on the shard that k hashes to.
func (g *RWLockGroup[K]) RUnlock(k K) { g.shard(k).mu.UnlockShared() }

// ULock takes the update lock on the shard that k hashes to.
func (g *RWLockGroup[K]) ULock(k K) { g.shard(k).mu.LockUpdate() }

// UUnlock releases the update lock on the shard that k hashes to.
func (g *RWLockGroup[K]) UUnlock(k K) { g.shard(k).mu.UnlockUpdate() }

// ShardCount reports the number of shards backing the group.
func (g *RWLockGroup[K]) ShardCount() int { return len(g.shards) }
