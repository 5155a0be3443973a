// Package sux provides a small family of blocking synchronization
// primitives built on a lock-free state word and the Go runtime's
// per-address counting wait/wake primitive (the same one sync.Mutex,
// sync.RWMutex, and sync.WaitGroup are built on). They are no larger
// and in most cases faster than their standard-library counterparts, and
// support features the standard library does not: ownership transfer
// across goroutines, a three-mode shared/update/exclusive lock, an
// optional spin phase before parking, and a hook for hardware
// transactional-memory lock elision.
//
// Four primitives, in dependency order:
//
//   - Mutex: a non-recursive exclusive lock in one 32-bit state word
//     plus a 4-byte parking word (8 bytes total -- the same trade
//     sync.Mutex already makes, and for the identical reason).
//   - SharedMutex: a shared/update/exclusive lock composed of an
//     embedded Mutex and a second 32-bit word plus its own parking
//     word (16 bytes total).
//   - ConditionVariable: a condition variable usable with a Mutex, or
//     with a SharedMutex held in shared or update mode (8 bytes); it
//     has no wait for a SharedMutex held exclusively.
//   - RecursiveSharedMutex: a SharedMutex with owner tracking and
//     nested acquisition counts for Update and Exclusive (16 bytes
//     plus a 4-byte recursion counter and an 8-byte owner id).
//
// None of these types guarantee fairness or FIFO waiter ordering, none
// support timed or cancellable waits, and none detect deadlocks.
// Re-entering Mutex.Lock, or acquiring SharedMutex's Shared mode while
// already holding Update or Exclusive, is undefined behavior.
package sux
