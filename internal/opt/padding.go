//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !sux_disable_padding && !sux_enable_padding

package opt

// PadBytes_ is the number of trailing padding bytes LockGroup/RWLockGroup
// shards carry after their payload to keep neighboring shards off the
// same cache line. It is 0 by default on architectures where hardware
// prefetch and store-buffer behavior make padding less valuable relative
// to its memory cost: amd64, the smaller-cache-line 32-bit targets
// (386, arm, mips, mipsle), and wasm.
//
// The sux_enable_padding / sux_disable_padding build tags override the
// per-architecture default in either direction.
const PadBytes_ = 0
