//go:build (!(amd64 || 386 || arm || mips || mipsle || wasm) && !sux_disable_padding) || (sux_enable_padding && !sux_disable_padding)

package opt

// PadBytes_ enabled: either the architecture defaults to padding
// (arm64, s390x, ppc64, ppc64le, riscv64, loong64, mips64, mips64le,
// and others with larger or less forgiving cache-line behavior), or the
// sux_enable_padding build tag forced it on.
const PadBytes_ = CacheLineSize_
