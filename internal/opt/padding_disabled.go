//go:build sux_disable_padding

package opt

// PadBytes_ forced to zero via the sux_disable_padding build tag,
// overriding the architecture default.
const PadBytes_ = 0
