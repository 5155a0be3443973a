//go:build !sux_cachelinesize_32 && !sux_cachelinesize_64 && !sux_cachelinesize_128 && !sux_cachelinesize_256

package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is used in structure padding to prevent false sharing.
// It's automatically calculated using the `golang.org/x/sys` package.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})
