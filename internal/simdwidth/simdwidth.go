// Package simdwidth centralizes the "detect once, route every call through
// it" vector-width probe spec.md §9 describes for both the batched tree
// expander (spec.md §4.3) and the SIMD inner-product engine (spec.md §4.6).
// Actual build-time SIMD target selection is an explicit Non-goal (spec.md
// §1); this package only decides, at the Go level, how wide a lane-grouped
// code path should try to be, the same way SnellerInc-sneller's
// internal/aes and vm packages key their fast paths off golang.org/x/sys/cpu
// feature bits.
package simdwidth

import (
	"sync"

	"golang.org/x/sys/cpu"
)

var (
	once   sync.Once
	cached int
)

// Bytes returns the number of bytes the runtime's widest available vector
// register can hold, or 0 if nothing wider than a scalar word was detected.
// Per spec.md §9, callers must fall back to a scalar implementation whenever
// Bytes() < 16 or is not a multiple of 16.
func Bytes() int {
	once.Do(func() {
		cached = probe()
	})
	return cached
}

func probe() int {
	if cpu.X86.HasAVX512F {
		return 64
	}
	if cpu.X86.HasAVX2 {
		return 32
	}
	if cpu.X86.HasSSE2 {
		return 16
	}
	if cpu.ARM64.HasASIMD {
		return 16
	}
	return 0
}
