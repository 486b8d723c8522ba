package treeexpand

import "dpfpir/internal/simdwidth"

// laneWidth reports the number of bytes the runtime's widest available
// vector register can hold, following the "detect once, route every call
// through it" dispatch model of spec.md §9 ("Dynamic SIMD dispatch"). A
// width below 16 bytes (or the probe finding nothing it recognizes) routes
// every call back to ExpandScalar.
func laneWidth() int {
	return simdwidth.Bytes()
}
