package httpencode

import "unsafe"

// b2s converts a byte slice to a string without allocation.
// The returned string aliases b; b must not be modified while it is in use.
//
// Allocation behavior: 0 allocs/op
func b2s(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
