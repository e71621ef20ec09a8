// Package atombits has flag helpers for state words shared
// between goroutines.
package atombits

import "sync/atomic"

type T = atomic.Uint32

func IsSet(bits *T, flag uint32) bool {
	return bits.Load()&flag != 0
}

// Set turns flag on without losing concurrent updates
// of the other bits.
func Set(bits *T, flag uint32) {
	bits.Or(flag)
}

// Swap turns flag on and reports whether it was already on.
func Swap(bits *T, flag uint32) bool {
	return bits.Or(flag)&flag != 0
}
