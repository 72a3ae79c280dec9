// Copyright 2024 Factorial GmbH. All rights reserved.

// Package fnv64 implements the 64-bit FNV-1 hash in a streaming form.
//
// Note that this is FNV-1 (multiply, then XOR), not the more common
// FNV-1a variant. The digest is part of a routing contract: downstream
// systems recompute it independently, so it must match bit-for-bit.
package fnv64

const (
	// Init is the FNV-1 64-bit offset basis. Hashing an empty input
	// yields exactly this value.
	Init uint64 = 0xcbf29ce484222325

	// Prime is the FNV 64-bit prime.
	Prime uint64 = 0x100000001b3
)

// Sum returns the FNV-1 64-bit digest of buf.
func Sum(buf []byte) uint64 {
	return Continue(Init, buf)
}

// SumString returns the FNV-1 64-bit digest of s. It does not allocate.
func SumString(s string) uint64 {
	return ContinueString(Init, s)
}

// Continue folds buf into a previously computed digest. Continuing a
// digest over a second span gives the same result as hashing the
// concatenation of both spans in a single pass.
func Continue(hval uint64, buf []byte) uint64 {
	for _, b := range buf {
		hval *= Prime
		hval ^= uint64(b)
	}
	return hval
}

// ContinueString folds s into a previously computed digest.
func ContinueString(hval uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		hval *= Prime
		hval ^= uint64(s[i])
	}
	return hval
}
