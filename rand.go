package main

import "math/rand/v2"

// RandSource supplies entropy for RND(x). Uint32 reports ok=false when no
// entropy is available, letting (*Interp).rnd freeze on the last draw --
// spec.md section 6's "entropy unavailable" edge case.
type RandSource interface {
	Uint32() (uint32, bool)
}

// defaultRand wraps math/rand/v2, which never runs out of entropy.
type defaultRand struct{}

func (defaultRand) Uint32() (uint32, bool) { return rand.Uint32(), true }
