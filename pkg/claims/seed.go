package claims

import (
	"math/rand/v2"
	"strconv"
)

// Seed is an optional seed for the claims stream. The zero Seed is unseeded;
// SeedOf(0) is a real, reproducible seed.
type Seed struct {
	value uint64
	set   bool
}

// NoSeed requests a fresh stream from runtime entropy.
func NoSeed() Seed { return Seed{} }

// SeedOf requests a reproducible stream.
func SeedOf(v uint64) Seed { return Seed{value: v, set: true} }

// Value reports the seed and whether one was set.
func (s Seed) Value() (uint64, bool) { return s.value, s.set }

// IsSet reports whether the stream is reproducible.
func (s Seed) IsSet() bool { return s.set }

// Derive returns the seed for the n-th stream of a run. Unseeded stays unseeded.
func (s Seed) Derive(n uint64) Seed {
	if !s.set {
		return s
	}
	// splitmix64 step so neighbouring periods get unrelated streams
	z := s.value + (n+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return SeedOf(z ^ (z >> 31))
}

func (s Seed) String() string {
	if !s.set {
		return "none"
	}
	return strconv.FormatUint(s.value, 10)
}

// NewSource returns the random source for a seed.
func NewSource(s Seed) rand.Source {
	if v, ok := s.Value(); ok {
		return rand.NewPCG(v, v^0xda3e39cb94b95bdb)
	}
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}
