package core

import "math/rand"

// Sampler is the per-invocation source of random numbers passed down through
// scatter/light-sampling calls (4.A). It is deliberately narrow — Get1D and
// Get2D are all the BSDF and light code need — so that the wavefront driver
// can reseed it once per shading step without threads sharing state.
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
}

// RNG is a per-invocation deterministic sampler. Its seed is derived from
// (iteration, pathIndex, depth) so that re-seeding per shading step lets the
// scheduler reorder work across pixels and bounces without changing the
// result for a fixed seed triple (§4.A, §8.1).
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a sampler from the per-invocation hash. Re-used across many
// shading calls per iteration, each with a different (pathIndex, depth).
func NewRNG(iteration, pathIndex, depth int) *RNG {
	return &RNG{r: rand.New(rand.NewSource(hashSeed(iteration, pathIndex, depth)))}
}

// NewRNGFromSeed wraps an explicit seed; the tests use it for fixed,
// repeatable sample streams.
func NewRNGFromSeed(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

func (s *RNG) Get1D() float64            { return s.r.Float64() }
func (s *RNG) Get2D() (float64, float64) { return s.r.Float64(), s.r.Float64() }

// Rand exposes the underlying *rand.Rand for callers (light/env sampling
// code in the pack's pattern) that want Intn or NormFloat64 directly.
func (s *RNG) Rand() *rand.Rand { return s.r }

// hashSeed combines (iteration, pathIndex, depth) into a single 64-bit seed
// using a splitmix64-style avalanche. Any reasonable mixing hash works here;
// what matters is that equal triples produce equal seeds and unequal triples
// produce decorrelated ones (§8.1 determinism, §4.A).
func hashSeed(iteration, pathIndex, depth int) int64 {
	x := uint64(iteration)*0x9E3779B97F4A7C15 + uint64(pathIndex)*0xBF58476D1CE4E5B9 + uint64(depth)*0x94D049BB133111EB
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x &^ (1 << 63)) // keep non-negative for rand.NewSource
}
