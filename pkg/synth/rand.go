// Package synth generates the deterministic vocabulary and word streams used
// by the synthetic benchmark workload.
//
// The generator is mulberry32: a 32-bit state advanced by a constant and
// mixed with multiply/xor-shift steps. Every operation wraps modulo 2^32, so
// the sequence for a seed is identical on every platform and in any language
// that reproduces the same steps.
package synth

// Rand is a mulberry32 generator. The zero value is a valid generator seeded
// with 0. It is not safe for concurrent use.
type Rand struct {
	state uint32
}

// New returns a generator for seed.
func New(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Uint32 returns the next raw 32-bit output.
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// Intn returns floor(Float64() * n), a value in [0, n). n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// Between returns a value in [lo, hi], consuming one draw.
func (r *Rand) Between(lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}
