// Package ecptest generates random test fixtures for the ecp package's
// own tests, mirroring the teacher's internal/golden test-helper
// package: every generator takes an explicit *rand.Rand so test runs
// stay reproducible under a pinned seed.
package ecptest

import "math/rand/v2"

// Dataset returns n random descriptors of dimension dim, each
// component drawn uniformly from [-scale, scale].
func Dataset(prng *rand.Rand, n, dim int, scale float32) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = Descriptor(prng, dim, scale)
	}
	return out
}

// Descriptor returns one random descriptor of dimension dim.
func Descriptor(prng *rand.Rand, dim int, scale float32) []float32 {
	d := make([]float32, dim)
	for i := range d {
		d[i] = (prng.Float32()*2 - 1) * scale
	}
	return d
}
