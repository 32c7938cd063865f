// Package reservoir draws unique indices from [0, n) uniformly at
// random, independent of any domain-specific node or point type so it
// can be shared by bulk build, reclustering, and root growth alike.
package reservoir

import (
	"errors"
	"math/rand/v2"

	"github.com/bits-and-blooms/bitset"
)

// ErrInvalidK is returned when k is out of [0, n].
var ErrInvalidK = errors.New("reservoir: k out of range [0, n]")

// UniqueIndices returns k distinct indices drawn uniformly without
// replacement from [0, n), using the streaming selection-sampling pass:
// for j from n-k to n-1, draw t in [0, j] uniformly and keep t unless
// it was already chosen, in which case keep j instead. This runs in
// O(k) and is deterministic given prng's state, so tests can pin it
// seed-for-seed.
func UniqueIndices(prng *rand.Rand, n, k int) ([]int, error) {
	if k < 0 || k > n {
		return nil, ErrInvalidK
	}
	if k == 0 {
		return nil, nil
	}

	chosen := bitset.New(uint(n))
	out := make([]int, 0, k)

	for j := n - k; j < n; j++ {
		t := prng.IntN(j + 1)
		if !chosen.Test(uint(t)) {
			chosen.Set(uint(t))
			out = append(out, t)
		} else {
			chosen.Set(uint(j))
			out = append(out, j)
		}
	}
	return out, nil
}

// One returns a single index drawn uniformly from [0, n).
func One(prng *rand.Rand, n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidK
	}
	return prng.IntN(n), nil
}
