package env

import (
	xrand "golang.org/x/exp/rand"
)

// Source is the randomness the engine consumes. Intn returns a uniform
// value in [0, n). Both *math/rand.Rand and *golang.org/x/exp/rand.Rand
// satisfy it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded PCG-backed source.
func NewSource(seed uint64) Source {
	return xrand.New(xrand.NewSource(seed))
}
