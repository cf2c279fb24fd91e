// Package random provides shuffle primitives backed by a cryptographically
// secure random source. Winner selection must not be predictable, so the
// general-purpose math/rand generator is deliberately not used here.
package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Intn returns a uniformly distributed random integer in [0, n).
// It returns an error if n is not positive or the random source fails.
func Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("random: n must be positive, got %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("random: failed to read random source: %w", err)
	}
	return int(v.Int64()), nil
}

// Shuffle performs an unbiased Fisher-Yates shuffle over n elements,
// calling swap(i, j) for each exchange. Every permutation is equally likely.
func Shuffle(n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := Intn(i + 1)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}

// Perm returns a uniformly random permutation of the integers [0, n).
func Perm(n int) ([]int, error) {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	if err := Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] }); err != nil {
		return nil, err
	}
	return p, nil
}
