package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// SecureRandomInt returns a uniformly distributed integer in [min, max].
func SecureRandomInt(min, max int64) (int64, error) {
	if max < min {
		return 0, fmt.Errorf("invalid range [%d, %d]", min, max)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, fmt.Errorf("failed to read random number: %w", err)
	}
	return min + n.Int64(), nil
}
