package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateBatchNumber produces a batch identifier of the form
// BATCH-YYYYMMDD-NNNN with a random 4-digit suffix. Collisions are possible;
// callers must check uniqueness and retry.
func GenerateBatchNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to read random suffix: %w", err)
	}
	return fmt.Sprintf("BATCH-%s-%04d", now.Format("20060102"), n.Int64()), nil
}
