package ports

import (
	"context"
	"math/rand/v2"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates the single shared stream used by a sequential run
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates an independent deterministic sub-stream for one unit of
	// a partitioned run. The same (seed, partition, index) always yields the
	// same stream, regardless of which goroutine asks for it.
	Stream(ctx context.Context, seed int64, partition string, index int) (*rand.Rand, error)

	// ValidateSeed ensures the seed produces expected deterministic results
	ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error
}
