package rng

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"absim/domain/core"
)

// PCGAdapter implements ports.RNGPort with PCG generators
type PCGAdapter struct{}

// NewPCGAdapter creates a new RNG adapter
func NewPCGAdapter() *PCGAdapter {
	return &PCGAdapter{}
}

// SeededStream creates a deterministic random number generator for a named
// operation. The name does not alter the stream: a sequential run must
// reproduce the same draws for a seed no matter what it is called.
func (a *PCGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return New(seed), nil
}

// Stream creates a deterministic sub-stream for (partition, index)
func (a *PCGAdapter) Stream(ctx context.Context, seed int64, partition string, index int) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, core.NewParameterError("stream index", fmt.Sprintf("must be >= 0, got %d", index))
	}
	return rand.New(rand.NewPCG(uint64(seed), streamKey(partition, index))), nil
}

// ValidateSeed draws len(expected) uniforms from the seeded stream and
// compares them bit for bit
func (a *PCGAdapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	r, err := a.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		got := r.Float64()
		if math.Float64bits(got) != math.Float64bits(want) {
			return fmt.Errorf("%w: %s draw %d = %v, expected %v", core.ErrNonDeterministic, name, i, got, want)
		}
	}
	return nil
}

// New returns the reference stream for a seed
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), referenceStream))
}

// referenceStream is the PCG stream selector of the sequential stream
const referenceStream = 0x9e3779b97f4a7c15

// streamKey mixes the partition name and index into a PCG stream selector
func streamKey(partition string, index int) uint64 {
	h := uint64(hashString(partition))
	return (h << 32) ^ uint64(index) ^ referenceStream
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
