package mangle

import (
	"fmt"
	"math/rand"
)

// Region is a half-open sample interval [Start, End) within one channel.
type Region struct {
	Start int
	End   int
}

// Len returns the number of samples the region covers.
func (r Region) Len() int {
	return r.End - r.Start
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Selector draws random regions of a fixed block length out of a channel.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector drawing from the given source.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Pick returns a random region of blockSize samples that fits entirely
// inside a channel of channelLength samples. The block must be strictly
// shorter than the channel, otherwise no start offset is valid.
func (s *Selector) Pick(channelLength, blockSize int) (Region, error) {
	if blockSize <= 0 {
		return Region{}, fmt.Errorf("%w: block size %d", ErrInvalidConfig, blockSize)
	}
	if blockSize >= channelLength {
		return Region{}, fmt.Errorf("%w: block size %d, channel length %d", ErrOutOfBounds, blockSize, channelLength)
	}
	start := s.rng.Intn(channelLength - blockSize)
	return Region{Start: start, End: start + blockSize}, nil
}
