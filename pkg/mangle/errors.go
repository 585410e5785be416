package mangle

import "errors"

// Error kinds surfaced by the mangling engine. Callers discriminate with
// errors.Is; everything else coming out of this package wraps one of these
// or is a plain I/O style failure from a collaborator.
var (
	// ErrOutOfBounds means a requested block does not fit inside the
	// channel, so no valid region exists.
	ErrOutOfBounds = errors.New("block does not fit channel")

	// ErrInvalidConfig means the mangler was asked to run with parameters
	// that can never produce a hit (block size too large, bad hit count,
	// unknown operation name).
	ErrInvalidConfig = errors.New("invalid mangle configuration")

	// ErrDegenerateWeights means the sampler was built from negative or
	// otherwise malformed weights.
	ErrDegenerateWeights = errors.New("degenerate operation weights")

	// ErrNumericInstability means a single hit failed on a degenerate
	// numeric case (zero-length spectral region, zero-sized stutter cut).
	// Depending on policy the hit is retried or the run aborts.
	ErrNumericInstability = errors.New("numeric instability")
)
