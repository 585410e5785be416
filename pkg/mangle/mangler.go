package mangle

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"mangle/internal/logger"
	"mangle/pkg/audio"
)

// maxHitRetries bounds how often a single hit is redrawn after a numeric
// failure before the run gives up.
const maxHitRetries = 8

// Options configures a mangle run.
type Options struct {
	// BlockSize is the nominal region length in samples. Zero means one
	// second of audio at the stream's sample rate.
	BlockSize int
	// Seed seeds the run's RNG. Zero means time-derived.
	Seed int64
	// Weights overrides selection weights per operation name.
	Weights map[string]float64
	// RetryFailedHits redraws a hit that fails on a numeric edge case
	// instead of aborting the run.
	RetryFailedHits bool
	// Logger receives per-hit debug output. Optional.
	Logger *logger.Logger
}

// Mangler owns a stream for the duration of one run and applies randomly
// chosen, randomly placed operations to it in place.
type Mangler struct {
	stream    *audio.Stream
	blockSize int
	rng       *rand.Rand
	selector  *Selector
	sampler   *Sampler
	retry     bool
	log       *logger.Logger
}

// New builds a mangler over the stream. The stream must have at least one
// non-empty channel; the catalog and sampler are rebuilt fresh per mangler.
func New(stream *audio.Stream, opts Options) (*Mangler, error) {
	if stream == nil || stream.NumChannels() == 0 || stream.Len() == 0 {
		return nil, fmt.Errorf("%w: empty stream", ErrInvalidConfig)
	}

	blockSize := opts.BlockSize
	if blockSize == 0 {
		blockSize = stream.SampleRate
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidConfig, blockSize)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sampler, err := NewSampler(Catalog(), opts.Weights)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewLogger("error")
	}

	return &Mangler{
		stream:    stream,
		blockSize: blockSize,
		rng:       rng,
		selector:  NewSelector(rng),
		sampler:   sampler,
		retry:     opts.RetryFailedHits,
		log:       log,
	}, nil
}

// BlockSize reports the resolved nominal region length.
func (m *Mangler) BlockSize() int {
	return m.blockSize
}

// Run applies exactly numHits hits to the stream, sequentially. Each hit
// picks a channel, a region and an operation at random and applies the
// operation in place; a hit never observes another hit half-applied.
func (m *Mangler) Run(numHits int) error {
	if numHits < 0 {
		return fmt.Errorf("%w: %d hits", ErrInvalidConfig, numHits)
	}
	if m.stream.Len()-m.blockSize <= 0 {
		return fmt.Errorf("%w: block size %d with only %d samples per channel",
			ErrInvalidConfig, m.blockSize, m.stream.Len())
	}

	for i := 0; i < numHits; i++ {
		if err := m.hitWithRetry(i); err != nil {
			return err
		}
	}
	return nil
}

// hitWithRetry applies one hit, redrawing on numeric instability when the
// retry policy is on. Any other failure aborts immediately.
func (m *Mangler) hitWithRetry(n int) error {
	for attempt := 0; ; attempt++ {
		err := m.hit(n)
		if err == nil {
			return nil
		}
		if !m.retry || !errors.Is(err, ErrNumericInstability) {
			return fmt.Errorf("hit %d failed: %w", n, err)
		}
		if attempt >= maxHitRetries {
			return fmt.Errorf("hit %d failed after %d retries: %w", n, attempt, err)
		}
		m.log.Warnf("hit %d: %v, redrawing", n, err)
	}
}

// hit is one atomic application: channel, region, operation, apply.
func (m *Mangler) hit(n int) error {
	channel := m.rng.Intn(m.stream.NumChannels())
	region, err := m.selector.Pick(m.stream.Len(), m.blockSize)
	if err != nil {
		return err
	}
	op := m.sampler.Draw(m.rng.Float64())

	m.log.Debugf("hit %d: %s on channel %d %s", n, op.Name, channel, region)

	return op.Apply(&Context{
		Stream:    m.stream,
		Channel:   channel,
		Region:    region,
		BlockSize: m.blockSize,
		Rng:       m.rng,
		Selector:  m.selector,
	})
}

// NumHits derives the hit count for a stream from a rate setting: hits per
// second when hps is positive, hits per minute otherwise. The result is
// floored.
func NumHits(hpm, hps, channelLength, sampleRate int) int {
	if sampleRate <= 0 {
		return 0
	}
	if hps > 0 {
		return hps * channelLength / sampleRate
	}
	return hpm * channelLength / (sampleRate * 60)
}
