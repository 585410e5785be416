package mangle

import (
	"fmt"
	"math"
	"math/rand"

	"mangle/pkg/audio"
)

// Context carries everything one hit hands to an operation: the stream, the
// already-chosen channel and region, the nominal block size, and the RNG and
// selector for operations that need extra randomness (second regions,
// angles, cut counts).
type Context struct {
	Stream    *audio.Stream
	Channel   int
	Region    Region
	BlockSize int
	Rng       *rand.Rand
	Selector  *Selector
}

// channel returns the chosen channel's samples.
func (c *Context) channel() []int16 {
	return c.Stream.Channels[c.Channel]
}

// secondRegion draws the pairing region for the operations that work on two
// regions of one channel. Its length follows the block-size hint, capped at
// the hit region's length so the pair stays equal.
func (c *Context) secondRegion() (Region, error) {
	size := c.BlockSize
	if size <= 0 || size > c.Region.Len() {
		size = c.Region.Len()
	}
	return c.Selector.Pick(len(c.channel()), size)
}

// OpFunc applies one operation variant to the hit described by ctx.
type OpFunc func(ctx *Context) error

// Operation is one entry of the catalog: a named variant and its relative
// selection weight. A weight of zero takes an even share of whatever
// probability mass the explicit weights leave behind.
type Operation struct {
	Name   string
	Weight float64
	Apply  OpFunc
}

// Compose chains operations into a pipeline applied in order to the same
// hit. The first failure stops the chain.
func Compose(ops ...OpFunc) OpFunc {
	return func(ctx *Context) error {
		for _, op := range ops {
			if err := op(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// AllChannels lifts a single-channel operation to every channel of the
// stream, applied at the same region.
func AllChannels(op OpFunc) OpFunc {
	return func(ctx *Context) error {
		for i := range ctx.Stream.Channels {
			sub := *ctx
			sub.Channel = i
			if err := op(&sub); err != nil {
				return err
			}
		}
		return nil
	}
}

// requireStereo guards the cross-channel variants.
func requireStereo(ctx *Context) error {
	if ctx.Stream.NumChannels() < 2 {
		return fmt.Errorf("%w: %d-channel stream, stereo operation needs 2", ErrInvalidConfig, ctx.Stream.NumChannels())
	}
	return nil
}

func opSwap(ctx *Context) error {
	b, err := ctx.secondRegion()
	if err != nil {
		return err
	}
	Swap(ctx.channel(), ctx.Region, b)
	return nil
}

func opInvert(ctx *Context) error {
	Invert(ctx.channel(), ctx.Region)
	return nil
}

func opReverse(ctx *Context) error {
	Reverse(ctx.channel(), ctx.Region)
	return nil
}

func opDup(ctx *Context) error {
	b, err := ctx.secondRegion()
	if err != nil {
		return err
	}
	Dup(ctx.channel(), ctx.Region, b)
	return nil
}

func opConvolve(ctx *Context) error {
	k := kernels[ctx.Rng.Intn(len(kernels))]
	Convolve(ctx.channel(), ctx.Region, k.Taps)
	return nil
}

func opStutter(ctx *Context) error {
	cuts := 1 + ctx.Rng.Intn(5)
	return Stutter(ctx.channel(), ctx.Region, cuts)
}

func opFrameSmear(ctx *Context) error {
	FrameSmear(ctx.channel(), ctx.Region)
	return nil
}

func opRotate(ctx *Context) error {
	return Rotate(ctx.channel(), ctx.Region, ctx.Rng.Float64()*2*math.Pi)
}

func opSpin(ctx *Context) error {
	return Spin(ctx.channel(), ctx.Region, ctx.Rng.Float64()*2*math.Pi)
}

func opMerge(ctx *Context) error {
	b, err := ctx.secondRegion()
	if err != nil {
		return err
	}
	Merge(ctx.channel(), ctx.Region, b, ctx.Rng.Float64())
	return nil
}

func opFlipStereo(ctx *Context) error {
	if err := requireStereo(ctx); err != nil {
		return err
	}
	FlipStereo(ctx.Stream.Channels[0], ctx.Stream.Channels[1], ctx.Region)
	return nil
}

func opInterleaveStereo(ctx *Context) error {
	if err := requireStereo(ctx); err != nil {
		return err
	}
	InterleaveStereo(ctx.Stream.Channels[0], ctx.Stream.Channels[1], ctx.Region)
	return nil
}

func opExpand(ctx *Context) error {
	return Expand(ctx.channel(), ctx.Region)
}

func opBlur(ctx *Context) error {
	Convolve(ctx.channel(), ctx.Region, kernels[0].Taps)
	return nil
}

// Catalog returns the fixed, ordered operation table. The list is built
// fresh per call so callers can attach weight overrides without touching
// shared state.
func Catalog() []Operation {
	return []Operation{
		{Name: "swap", Apply: opSwap},
		{Name: "invert", Apply: opInvert},
		{Name: "reverse", Apply: opReverse},
		{Name: "dup", Apply: opDup},
		{Name: "convolve", Apply: opConvolve},
		{Name: "stutter", Apply: opStutter},
		{Name: "framesmear", Apply: opFrameSmear},
		{Name: "rotate", Apply: opRotate},
		{Name: "spin", Apply: opSpin},
		{Name: "merge", Apply: opMerge},
		{Name: "flipstereo", Apply: opFlipStereo},
		{Name: "interleavestereo", Apply: opInterleaveStereo},
		{Name: "expand", Apply: opExpand},
		{Name: "stutterflip", Apply: Compose(opStutter, opReverse)},
		{Name: "smearreverse", Apply: Compose(opReverse, opBlur, opReverse)},
		{Name: "dupflip", Apply: Compose(opDup, opReverse)},
	}
}
