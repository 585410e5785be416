package mangle

import (
	"errors"
	"math/rand"
	"testing"

	"mangle/pkg/audio"
)

// rampStream builds a stereo stream whose channels both count 0..n-1.
func rampStream(n, rate int) *audio.Stream {
	s := audio.NewStream(2, n, rate)
	for ch := range s.Channels {
		copy(s.Channels[ch], ramp(n))
	}
	return s
}

func testContext(s *audio.Stream, r Region) *Context {
	rng := rand.New(rand.NewSource(7))
	return &Context{
		Stream:    s,
		Channel:   0,
		Region:    r,
		BlockSize: r.Len(),
		Rng:       rng,
		Selector:  NewSelector(rng),
	}
}

func TestCatalogNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, op := range Catalog() {
		if op.Apply == nil {
			t.Errorf("%s has no apply function", op.Name)
		}
		if seen[op.Name] {
			t.Errorf("duplicate catalog entry %s", op.Name)
		}
		seen[op.Name] = true
	}
}

func TestEveryCatalogEntryApplies(t *testing.T) {
	for _, op := range Catalog() {
		s := rampStream(1000, 100)
		ctx := testContext(s, Region{100, 200})
		if err := op.Apply(ctx); err != nil {
			t.Errorf("%s: %v", op.Name, err)
		}
		if s.Len() != 1000 || s.NumChannels() != 2 {
			t.Errorf("%s changed the stream shape", op.Name)
		}
	}
}

func TestSecondRegionFollowsBlockHint(t *testing.T) {
	s := rampStream(1000, 100)
	ctx := testContext(s, Region{100, 200})

	ctx.BlockSize = 25
	for i := 0; i < 50; i++ {
		r, err := ctx.secondRegion()
		if err != nil {
			t.Fatal(err)
		}
		if r.Len() != 25 {
			t.Fatalf("paired region length %d, want the block hint 25", r.Len())
		}
	}

	// Hints longer than the hit region (or absent) fall back to its length.
	for _, hint := range []int{0, 500} {
		ctx.BlockSize = hint
		r, err := ctx.secondRegion()
		if err != nil {
			t.Fatal(err)
		}
		if r.Len() != ctx.Region.Len() {
			t.Fatalf("hint %d: paired region length %d, want %d", hint, r.Len(), ctx.Region.Len())
		}
	}
}

func TestAllChannelsDecorator(t *testing.T) {
	s := rampStream(100, 100)
	ctx := testContext(s, Region{0, 4})

	if err := AllChannels(opInvert)(ctx); err != nil {
		t.Fatal(err)
	}
	for ch := 0; ch < 2; ch++ {
		want := []int16{0, -1, -2, -3, 4}
		for i, w := range want {
			if s.Channels[ch][i] != w {
				t.Fatalf("channel %d sample %d = %d, want %d", ch, i, s.Channels[ch][i], w)
			}
		}
	}
}

func TestComposeAppliesInOrder(t *testing.T) {
	s := rampStream(100, 100)
	ctx := testContext(s, Region{0, 4})

	// Invert then reverse is not reverse then invert; pin the order down.
	if err := Compose(opInvert, opReverse)(ctx); err != nil {
		t.Fatal(err)
	}
	want := []int16{-3, -2, -1, 0, 4}
	for i, w := range want {
		if s.Channels[0][i] != w {
			t.Fatalf("sample %d = %d, want %d", i, s.Channels[0][i], w)
		}
	}
}

func TestComposeStopsOnError(t *testing.T) {
	s := rampStream(100, 100)
	ctx := testContext(s, Region{10, 10})

	failing := func(ctx *Context) error { return Rotate(ctx.channel(), ctx.Region, 0) }
	called := false
	probe := func(ctx *Context) error { called = true; return nil }

	if err := Compose(failing, probe)(ctx); err == nil {
		t.Fatal("expected composed pipeline to fail")
	}
	if called {
		t.Error("pipeline kept running after a failure")
	}
}

func TestStereoOperationsRejectMono(t *testing.T) {
	s := audio.NewStream(1, 100, 100)
	ctx := testContext(s, Region{0, 4})

	for _, op := range []OpFunc{opFlipStereo, opInterleaveStereo} {
		if err := op(ctx); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("got %v, want ErrInvalidConfig", err)
		}
	}
}
