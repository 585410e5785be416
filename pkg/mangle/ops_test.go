package mangle

import "testing"

// ramp returns a channel of n samples 0..n-1.
func ramp(n int) []int16 {
	ch := make([]int16, n)
	for i := range ch {
		ch[i] = int16(i)
	}
	return ch
}

func checkPrefix(t *testing.T, got []int16, want []int16) {
	t.Helper()
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("sample %d = %d, want %d (prefix %v)", i, got[i], w, got[:len(want)])
		}
	}
}

func TestSwapChain(t *testing.T) {
	ch := ramp(100)
	Swap(ch, Region{0, 4}, Region{4, 8})
	Swap(ch, Region{0, 2}, Region{2, 4})
	checkPrefix(t, ch, []int16{6, 7, 4, 5, 0, 1, 2, 3, 8})
}

func TestSwapSelfInverse(t *testing.T) {
	ch := ramp(100)
	orig := make([]int16, len(ch))
	copy(orig, ch)

	a, b := Region{10, 20}, Region{50, 60}
	Swap(ch, a, b)
	Swap(ch, a, b)
	for i := range ch {
		if ch[i] != orig[i] {
			t.Fatalf("sample %d = %d after double swap, want %d", i, ch[i], orig[i])
		}
	}
}

func TestInvert(t *testing.T) {
	ch := ramp(100)
	Invert(ch, Region{0, 4})
	checkPrefix(t, ch, []int16{0, -1, -2, -3})
	if ch[4] != 4 {
		t.Errorf("sample outside region changed: %d", ch[4])
	}
}

func TestInvertClampsMinimum(t *testing.T) {
	ch := []int16{-32768, 0}
	Invert(ch, Region{0, 2})
	if ch[0] != 32767 {
		t.Errorf("negated -32768 = %d, want 32767", ch[0])
	}
}

func TestReverse(t *testing.T) {
	ch := ramp(100)
	Reverse(ch, Region{0, 4})
	checkPrefix(t, ch, []int16{3, 2, 1, 0, 4})
}

func TestReverseSelfInverse(t *testing.T) {
	ch := ramp(100)
	Reverse(ch, Region{17, 53})
	Reverse(ch, Region{17, 53})
	for i := range ch {
		if ch[i] != int16(i) {
			t.Fatalf("sample %d = %d after double reverse, want %d", i, ch[i], i)
		}
	}
}

func TestDup(t *testing.T) {
	ch := ramp(100)
	Dup(ch, Region{0, 4}, Region{4, 8})
	checkPrefix(t, ch, []int16{0, 1, 2, 3, 0, 1, 2, 3, 8})
}

func TestStutter(t *testing.T) {
	ch := ramp(100)
	if err := Stutter(ch, Region{0, 4}, 4); err != nil {
		t.Fatal(err)
	}
	checkPrefix(t, ch, []int16{0, 0, 0, 0, 4})
}

func TestStutterPreservesLength(t *testing.T) {
	for cuts := 1; cuts <= 5; cuts++ {
		ch := ramp(100)
		if err := Stutter(ch, Region{10, 33}, cuts); err != nil {
			t.Fatalf("cuts=%d: %v", cuts, err)
		}
		// Samples outside the region must be untouched whatever the cut
		// count does to the fragment size.
		if ch[9] != 9 || ch[33] != 33 {
			t.Errorf("cuts=%d: boundary samples %d,%d", cuts, ch[9], ch[33])
		}
	}
}

func TestStutterEmptyFragment(t *testing.T) {
	ch := ramp(100)
	err := Stutter(ch, Region{0, 4}, 9)
	if err == nil {
		t.Fatal("expected an error for a zero-sized fragment")
	}
}

func TestFrameSmear(t *testing.T) {
	ch := ramp(100)
	FrameSmear(ch, Region{0, 4})
	checkPrefix(t, ch, []int16{0, 0, 1, 1, 4})
}

func TestMerge(t *testing.T) {
	ch := ramp(100)
	Merge(ch, Region{0, 4}, Region{4, 8}, 0.75)
	checkPrefix(t, ch, []int16{3, 4, 6, 8})
}

func TestMergeOverlappingRegions(t *testing.T) {
	ch := ramp(100)
	// Region b trails region a by two samples. Every add must use b's
	// value from before the merge started, not one a's writes produced.
	Merge(ch, Region{2, 6}, Region{0, 4}, 1.0)
	checkPrefix(t, ch, []int16{0, 1, 2, 4, 6, 8, 6, 7})
}

func TestMergeUnequalRegionsStopAtShorter(t *testing.T) {
	ch := ramp(100)
	Merge(ch, Region{10, 20}, Region{50, 53}, 1.0)
	checkPrefix(t, ch[10:], []int16{60, 62, 64, 13, 14})
}

func TestMergeClamps(t *testing.T) {
	ch := []int16{32000, 32000, 32000, 32000}
	Merge(ch, Region{0, 2}, Region{2, 4}, 1.0)
	if ch[0] != 32767 || ch[1] != 32767 {
		t.Errorf("merge did not clamp: %v", ch[:2])
	}
}

func TestFlipStereo(t *testing.T) {
	ch0 := ramp(100)
	ch1 := []int16{10, 9, 8, 7}
	ch1 = append(ch1, ramp(96)...)

	FlipStereo(ch0, ch1, Region{0, 4})
	checkPrefix(t, ch0, []int16{10, 9, 8, 7})
	checkPrefix(t, ch1, []int16{0, 1, 2, 3})
}

func TestInterleaveStereo(t *testing.T) {
	ch0 := ramp(100)
	ch1 := []int16{10, 9, 8, 7}
	ch1 = append(ch1, ramp(96)...)

	InterleaveStereo(ch0, ch1, Region{0, 4})
	checkPrefix(t, ch0, []int16{10, 1, 8, 3})
	checkPrefix(t, ch1, []int16{0, 9, 2, 7})
}

func TestConvolveIdentityKernel(t *testing.T) {
	ch := ramp(100)
	Convolve(ch, Region{5, 20}, []float64{0, 1, 0})
	for i := range ch {
		if ch[i] != int16(i) {
			t.Fatalf("identity kernel changed sample %d to %d", i, ch[i])
		}
	}
}

func TestConvolveZeroPadsBoundary(t *testing.T) {
	ch := []int16{5, 1, 1, 1, 1, 5}
	Convolve(ch, Region{1, 5}, []float64{1, 1, 1})
	// Region is all ones; taps outside the region read as zero, so the
	// edges only see two of the three taps.
	want := []int16{5, 2, 3, 3, 2, 5}
	for i := range want {
		if ch[i] != want[i] {
			t.Fatalf("sample %d = %d, want %d (%v)", i, ch[i], want[i], ch)
		}
	}
}

func TestConvolveKernelLongerThanRegion(t *testing.T) {
	ch := ramp(100)
	Convolve(ch, Region{10, 14}, flat(25, 0.04))
	if ch[9] != 9 || ch[14] != 14 {
		t.Errorf("samples outside region changed: %d %d", ch[9], ch[14])
	}
}
