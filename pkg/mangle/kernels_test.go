package mangle

import (
	"math"
	"testing"
)

func TestKernelPresets(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range Kernels() {
		if len(k.Taps) == 0 {
			t.Errorf("%s has no taps", k.Name)
		}
		if seen[k.Name] {
			t.Errorf("duplicate kernel %s", k.Name)
		}
		seen[k.Name] = true
	}
	for _, name := range []string{"blur", "soft", "sharpen", "edge", "edge1", "neighborhood", "ramp"} {
		if !seen[name] {
			t.Errorf("missing kernel %s", name)
		}
	}
}

func TestSmoothingKernelsSumToOne(t *testing.T) {
	for _, k := range Kernels() {
		if k.Name != "blur" && k.Name != "soft" {
			continue
		}
		sum := 0.0
		for _, tap := range k.Taps {
			sum += tap
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("%s taps sum to %g, want 1.0", k.Name, sum)
		}
	}
}
