package mangle

import (
	"fmt"
	"math"
)

// Sampler draws operations from the catalog by inverse-CDF sampling over a
// cumulative probability partition. Built once, immutable afterwards; each
// draw is independent.
type Sampler struct {
	thresholds []float64
	ops        []Operation
	weights    []float64
}

// NewSampler builds the cumulative partition for a catalog. Overrides map
// operation names to explicit weights; every override is subtracted from a
// total mass of 1.0 and the remainder is split evenly across the entries
// without one, in catalog order. Overrides that meet or exceed the whole
// mass simply starve the remaining entries; that is allowed. Negative or
// non-finite weights, or an override for a name the catalog does not have,
// fail the build.
func NewSampler(catalog []Operation, overrides map[string]float64) (*Sampler, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: empty catalog", ErrDegenerateWeights)
	}

	known := make(map[string]bool, len(catalog))
	for _, op := range catalog {
		known[op.Name] = true
	}
	for name, w := range overrides {
		if !known[name] {
			return nil, fmt.Errorf("%w: weight override for unknown operation %q", ErrInvalidConfig, name)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %g for %q", ErrDegenerateWeights, w, name)
		}
	}

	// Resolve each entry's weight: explicit override, the entry's own
	// weight, or a default share of whatever mass is left.
	explicit := make([]float64, len(catalog))
	hasExplicit := make([]bool, len(catalog))
	mass := 1.0
	defaults := 0
	for i, op := range catalog {
		w, ok := overrides[op.Name]
		if !ok && op.Weight > 0 {
			w, ok = op.Weight, true
		}
		if ok {
			if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("%w: weight %g for %q", ErrDegenerateWeights, w, op.Name)
			}
			explicit[i] = w
			hasExplicit[i] = true
			mass -= w
		} else {
			defaults++
		}
	}
	if mass < 0 {
		mass = 0
	}
	share := 0.0
	if defaults > 0 {
		share = mass / float64(defaults)
	}

	// Partition construction order: explicitly weighted entries first, then
	// the default-share entries, both in catalog order.
	s := &Sampler{
		thresholds: make([]float64, 0, len(catalog)),
		ops:        make([]Operation, 0, len(catalog)),
		weights:    make([]float64, 0, len(catalog)),
	}
	cum := 0.0
	push := func(op Operation, w float64) {
		cum += w
		s.thresholds = append(s.thresholds, cum)
		s.ops = append(s.ops, op)
		s.weights = append(s.weights, w)
	}
	for i, op := range catalog {
		if hasExplicit[i] {
			push(op, explicit[i])
		}
	}
	for i, op := range catalog {
		if !hasExplicit[i] {
			push(op, share)
		}
	}
	if cum == 0 {
		return nil, fmt.Errorf("%w: all weights are zero", ErrDegenerateWeights)
	}
	return s, nil
}

// Draw maps a uniform value in [0,1) to an operation: the first entry whose
// cumulative threshold strictly exceeds the value wins. The final entry
// catches any value the partition misses through floating-point drift.
func (s *Sampler) Draw(v float64) Operation {
	for i, t := range s.thresholds {
		if t > v {
			return s.ops[i]
		}
	}
	return s.ops[len(s.ops)-1]
}

// Weights reports each catalog entry's resolved weight, in catalog order.
func (s *Sampler) Weights() map[string]float64 {
	out := make(map[string]float64, len(s.ops))
	for i, op := range s.ops {
		out[op.Name] = s.weights[i]
	}
	return out
}
