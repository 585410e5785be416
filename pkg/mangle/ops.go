package mangle

import (
	"fmt"

	"mangle/internal/util"
)

// The functions in this file are the time-domain transforms of the catalog.
// Each mutates its channel strictly inside the declared region(s) and never
// looks at samples outside them. Randomized placement lives in catalog.go;
// these stay deterministic so their edge cases can be pinned down exactly.

// clampSample forces a value into the signed 16-bit sample range.
func clampSample(v int) int16 {
	return int16(util.ClampInt(v, -32768, 32767))
}

// Swap exchanges two equal-length regions of one channel.
func Swap(ch []int16, a, b Region) {
	tmp := make([]int16, a.Len())
	copy(tmp, ch[a.Start:a.End])
	copy(ch[a.Start:a.End], ch[b.Start:b.End])
	copy(ch[b.Start:b.End], tmp)
}

// Invert negates every sample in the region.
func Invert(ch []int16, r Region) {
	for i := r.Start; i < r.End; i++ {
		ch[i] = clampSample(-int(ch[i]))
	}
}

// Reverse reverses the sample order within the region.
func Reverse(ch []int16, r Region) {
	for i, j := r.Start, r.End-1; i < j; i, j = i+1, j-1 {
		ch[i], ch[j] = ch[j], ch[i]
	}
}

// Dup overwrites region b with the contents of region a.
func Dup(ch []int16, a, b Region) {
	tmp := make([]int16, a.Len())
	copy(tmp, ch[a.Start:a.End])
	copy(ch[b.Start:b.End], tmp)
}

// Stutter extracts the leading fragment of the region (region length divided
// by cuts, rounded) and tiles it across the region, truncating the final
// repetition to the original length.
func Stutter(ch []int16, r Region, cuts int) error {
	length := r.Len()
	if cuts <= 0 {
		return fmt.Errorf("%w: stutter with %d cuts", ErrNumericInstability, cuts)
	}
	size := int(float64(length)/float64(cuts) + 0.5)
	if size == 0 {
		return fmt.Errorf("%w: stutter fragment is empty (%d samples / %d cuts)", ErrNumericInstability, length, cuts)
	}
	fragment := make([]int16, size)
	copy(fragment, ch[r.Start:r.Start+size])
	for i := 0; i < length; i++ {
		ch[r.Start+i] = fragment[i%size]
	}
	return nil
}

// FrameSmear replaces each sample with the running average of all samples
// seen so far within the region, blurring the region forward.
func FrameSmear(ch []int16, r Region) {
	total, count := 0, 0
	for i := r.Start; i < r.End; i++ {
		total += int(ch[i])
		count++
		ch[i] = clampSample(total / count)
	}
}

// Merge scales region b by ratio and adds it into region a, clamping to the
// sample range. The fractional product truncates toward zero. Region b is
// snapshotted first, so overlapping regions always add b's pre-merge values.
func Merge(ch []int16, a, b Region, ratio float64) {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	src := make([]int16, n)
	copy(src, ch[b.Start:b.Start+n])
	for i := 0; i < n; i++ {
		add := int(float64(src[i]) * ratio)
		ch[a.Start+i] = clampSample(int(ch[a.Start+i]) + add)
	}
}

// FlipStereo swaps the region between two channels wholesale.
func FlipStereo(ch0, ch1 []int16, r Region) {
	for i := r.Start; i < r.End; i++ {
		ch0[i], ch1[i] = ch1[i], ch0[i]
	}
}

// InterleaveStereo swaps the channels on even-indexed samples of the region
// and leaves odd-indexed samples in place.
func InterleaveStereo(ch0, ch1 []int16, r Region) {
	for i := 0; i < r.Len(); i += 2 {
		ch0[r.Start+i], ch1[r.Start+i] = ch1[r.Start+i], ch0[r.Start+i]
	}
}
