package mangle

// Kernel is a small 1-D convolution kernel preset.
type Kernel struct {
	Name string
	Taps []float64
}

// kernels are the fixed presets drawn on by the convolution operation.
// Order matters: the random kernel pick indexes this slice.
var kernels = []Kernel{
	{Name: "blur", Taps: flat(25, 0.04)},
	{Name: "soft", Taps: flat(200, 0.005)},
	{Name: "sharpen", Taps: []float64{-3, 7, -3}},
	{Name: "edge", Taps: []float64{-1, 2, -1}},
	{Name: "edge1", Taps: []float64{-1, -1, 4, -1, -1}},
	{Name: "neighborhood", Taps: []float64{1, 1, -4, 1, 1}},
	{Name: "ramp", Taps: []float64{1, 1, 1, 1, 1, 0, 0, 0, 0, -1, -1, -1, -1, -1}},
}

func flat(n int, v float64) []float64 {
	taps := make([]float64, n)
	for i := range taps {
		taps[i] = v
	}
	return taps
}

// Kernels returns the convolution presets in catalog order.
func Kernels() []Kernel {
	return kernels
}

// Convolve applies a centered 1-D kernel to the region with "same" output
// length. Taps that fall outside the region read as zero, so kernels longer
// than the region are allowed and simply lose most of their support.
func Convolve(ch []int16, r Region, taps []float64) {
	length := r.Len()
	center := len(taps) / 2
	out := make([]int16, length)
	for i := 0; i < length; i++ {
		acc := 0.0
		for j, t := range taps {
			k := i + j - center
			if k < 0 || k >= length {
				continue
			}
			acc += t * float64(ch[r.Start+k])
		}
		out[i] = clampSample(int(acc))
	}
	copy(ch[r.Start:r.End], out)
}
