package mangle

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Frequency-domain transforms. Every function here round-trips the region
// through an FFT and reduces the complex result back to integer samples by
// taking the real component and rounding; the imaginary residue is discarded
// on purpose. gonum's inverse transforms are unnormalized, so the round trip
// divides by the region length.

// magnitudeEpsilon is the cutoff below which a coefficient is treated as
// having no meaningful angle. atan2 is unstable that close to the origin, so
// such coefficients pass through unrotated.
const magnitudeEpsilon = 1e-9

// Rotate transforms the region to the frequency domain, rotates every
// coefficient by deflection radians in polar form, and transforms back.
// A deflection of zero is an identity up to rounding.
func Rotate(ch []int16, r Region, deflection float64) error {
	return rotate(ch, r, func(i, n int) float64 { return deflection })
}

// Spin is Rotate with a phase ramp: the deflection grows linearly with the
// coefficient index, sweeping from zero up to the full angle across the
// region's spectrum.
func Spin(ch []int16, r Region, deflection float64) error {
	return rotate(ch, r, func(i, n int) float64 {
		return deflection * float64(i) / float64(n)
	})
}

func rotate(ch []int16, r Region, angleAt func(i, n int) float64) error {
	n := r.Len()
	if n <= 0 {
		return fmt.Errorf("%w: empty spectral region %s", ErrNumericInstability, r)
	}

	seq := make([]complex128, n)
	for i := 0; i < n; i++ {
		seq[i] = complex(float64(ch[r.Start+i]), 0)
	}

	fft := fourier.NewCmplxFFT(n)
	coeff := fft.Coefficients(nil, seq)
	for i, c := range coeff {
		mag, ang := cmplx.Polar(c)
		if mag < magnitudeEpsilon {
			continue
		}
		coeff[i] = cmplx.Rect(mag, ang+angleAt(i, n))
	}
	inv := fft.Sequence(nil, coeff)

	scale := 1 / float64(n)
	for i := 0; i < n; i++ {
		ch[r.Start+i] = clampSample(int(math.Round(real(inv[i]) * scale)))
	}
	return nil
}

// Expand computes the mean spectral coefficient over the region and doubles
// every coefficient's deviation from that mean before transforming back,
// a naive contrast expansion of the spectrum.
func Expand(ch []int16, r Region) error {
	n := r.Len()
	if n <= 0 {
		return fmt.Errorf("%w: empty spectral region %s", ErrNumericInstability, r)
	}

	seq := make([]float64, n)
	for i := 0; i < n; i++ {
		seq[i] = float64(ch[r.Start+i])
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, seq)

	var mean complex128
	for _, c := range coeff {
		mean += c
	}
	mean /= complex(float64(len(coeff)), 0)

	for i, c := range coeff {
		coeff[i] = c + (c - mean)
	}
	inv := fft.Sequence(nil, coeff)

	scale := 1 / float64(n)
	for i := 0; i < n; i++ {
		ch[r.Start+i] = clampSample(int(math.Round(inv[i] * scale)))
	}
	return nil
}
