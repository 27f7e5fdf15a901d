// Package dsp holds the short-time analysis primitives shared by the
// feature extractor: windowing, STFT and a few scalar statistics
package dsp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// Analysis frame geometry at 16 kHz: 25 ms windows every 10 ms
const (
	WindowSize = 400
	HopSize    = 160
	FFTSize    = 512
)

// NumBins is the number of non-redundant spectrum bins per frame
const NumBins = FFTSize/2 + 1

// Hamming returns an n-point Hamming window
func Hamming(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// NumFrames reports how many full analysis frames fit in n samples
func NumFrames(n int) int {
	if n < WindowSize {
		return 0
	}
	return (n-WindowSize)/HopSize + 1
}

// Spectrogram computes per-frame magnitude and phase spectra. Frames are
// Hamming windowed and zero padded to FFTSize. Both outputs are
// [frames][NumBins]
func Spectrogram(samples []float64) (mag, phase [][]float64) {
	frames := NumFrames(len(samples))
	mag = make([][]float64, frames)
	phase = make([][]float64, frames)
	if frames == 0 {
		return mag, phase
	}

	win := Hamming(WindowSize)
	fft := fourier.NewFFT(FFTSize)
	buf := make([]float64, FFTSize)
	coeff := make([]complex128, NumBins)

	for f := 0; f < frames; f++ {
		off := f * HopSize
		for i := 0; i < WindowSize; i++ {
			buf[i] = samples[off+i] * win[i]
		}
		for i := WindowSize; i < FFTSize; i++ {
			buf[i] = 0
		}
		coeff = fft.Coefficients(coeff, buf)

		m := make([]float64, NumBins)
		p := make([]float64, NumBins)
		for i, c := range coeff {
			m[i] = cmplxAbs(c)
			p[i] = cmplxPhase(c)
		}
		mag[f] = m
		phase[f] = p
	}
	return mag, phase
}

func cmplxAbs(c complex128) float64   { return math.Hypot(real(c), imag(c)) }
func cmplxPhase(c complex128) float64 { return math.Atan2(imag(c), real(c)) }

// Mean returns the arithmetic mean, or 0 for empty input
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// PopStdDev returns the population standard deviation, or 0 for fewer
// than two values
func PopStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := stat.Mean(xs, nil)
	return math.Sqrt(stat.MomentAbout(2, xs, m, nil))
}

// CV returns the coefficient of variation (population stddev over mean).
// A zero or near-zero mean yields 0 to avoid blowing up the ratio
func CV(xs []float64) float64 {
	m := Mean(xs)
	if math.Abs(m) < 1e-12 {
		return 0
	}
	return PopStdDev(xs) / math.Abs(m)
}

// GeoMean returns the geometric mean computed in the log domain.
// Non-positive values are floored at eps to keep the log finite
func GeoMean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	const eps = 1e-12
	sum := 0.0
	for _, x := range xs {
		if x < eps {
			x = eps
		}
		sum += math.Log(x)
	}
	return math.Exp(sum / float64(len(xs)))
}

// Median returns the middle value of xs without mutating it
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, xs)
	sort.Float64s(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}

// Clamp01 pins x into [0, 1]
func Clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

// Quantile returns the q-th quantile of xs using gonum's empirical
// estimator over a sorted copy
func Quantile(q float64, xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, xs)
	sort.Float64s(cp)
	return stat.Quantile(q, stat.Empirical, cp, nil)
}
