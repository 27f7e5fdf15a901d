package feature

import (
	"math"

	"voicejury/internal/core/dsp"
)

// hzToMel uses the HTK mel scale
func hzToMel(hz float64) float64 { return 2595 * math.Log10(1+hz/700) }

// melToHz inverts hzToMel
func melToHz(mel float64) float64 { return 700 * (math.Pow(10, mel/2595) - 1) }

// filterbank holds triangular mel filters over the STFT bins
type filterbank struct {
	weights [][]float64 // [NumMels][dsp.NumBins]
}

// melFilterbank builds numMels triangular filters spanning 0 Hz to
// Nyquist on the mel scale
func melFilterbank(numMels, rate int) *filterbank {
	nyquist := float64(rate) / 2
	melMax := hzToMel(nyquist)

	// numMels+2 points: filter m spans points m-1 .. m+1
	points := make([]float64, numMels+2)
	for i := range points {
		points[i] = melToHz(melMax * float64(i) / float64(numMels+1))
	}

	binHz := float64(rate) / float64(dsp.FFTSize)
	fb := &filterbank{weights: make([][]float64, numMels)}
	for m := 0; m < numMels; m++ {
		lo, mid, hi := points[m], points[m+1], points[m+2]
		w := make([]float64, dsp.NumBins)
		for b := 0; b < dsp.NumBins; b++ {
			f := float64(b) * binHz
			switch {
			case f <= lo || f >= hi:
				// outside the triangle
			case f <= mid:
				w[b] = (f - lo) / (mid - lo)
			default:
				w[b] = (hi - f) / (hi - mid)
			}
		}
		fb.weights[m] = w
	}
	return fb
}

// apply returns the log mel energies of one magnitude frame
func (fb *filterbank) apply(mag []float64) []float64 {
	out := make([]float64, len(fb.weights))
	for m, w := range fb.weights {
		var sum float64
		for b, mv := range mag {
			sum += mv * mv * w[b]
		}
		out[m] = math.Log(sum + 1e-10)
	}
	return out
}

// mfcc projects log-mel frames onto the first numCoef orthonormal
// DCT-II basis vectors
func mfcc(logMel [][]float64, numCoef int) [][]float64 {
	if len(logMel) == 0 {
		return nil
	}
	n := len(logMel[0])

	basis := make([][]float64, numCoef)
	for k := 0; k < numCoef; k++ {
		row := make([]float64, n)
		scale := math.Sqrt(2 / float64(n))
		if k == 0 {
			scale = math.Sqrt(1 / float64(n))
		}
		for i := 0; i < n; i++ {
			row[i] = scale * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/float64(n))
		}
		basis[k] = row
	}

	out := make([][]float64, len(logMel))
	for t, frame := range logMel {
		row := make([]float64, numCoef)
		for k := 0; k < numCoef; k++ {
			var sum float64
			for i := 0; i < n; i++ {
				sum += basis[k][i] * frame[i]
			}
			row[k] = sum
		}
		out[t] = row
	}
	return out
}
