// Package feature turns decoded PCM into the per-clip feature set the
// strategy evaluators score. Everything runs on 25 ms frames hopped
// every 10 ms over a 512-point spectrum
package feature

import (
	"errors"
	"math"

	"voicejury/internal/core/audio"
	"voicejury/internal/core/dsp"
)

const (
	// NumMels is the mel filterbank size
	NumMels = 64
	// NumMFCC is how many cepstral coefficients are kept per frame
	NumMFCC = 40
	// NumChroma is the pitch-class bin count
	NumChroma = 12
	// NumContrastBands is the sub-band count for spectral contrast
	NumContrastBands = 6
)

// ErrNoFrames means the clip yielded zero analysis frames
var ErrNoFrames = errors.New("feature: no analysis frames")

// Set holds every per-clip feature the evaluators consume. Per-frame
// slices share the same frame count; per-band slices are fixed width
type Set struct {
	MFCC  [][]float64 // [frames][NumMFCC]
	Delta [][]float64 // [frames][NumMFCC] first-order deltas

	Centroid  []float64   // Hz per frame
	Rolloff   []float64   // Hz per frame, 85% energy point
	Bandwidth []float64   // Hz per frame
	Flatness  []float64   // [0,1] per frame
	Contrast  [][]float64 // [frames][NumContrastBands] peak/valley dB
	ZCR       []float64   // zero crossings per sample, per frame
	RMS       []float64   // per frame
	Chroma    [][]float64 // [frames][NumChroma] max-normalized

	MelMean []float64 // [NumMels] log-mel mean over frames
	MelVar  []float64 // [NumMels] log-mel variance over frames

	F0     []float64 // Hz per frame, 0 when unvoiced
	Voiced []bool

	Phase [][]float64 // [frames][dsp.NumBins] raw STFT phase

	HarmonicEnergy   float64 // share of spectral energy the HPSS mask calls harmonic
	PercussiveEnergy float64 // complement, percussive share
}

// Frames reports the analysis frame count
func (s *Set) Frames() int { return len(s.MFCC) }

// Extract computes the full Set from a decoded clip
func Extract(buf *audio.Buffer) (*Set, error) {
	frames := dsp.NumFrames(len(buf.Samples))
	if frames == 0 {
		return nil, ErrNoFrames
	}

	mag, phase := dsp.Spectrogram(buf.Samples)

	s := &Set{
		Centroid:  make([]float64, frames),
		Rolloff:   make([]float64, frames),
		Bandwidth: make([]float64, frames),
		Flatness:  make([]float64, frames),
		Contrast:  make([][]float64, frames),
		ZCR:       make([]float64, frames),
		RMS:       make([]float64, frames),
		Chroma:    make([][]float64, frames),
		Phase:     phase,
	}

	fb := melFilterbank(NumMels, buf.Rate)
	logMel := make([][]float64, frames)

	binHz := float64(buf.Rate) / float64(dsp.FFTSize)
	for f := 0; f < frames; f++ {
		m := mag[f]
		s.Centroid[f], s.Bandwidth[f] = centroidBandwidth(m, binHz)
		s.Rolloff[f] = rolloff(m, binHz, 0.85)
		s.Flatness[f] = flatness(m)
		s.Contrast[f] = contrast(m, binHz)
		s.Chroma[f] = chroma(m, binHz)
		logMel[f] = fb.apply(m)

		off := f * dsp.HopSize
		win := buf.Samples[off : off+dsp.WindowSize]
		s.ZCR[f] = zeroCrossRate(win)
		s.RMS[f] = rms(win)
	}

	s.MFCC = mfcc(logMel, NumMFCC)
	s.Delta = deltas(s.MFCC)
	s.MelMean, s.MelVar = melStats(logMel)
	s.F0, s.Voiced = trackPitch(buf.Samples, buf.Rate, frames)
	s.HarmonicEnergy, s.PercussiveEnergy = hpssEnergy(mag)

	return s, nil
}

// centroidBandwidth returns the magnitude-weighted mean frequency and
// the weighted spread around it
func centroidBandwidth(mag []float64, binHz float64) (centroid, bandwidth float64) {
	var sum, wsum float64
	for i, m := range mag {
		sum += m
		wsum += m * float64(i) * binHz
	}
	if sum < 1e-12 {
		return 0, 0
	}
	centroid = wsum / sum
	var vsum float64
	for i, m := range mag {
		d := float64(i)*binHz - centroid
		vsum += m * d * d
	}
	return centroid, math.Sqrt(vsum / sum)
}

// rolloff returns the frequency below which frac of the spectral energy sits
func rolloff(mag []float64, binHz, frac float64) float64 {
	var total float64
	for _, m := range mag {
		total += m * m
	}
	if total < 1e-12 {
		return 0
	}
	target := total * frac
	var acc float64
	for i, m := range mag {
		acc += m * m
		if acc >= target {
			return float64(i) * binHz
		}
	}
	return float64(len(mag)-1) * binHz
}

// flatness is the geometric over arithmetic mean of the power spectrum,
// skipping DC
func flatness(mag []float64) float64 {
	power := make([]float64, 0, len(mag)-1)
	for _, m := range mag[1:] {
		power = append(power, m*m)
	}
	am := dsp.Mean(power)
	if am < 1e-12 {
		return 0
	}
	return dsp.Clamp01(dsp.GeoMean(power) / am)
}

// contrast band edges in Hz; six octave-ish bands up to Nyquist
var contrastEdges = []float64{0, 200, 400, 800, 1600, 3200, 8000}

// contrast measures, per band, the dB gap between the loudest and
// quietest quintile of bins
func contrast(mag []float64, binHz float64) []float64 {
	out := make([]float64, NumContrastBands)
	for b := 0; b < NumContrastBands; b++ {
		lo := int(contrastEdges[b] / binHz)
		hi := int(contrastEdges[b+1] / binHz)
		if hi > len(mag) {
			hi = len(mag)
		}
		if hi-lo < 2 {
			continue
		}
		band := make([]float64, hi-lo)
		copy(band, mag[lo:hi])
		peak := dsp.Quantile(0.9, band)
		valley := dsp.Quantile(0.1, band)
		const eps = 1e-10
		out[b] = 20 * math.Log10((peak+eps)/(valley+eps))
	}
	return out
}

// chroma folds bin energy onto 12 pitch classes and normalizes the
// frame by its maximum so silence stays at zero
func chroma(mag []float64, binHz float64) []float64 {
	out := make([]float64, NumChroma)
	for i := 1; i < len(mag); i++ {
		f := float64(i) * binHz
		if f < 30 {
			continue
		}
		pc := int(math.Round(12*math.Log2(f/440))) % NumChroma
		if pc < 0 {
			pc += NumChroma
		}
		out[pc] += mag[i] * mag[i]
	}
	max := 0.0
	for _, v := range out {
		if v > max {
			max = v
		}
	}
	if max > 1e-12 {
		for i := range out {
			out[i] /= max
		}
	}
	return out
}

func zeroCrossRate(win []float64) float64 {
	if len(win) < 2 {
		return 0
	}
	n := 0
	for i := 1; i < len(win); i++ {
		if (win[i-1] >= 0) != (win[i] >= 0) {
			n++
		}
	}
	return float64(n) / float64(len(win)-1)
}

func rms(win []float64) float64 {
	if len(win) == 0 {
		return 0
	}
	var sum float64
	for _, x := range win {
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(win)))
}

// deltas is a centered first difference with replicated edges
func deltas(c [][]float64) [][]float64 {
	n := len(c)
	out := make([][]float64, n)
	for t := 0; t < n; t++ {
		prev, next := t-1, t+1
		if prev < 0 {
			prev = 0
		}
		if next >= n {
			next = n - 1
		}
		row := make([]float64, len(c[t]))
		for k := range row {
			row[k] = (c[next][k] - c[prev][k]) / 2
		}
		out[t] = row
	}
	return out
}

// melStats returns the per-band mean and population variance of the
// log-mel energies across frames
func melStats(logMel [][]float64) (mean, variance []float64) {
	if len(logMel) == 0 {
		return nil, nil
	}
	bands := len(logMel[0])
	mean = make([]float64, bands)
	variance = make([]float64, bands)
	col := make([]float64, len(logMel))
	for b := 0; b < bands; b++ {
		for t := range logMel {
			col[t] = logMel[t][b]
		}
		mean[b] = dsp.Mean(col)
		sd := dsp.PopStdDev(col)
		variance[b] = sd * sd
	}
	return mean, variance
}

// hpssEnergy splits spectral energy into harmonic and percussive shares
// using median masks: harmonic bins persist across time, percussive bins
// spread across frequency
func hpssEnergy(mag [][]float64) (harmonic, percussive float64) {
	frames := len(mag)
	if frames == 0 {
		return 0, 0
	}
	bins := len(mag[0])
	const half = 8 // 17-point median windows

	col := make([]float64, 0, 2*half+1)
	var hSum, pSum float64
	for t := 0; t < frames; t++ {
		for b := 0; b < bins; b++ {
			// median across time at this bin
			col = col[:0]
			for dt := -half; dt <= half; dt++ {
				tt := t + dt
				if tt < 0 || tt >= frames {
					continue
				}
				col = append(col, mag[tt][b])
			}
			h := dsp.Median(col)

			// median across frequency at this frame
			col = col[:0]
			for db := -half; db <= half; db++ {
				bb := b + db
				if bb < 0 || bb >= bins {
					continue
				}
				col = append(col, mag[t][bb])
			}
			p := dsp.Median(col)

			e := mag[t][b] * mag[t][b]
			if h >= p {
				hSum += e
			} else {
				pSum += e
			}
		}
	}
	total := hSum + pSum
	if total < 1e-12 {
		return 0, 0
	}
	return hSum / total, pSum / total
}
