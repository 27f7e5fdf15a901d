package feature

import (
	"voicejury/internal/core/dsp"
)

// Pitch search covers 80 to 400 Hz, the conversational voice range.
// At 16 kHz that is lags 40 through 200
const (
	pitchLoHz = 80
	pitchHiHz = 400

	// voicing gates: autocorrelation peak and frame energy floors
	voicedCorrMin = 0.30
	voicedRMSMin  = 0.01
)

// trackPitch estimates F0 per frame via normalized autocorrelation on
// the raw samples. Unvoiced frames report F0 0 and Voiced false
func trackPitch(samples []float64, rate, frames int) (f0 []float64, voiced []bool) {
	f0 = make([]float64, frames)
	voiced = make([]bool, frames)

	minLag := rate / pitchHiHz
	maxLag := rate / pitchLoHz

	for t := 0; t < frames; t++ {
		off := t * dsp.HopSize
		win := samples[off : off+dsp.WindowSize]
		if rms(win) < voicedRMSMin {
			continue
		}

		var energy float64
		for _, x := range win {
			energy += x * x
		}
		if energy < 1e-12 {
			continue
		}

		bestLag, bestCorr := 0, 0.0
		for lag := minLag; lag <= maxLag && lag < len(win); lag++ {
			var sum float64
			for i := 0; i+lag < len(win); i++ {
				sum += win[i] * win[i+lag]
			}
			corr := sum / energy
			if corr > bestCorr {
				bestCorr = corr
				bestLag = lag
			}
		}
		if bestLag > 0 && bestCorr >= voicedCorrMin {
			f0[t] = float64(rate) / float64(bestLag)
			voiced[t] = true
		}
	}
	return f0, voiced
}
