package strategy

import (
	"math"

	"voicejury/internal/core/dsp"
	"voicejury/internal/core/feature"
)

// CepstralVariance measures how much the MFCC trajectory moves over
// time. Vocoder output tends to be over-smoothed, so low variance
// leans synthetic. Natural speech sits roughly between 2 and 25
func CepstralVariance(s *feature.Set) SubScore {
	if s.Frames() < 2 {
		return SubScore{Strategy: NameCepstralVariance, Value: Neutral, Detail: "too few frames"}
	}
	coefs := len(s.MFCC[0])
	col := make([]float64, s.Frames())
	var total float64
	for k := 0; k < coefs; k++ {
		for t := range s.MFCC {
			col[t] = s.MFCC[t][k]
		}
		total += dsp.PopStdDev(col)
	}
	v := total / float64(coefs)
	return SubScore{Strategy: NameCepstralVariance, Value: 1 - saturate(v, 2, 25)}
}

// SpectralFlatness leans synthetic when the average spectrum is
// noise-like flat. Clean voiced speech keeps flatness well under 0.5
func SpectralFlatness(s *feature.Set) SubScore {
	if len(s.Flatness) == 0 {
		return SubScore{Strategy: NameSpectralFlatness, Value: Neutral, Detail: "no frames"}
	}
	mean := dsp.Mean(s.Flatness)
	return SubScore{Strategy: NameSpectralFlatness, Value: saturate(mean, 0.05, 0.5)}
}

// PhaseCoherence checks how tightly the per-bin phase advance tracks
// the advance a stationary component would have. Phase vocoders leave
// an unnaturally coherent residue. Needs at least 3 frames
func PhaseCoherence(s *feature.Set) SubScore {
	if len(s.Phase) < 3 {
		return SubScore{Strategy: NamePhaseCoherence, Value: Neutral, Detail: "too few frames for phase tracking"}
	}
	bins := len(s.Phase[0])

	var sumCos, sumSin float64
	var n int
	for t := 1; t < len(s.Phase); t++ {
		for b := 1; b < bins; b++ {
			expected := 2 * math.Pi * float64(b) * float64(dsp.HopSize) / float64(dsp.FFTSize)
			dev := s.Phase[t][b] - s.Phase[t-1][b] - expected
			sumCos += math.Cos(dev)
			sumSin += math.Sin(dev)
			n++
		}
	}
	if n == 0 {
		return SubScore{Strategy: NamePhaseCoherence, Value: Neutral, Detail: "no phase bins"}
	}
	// resultant length is 1 minus the circular variance
	coherence := math.Hypot(sumCos, sumSin) / float64(n)
	return SubScore{Strategy: NamePhaseCoherence, Value: saturate(coherence, 0.2, 0.75)}
}

// PitchStability leans synthetic when voiced F0 barely wavers. Human
// pitch carries jitter and drift; a coefficient of variation under
// about half a percent is suspicious
func PitchStability(s *feature.Set) SubScore {
	voiced := make([]float64, 0, len(s.F0))
	for t, v := range s.Voiced {
		if v {
			voiced = append(voiced, s.F0[t])
		}
	}
	if len(voiced) == 0 {
		return SubScore{Strategy: NamePitchStability, Value: Neutral, Detail: "no voiced frames"}
	}
	cv := dsp.CV(voiced)
	return SubScore{Strategy: NamePitchStability, Value: 1 - saturate(cv, 0.005, 0.15)}
}

// SpectralContrast leans synthetic when the mean peak/valley gap drifts
// away from the ~22.5 dB typical of recorded speech in either direction
func SpectralContrast(s *feature.Set) SubScore {
	if len(s.Contrast) == 0 {
		return SubScore{Strategy: NameSpectralContrast, Value: Neutral, Detail: "no frames"}
	}
	var sum float64
	var n int
	for _, row := range s.Contrast {
		for _, v := range row {
			sum += v
			n++
		}
	}
	mean := sum / float64(n)
	return SubScore{Strategy: NameSpectralContrast, Value: dsp.Clamp01(math.Abs(mean-22.5) / 15)}
}

// ZCRUniformity leans synthetic when the zero-crossing rate barely
// changes between frames. Natural speech alternates voiced and
// fricative segments, which spreads the ZCR
func ZCRUniformity(s *feature.Set) SubScore {
	if len(s.ZCR) < 2 {
		return SubScore{Strategy: NameZCRUniformity, Value: Neutral, Detail: "too few frames"}
	}
	cv := dsp.CV(s.ZCR)
	return SubScore{Strategy: NameZCRUniformity, Value: 1 - saturate(cv, 0.02, 0.6)}
}
