// Package strategy scores feature sets for synthesis artifacts. Each
// evaluator maps one acoustic cue onto [0, 1] where higher means more
// likely machine generated. Evaluators that cannot measure their cue
// return the neutral 0.5 with a Detail saying why
package strategy

import (
	"voicejury/internal/core/dsp"
	"voicejury/internal/core/feature"
)

// Evaluator names, stable across releases since they surface in responses
const (
	NameCepstralVariance = "cepstral_variance"
	NameSpectralFlatness = "spectral_flatness"
	NamePhaseCoherence   = "phase_coherence"
	NamePitchStability   = "pitch_stability"
	NameSpectralContrast = "spectral_contrast"
	NameZCRUniformity    = "zcr_uniformity"
)

// Neutral is the score an evaluator reports when its cue is absent
const Neutral = 0.5

// SubScore is one evaluator's verdict on a clip
type SubScore struct {
	Strategy string
	Value    float64 // [0,1], higher leans synthetic
	Detail   string  // non-empty when the evaluator fell back to Neutral
}

// Func evaluates one cue over an extracted feature set
type Func func(*feature.Set) SubScore

// All returns the evaluators in their canonical order
func All() []Func {
	return []Func{
		CepstralVariance,
		SpectralFlatness,
		PhaseCoherence,
		PitchStability,
		SpectralContrast,
		ZCRUniformity,
	}
}

// saturate maps x linearly from [lo, hi] onto [0, 1] with clamping
func saturate(x, lo, hi float64) float64 {
	return dsp.Clamp01((x - lo) / (hi - lo))
}
