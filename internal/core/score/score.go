// Package score folds the per-strategy sub-scores into a single verdict
package score

import (
	"fmt"
	"math"

	"voicejury/internal/core/dsp"
	"voicejury/internal/core/strategy"
)

// Threshold splits composites into classifications. A composite exactly
// at the threshold reads as human: the cues must positively indicate
// synthesis before we accuse
const Threshold = 0.5

// Classification is the final call on a clip
type Classification string

const (
	// ClassificationAI marks clips the composite flags as machine generated
	ClassificationAI Classification = "AI_GENERATED"
	// ClassificationHuman marks everything else
	ClassificationHuman Classification = "HUMAN"
)

// weights must sum to 1; the config test pins this down. Cepstral and
// phase cues carry the most signal in practice, so they dominate
var weights = map[string]float64{
	strategy.NameCepstralVariance: 0.25,
	strategy.NamePhaseCoherence:   0.20,
	strategy.NamePitchStability:   0.20,
	strategy.NameSpectralFlatness: 0.15,
	strategy.NameSpectralContrast: 0.10,
	strategy.NameZCRUniformity:    0.10,
}

// Weights returns a copy of the strategy weight table
func Weights() map[string]float64 {
	out := make(map[string]float64, len(weights))
	for k, v := range weights {
		out[k] = v
	}
	return out
}

// CheckWeights verifies the weight table covers every evaluator and
// sums to one. Meant for readiness probes
func CheckWeights() error {
	fns := strategy.All()
	if len(weights) != len(fns) {
		return fmt.Errorf("score: weight table has %d entries, want %d", len(weights), len(fns))
	}
	var sum float64
	for name, w := range weights {
		if w <= 0 {
			return fmt.Errorf("score: non-positive weight for %s", name)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("score: weights sum to %v, want 1", sum)
	}
	return nil
}

// Verdict is the combined outcome over all strategies
type Verdict struct {
	Classification Classification
	Composite      float64 // weighted mean of sub-scores
	Confidence     float64 // [0,1], high when the strategies agree
	SubScores      []strategy.SubScore
}

// Combine weighs the sub-scores into a Verdict. It requires exactly one
// well-formed score per known strategy
func Combine(subs []strategy.SubScore) (Verdict, error) {
	if len(subs) != len(weights) {
		return Verdict{}, fmt.Errorf("score: got %d sub-scores, want %d", len(subs), len(weights))
	}

	seen := make(map[string]bool, len(subs))
	var composite float64
	values := make([]float64, len(subs))
	for i, s := range subs {
		w, ok := weights[s.Strategy]
		if !ok {
			return Verdict{}, fmt.Errorf("score: unknown strategy %q", s.Strategy)
		}
		if seen[s.Strategy] {
			return Verdict{}, fmt.Errorf("score: duplicate strategy %q", s.Strategy)
		}
		seen[s.Strategy] = true
		if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) || s.Value < 0 || s.Value > 1 {
			return Verdict{}, fmt.Errorf("score: strategy %q produced malformed value %v", s.Strategy, s.Value)
		}
		composite += w * s.Value
		values[i] = s.Value
	}

	v := Verdict{
		Composite:  composite,
		Confidence: dsp.Clamp01(1 - 2*dsp.PopStdDev(values)),
		SubScores:  subs,
	}
	if composite > Threshold {
		v.Classification = ClassificationAI
	} else {
		v.Classification = ClassificationHuman
	}
	return v, nil
}
