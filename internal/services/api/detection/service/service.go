// Package service contains the detection workflow
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"math"
	"strings"

	"voicejury/internal/core/engine"
	"voicejury/internal/core/langtag"
	"voicejury/internal/core/score"
	perrs "voicejury/internal/platform/errors"
	"voicejury/internal/services/api/detection/domain"
)

// minAudioBytes rejects payloads too small to hold a real MP3 frame
const minAudioBytes = 1000

// explanations keyed by classification; the public contract keeps these
// two fixed sentences
const (
	explainSynthetic = "Unnatural pitch consistency and robotic speech patterns detected"
	explainHuman     = "Natural voice characteristics and human speech patterns detected"
)

// Detector is the slice of the engine the service needs
type Detector interface {
	Detect(ctx context.Context, r io.Reader) (*engine.Result, error)
}

// Service defines the service contract for detection
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	det Detector
}

// New creates a new detection service
func New(det Detector) *Svc {
	if det == nil {
		panic("detection.Service requires a non nil Detector")
	}
	return &Svc{det: det}
}

// Detect validates the request, decodes the payload and runs the engine
func (s *Svc) Detect(ctx context.Context, in domain.DetectInput) (domain.DetectResult, error) {
	tag, err := langtag.Parse(in.Language)
	if err != nil {
		return domain.DetectResult{}, perrs.WithField(
			perrs.Validationf("unsupported language %q, supported: %s", in.Language, strings.Join(langtag.Names(), ", ")),
			"language",
		)
	}

	data, err := decodeBase64(in.AudioBase64)
	if err != nil {
		return domain.DetectResult{}, perrs.WithField(
			perrs.Validationf("failed to decode base64 audio data"),
			"audioBase64",
		)
	}
	if len(data) < minAudioBytes {
		return domain.DetectResult{}, perrs.InvalidAudiof("audio file is too small or corrupted")
	}

	res, err := s.det.Detect(ctx, bytes.NewReader(data))
	if err != nil {
		return domain.DetectResult{}, err
	}

	explanation := explainHuman
	if res.Verdict.Classification == score.ClassificationAI {
		explanation = explainSynthetic
	}

	strategies := make([]domain.StrategyScore, 0, len(res.Verdict.SubScores))
	for _, ss := range res.Verdict.SubScores {
		strategies = append(strategies, domain.StrategyScore{
			Name:   ss.Strategy,
			Score:  round2(ss.Value),
			Detail: ss.Detail,
		})
	}

	return domain.DetectResult{
		Status:          "success",
		Language:        tag.Name,
		Classification:  string(res.Verdict.Classification),
		ConfidenceScore: round2(res.Verdict.Confidence),
		Explanation:     explanation,
		Analysis: &domain.Analysis{
			Composite:  round2(res.Verdict.Composite),
			DurationMs: res.Duration.Milliseconds(),
			Frames:     res.Frames,
			Strategies: strategies,
		},
	}, nil
}

// decodeBase64 accepts standard and URL-safe alphabets and repairs
// missing padding, matching what integrators actually send
func decodeBase64(s string) ([]byte, error) {
	if pad := len(s) % 4; pad != 0 {
		s += strings.Repeat("=", 4-pad)
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	return base64.URLEncoding.DecodeString(s)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
