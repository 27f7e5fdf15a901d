// Package engine is the facade over decode, feature extraction and
// scoring. It owns error classification so callers only see typed errors
package engine

import (
	"context"
	"errors"
	"io"
	"time"

	"voicejury/internal/core/audio"
	"voicejury/internal/core/feature"
	"voicejury/internal/core/score"
	"voicejury/internal/core/strategy"
	perrs "voicejury/internal/platform/errors"
	"voicejury/internal/platform/logger"
)

// Engine runs the full detection pipeline. It is stateless and safe
// for concurrent use
type Engine struct {
	log logger.Logger
}

// New returns a ready Engine
func New(log logger.Logger) *Engine {
	return &Engine{log: log}
}

// Result is one analyzed clip
type Result struct {
	Verdict  score.Verdict
	Duration time.Duration
	Frames   int
}

// Detect decodes the MP3 stream in r and scores it. Undecodable or
// too-short audio maps to ErrorCodeInvalidAudio; anything else,
// including a panicking evaluator, maps to an internal error
func (e *Engine) Detect(ctx context.Context, r io.Reader) (res *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Error().Interface("panic", rec).Msg("detection pipeline panicked")
			res = nil
			err = perrs.Newf(perrs.ErrorCodePanic, "detection pipeline panicked: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, perrs.Wrap(err, perrs.ErrorCodeUnavailable, "request canceled")
	}

	buf, err := audio.Decode(r)
	if err != nil {
		switch {
		case errors.Is(err, audio.ErrBadStream),
			errors.Is(err, audio.ErrTooShort),
			errors.Is(err, audio.ErrEmpty):
			return nil, perrs.Wrap(err, perrs.ErrorCodeInvalidAudio, "audio cannot be analyzed")
		}
		return nil, perrs.Wrap(err, perrs.ErrorCodeUnknown, "audio decode failed")
	}

	return e.Analyze(ctx, buf)
}

// Analyze scores an already decoded buffer. Detect feeds it the MP3
// output; tests feed it synthesized PCM
func (e *Engine) Analyze(ctx context.Context, buf *audio.Buffer) (res *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Error().Interface("panic", rec).Msg("detection pipeline panicked")
			res = nil
			err = perrs.Newf(perrs.ErrorCodePanic, "detection pipeline panicked: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, perrs.Wrap(err, perrs.ErrorCodeUnavailable, "request canceled")
	}

	start := time.Now()
	set, err := feature.Extract(buf)
	if err != nil {
		if errors.Is(err, feature.ErrNoFrames) {
			return nil, perrs.Wrap(err, perrs.ErrorCodeInvalidAudio, "audio cannot be analyzed")
		}
		return nil, perrs.Wrap(err, perrs.ErrorCodeUnknown, "feature extraction failed")
	}

	fns := strategy.All()
	subs := make([]strategy.SubScore, 0, len(fns))
	for _, fn := range fns {
		subs = append(subs, fn(set))
	}

	verdict, err := score.Combine(subs)
	if err != nil {
		return nil, perrs.Wrap(err, perrs.ErrorCodeUnknown, "scoring failed")
	}

	e.log.Debug().
		Str("classification", string(verdict.Classification)).
		Float64("composite", verdict.Composite).
		Float64("confidence", verdict.Confidence).
		Dur("clip", buf.Duration()).
		Dur("took", time.Since(start)).
		Msg("clip analyzed")

	return &Result{
		Verdict:  verdict,
		Duration: buf.Duration(),
		Frames:   set.Frames(),
	}, nil
}

// SelfCheck verifies the scoring configuration. Readiness probes call
// it so a bad weight table fails fast instead of at first request
func (e *Engine) SelfCheck() error {
	return score.CheckWeights()
}
