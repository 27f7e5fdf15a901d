// Package audio decodes caller supplied MP3 streams into normalized mono PCM
package audio

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hajimehoshi/go-mp3"
	resampling "github.com/tphakala/go-audio-resampling"
)

const (
	// TargetRate is the analysis sample rate; all input is resampled to it
	TargetRate = 16000

	// MinDuration is the shortest clip that yields enough frames to analyze
	MinDuration = 500 * time.Millisecond
)

var (
	// ErrBadStream means the payload is not a decodable MP3 stream
	ErrBadStream = errors.New("audio: undecodable mp3 stream")
	// ErrTooShort means the clip decoded but is under MinDuration
	ErrTooShort = errors.New("audio: clip shorter than minimum duration")
	// ErrEmpty means the stream decoded to zero samples
	ErrEmpty = errors.New("audio: stream contains no samples")
)

// Buffer is mono PCM normalized to [-1, 1] at Rate Hz
type Buffer struct {
	Samples []float64
	Rate    int
}

// Duration reports the clip length
func (b *Buffer) Duration() time.Duration {
	if b.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.Rate) * float64(time.Second))
}

// Decode reads an MP3 stream, downmixes to mono, resamples to TargetRate
// and enforces MinDuration. The decoder always emits 16-bit LE stereo at
// the stream's native rate, so downmix happens unconditionally
func Decode(r io.Reader) (*Buffer, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadStream, err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadStream, err)
	}
	if len(pcm) == 0 {
		return nil, ErrEmpty
	}

	mono := downmixStereo(pcm)
	if len(mono) == 0 {
		return nil, ErrEmpty
	}

	return fromPCM(mono, dec.SampleRate())
}

// fromPCM converts decoded mono samples at their native rate into an
// analysis buffer. The minimum is judged on the decoded length; the
// resampler trims a few milliseconds of filter latency and must not push
// a boundary clip under
func fromPCM(mono []float64, rate int) (*Buffer, error) {
	srcDur := time.Duration(float64(len(mono)) / float64(rate) * float64(time.Second))
	if srcDur < MinDuration {
		return nil, fmt.Errorf("%w: got %s want at least %s", ErrTooShort, srcDur.Round(time.Millisecond), MinDuration)
	}

	if rate != TargetRate {
		var err error
		mono, err = resampleTo(mono, rate, TargetRate)
		if err != nil {
			return nil, fmt.Errorf("%w: resample from %d Hz: %v", ErrBadStream, rate, err)
		}
	}

	return &Buffer{Samples: mono, Rate: TargetRate}, nil
}

// downmixStereo averages L/R pairs of interleaved 16-bit LE stereo into
// normalized mono float64 samples
func downmixStereo(pcm []byte) []float64 {
	frames := len(pcm) / 4
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		j := i * 4
		l := int16(pcm[j]) | int16(pcm[j+1])<<8
		r := int16(pcm[j+2]) | int16(pcm[j+3])<<8
		out[i] = (float64(l) + float64(r)) / 2 / 32768.0
	}
	return out
}

// resampleTo converts mono samples from srcRate to dstRate
func resampleTo(samples []float64, srcRate, dstRate int) ([]float64, error) {
	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(srcRate),
		OutputRate: float64(dstRate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, err
	}
	out, err := rs.Process(samples)
	if err != nil {
		return nil, err
	}
	// drain the internal buffers, the streaming path otherwise keeps the
	// tail of the clip
	tail, err := rs.Flush()
	if err != nil {
		return nil, err
	}
	return append(out, tail...), nil
}
