// Package synth renders short sine tone sequences into PCM and WAV.
package synth

import (
	"math"
	"time"
)

const DefaultSampleRate = 44100

// Tone is a single sine burst placed on the sequence timeline.
type Tone struct {
	Frequency float64
	Offset    time.Duration
	Duration  time.Duration
}

// Envelope shapes each burst: a linear attack to Peak, then an exponential
// decay that reaches Floor at the end of the burst.
type Envelope struct {
	Peak   float64
	Attack time.Duration
	Floor  float64
}

// DefaultEnvelope is a soft click: 0.1 gain reached in 10ms, fading to 0.001.
func DefaultEnvelope() Envelope {
	return Envelope{
		Peak:   0.1,
		Attack: 10 * time.Millisecond,
		Floor:  0.001,
	}
}

// Length is the end of the last burst.
func Length(tones []Tone) time.Duration {
	var end time.Duration
	for _, t := range tones {
		if e := t.Offset + t.Duration; e > end {
			end = e
		}
	}
	return end
}

// SamplesFor converts a duration into a whole number of samples.
func SamplesFor(d time.Duration, sampleRate int) int {
	if d <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(int64(d) * int64(sampleRate) / int64(time.Second))
}

// Render mixes the tones into mono samples in [-1, 1].
func Render(tones []Tone, env Envelope, sampleRate int) []float64 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	out := make([]float64, SamplesFor(Length(tones), sampleRate))

	for _, tone := range tones {
		start := SamplesFor(tone.Offset, sampleRate)
		n := SamplesFor(tone.Duration, sampleRate)
		for i := 0; i < n && start+i < len(out); i++ {
			elapsed := time.Duration(int64(i) * int64(time.Second) / int64(sampleRate))
			phase := 2 * math.Pi * tone.Frequency * float64(i) / float64(sampleRate)
			out[start+i] += env.Gain(elapsed, tone.Duration) * math.Sin(phase)
		}
	}

	for i, v := range out {
		out[i] = math.Max(-1, math.Min(1, v))
	}

	return out
}

// Gain returns the envelope value at elapsed time into a burst of the given length.
func (e Envelope) Gain(elapsed, length time.Duration) float64 {
	switch {
	case elapsed < 0 || elapsed >= length:
		return 0
	case e.Attack > 0 && elapsed < e.Attack:
		return e.Peak * float64(elapsed) / float64(e.Attack)
	}

	decay := length - e.Attack
	if decay <= 0 || e.Peak <= 0 || e.Floor <= 0 {
		return e.Peak
	}

	// Exponential interpolation between Peak and Floor, like an audio param ramp.
	progress := float64(elapsed-e.Attack) / float64(decay)
	return e.Peak * math.Pow(e.Floor/e.Peak, progress)
}
