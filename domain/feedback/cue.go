package feedback

import (
	"context"
	"sync"
	"time"

	"github.com/akeren/creatorchain/pkg/synth"
)

// ToneCue is the wire form of a single burst.
type ToneCue struct {
	Frequency  float64 `json:"frequency"`
	OffsetMS   int64   `json:"offset_ms"`
	DurationMS int64   `json:"duration_ms"`
}

// Cue tells a browser what to play: tones through Web Audio, vibration through the Vibration API.
type Cue struct {
	Kind        Kind      `json:"kind"`
	Tones       []ToneCue `json:"tones"`
	VibrationMS []int64   `json:"vibration_ms"`
	Gain        float64   `json:"gain"`
}

// CueFor builds the cue for a kind without going through an emitter.
func CueFor(k Kind) Cue {
	p := ProfileFor(k)
	rec := &CueRecorder{}
	ctx := WithKind(context.Background(), p.Kind)
	_ = rec.PlayTones(ctx, p.Tones())
	_ = rec.Vibrate(ctx, p.Vibration)
	return *rec.Cue()
}

// CueRecorder is both an AudioOutput and a HapticDevice. It keeps the last
// emitted cue so a handler can ship it to the client.
type CueRecorder struct {
	mu  sync.Mutex
	cue *Cue
}

func (r *CueRecorder) current(ctx context.Context) *Cue {
	k, _ := KindFromContext(ctx)
	if r.cue == nil || r.cue.Kind != k {
		r.cue = &Cue{Kind: k, Tones: []ToneCue{}, VibrationMS: []int64{}}
	}
	return r.cue
}

func (r *CueRecorder) PlayTones(ctx context.Context, tones []synth.Tone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cue := r.current(ctx)
	cue.Gain = synth.DefaultEnvelope().Peak
	cue.Tones = make([]ToneCue, len(tones))
	for i, t := range tones {
		cue.Tones[i] = ToneCue{
			Frequency:  t.Frequency,
			OffsetMS:   t.Offset.Milliseconds(),
			DurationMS: t.Duration.Milliseconds(),
		}
	}
	return nil
}

func (r *CueRecorder) Vibrate(ctx context.Context, pattern []time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cue := r.current(ctx)
	cue.VibrationMS = make([]int64, len(pattern))
	for i, d := range pattern {
		cue.VibrationMS[i] = d.Milliseconds()
	}
	return nil
}

// Cue returns a copy of the last recorded cue, or nil if nothing was emitted.
func (r *CueRecorder) Cue() *Cue {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cue == nil {
		return nil
	}
	c := *r.cue
	c.Tones = append([]ToneCue(nil), r.cue.Tones...)
	c.VibrationMS = append([]int64(nil), r.cue.VibrationMS...)
	return &c
}
