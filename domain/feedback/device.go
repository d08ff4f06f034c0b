package feedback

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/akeren/creatorchain/pkg/synth"
)

// ErrDeviceUnavailable is what devices return when the host lacks the capability.
var ErrDeviceUnavailable = errors.New("feedback device unavailable")

// AudioOutput plays a tone sequence.
type AudioOutput interface {
	PlayTones(ctx context.Context, tones []synth.Tone) error
}

// HapticDevice plays an on/off vibration pattern.
type HapticDevice interface {
	Vibrate(ctx context.Context, pattern []time.Duration) error
}

// NopAudio stands in when there is no audio output.
type NopAudio struct{}

func (NopAudio) PlayTones(context.Context, []synth.Tone) error { return nil }

// NopHaptic stands in when there is no vibration motor.
type NopHaptic struct{}

func (NopHaptic) Vibrate(context.Context, []time.Duration) error { return nil }

// WAVOutput renders tones to a WAV stream instead of a speaker.
type WAVOutput struct {
	W          io.Writer
	SampleRate int
	Envelope   synth.Envelope
}

func NewWAVOutput(w io.Writer) *WAVOutput {
	return &WAVOutput{W: w, SampleRate: synth.DefaultSampleRate, Envelope: synth.DefaultEnvelope()}
}

func (o *WAVOutput) PlayTones(_ context.Context, tones []synth.Tone) error {
	if o == nil || o.W == nil {
		return ErrDeviceUnavailable
	}
	return synth.EncodeWAV(o.W, synth.Render(tones, o.Envelope, o.SampleRate), o.SampleRate)
}
