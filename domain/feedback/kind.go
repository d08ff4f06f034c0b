package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/akeren/creatorchain/pkg/synth"
)

// Kind is a symbolic feedback event.
type Kind string

const (
	Click   Kind = "click"
	Success Kind = "success"
	Error   Kind = "error"
	Hover   Kind = "hover"
)

const (
	// ToneStagger separates the start of consecutive bursts.
	ToneStagger = 50 * time.Millisecond
	// ToneDuration is the length of a single burst.
	ToneDuration = 100 * time.Millisecond
)

// Profile is the fixed audio/haptic response for a kind.
type Profile struct {
	Kind        Kind
	Frequencies []float64
	Vibration   []time.Duration
}

var profiles = map[Kind]Profile{
	Click: {
		Kind:        Click,
		Frequencies: []float64{800, 1000},
		Vibration:   []time.Duration{50 * time.Millisecond},
	},
	Success: {
		Kind:        Success,
		Frequencies: []float64{523, 659, 784}, // C major triad
		Vibration:   []time.Duration{100 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond},
	},
	Error: {
		Kind:        Error,
		Frequencies: []float64{200, 150},
		Vibration:   []time.Duration{50 * time.Millisecond},
	},
	Hover: {
		Kind:        Hover,
		Frequencies: []float64{600},
		Vibration:   []time.Duration{50 * time.Millisecond},
	},
}

// Kinds lists every known kind in a stable order.
func Kinds() []Kind {
	return []Kind{Click, Success, Error, Hover}
}

func ParseKind(raw string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := profiles[k]
	return k, ok
}

// ProfileFor falls back to the click profile for unknown kinds.
func ProfileFor(k Kind) Profile {
	p, ok := profiles[k]
	if !ok {
		p = profiles[Click]
	}
	return Profile{
		Kind:        p.Kind,
		Frequencies: append([]float64(nil), p.Frequencies...),
		Vibration:   append([]time.Duration(nil), p.Vibration...),
	}
}

// Tones lays the frequencies out on the timeline, one staggered burst each.
func (p Profile) Tones() []synth.Tone {
	tones := make([]synth.Tone, len(p.Frequencies))
	for i, f := range p.Frequencies {
		tones[i] = synth.Tone{
			Frequency: f,
			Offset:    time.Duration(i) * ToneStagger,
			Duration:  ToneDuration,
		}
	}
	return tones
}

type kindKey struct{}

// WithKind tags ctx with the kind being emitted so devices can label what they play.
func WithKind(ctx context.Context, k Kind) context.Context {
	return context.WithValue(ctx, kindKey{}, k)
}

func KindFromContext(ctx context.Context) (Kind, bool) {
	k, ok := ctx.Value(kindKey{}).(Kind)
	return k, ok
}
