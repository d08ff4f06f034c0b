package feedback

import (
	"context"

	"github.com/akeren/creatorchain/internal/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Emitter turns a feedback kind into sound and vibration. It never fails:
// a missing or broken device only produces a debug log line.
type Emitter struct {
	audio   AudioOutput
	haptic  HapticDevice
	logger  *log.Logger
	emitted *prometheus.CounterVec
}

type Option func(*Emitter)

func WithLogger(logger *log.Logger) Option {
	return func(e *Emitter) { e.logger = logger }
}

// WithCounter counts emissions by kind.
func WithCounter(counter *prometheus.CounterVec) Option {
	return func(e *Emitter) { e.emitted = counter }
}

// NewEmitter substitutes no-op devices for nil ones.
func NewEmitter(audio AudioOutput, haptic HapticDevice, opts ...Option) *Emitter {
	if audio == nil {
		audio = NopAudio{}
	}
	if haptic == nil {
		haptic = NopHaptic{}
	}

	e := &Emitter{audio: audio, haptic: haptic}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewCounter builds the emission counter and registers it when reg is non-nil.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_emitted_total",
			Help: "Feedback cues emitted, by kind.",
		},
		[]string{"kind"},
	)
	if reg != nil {
		reg.MustRegister(counter)
	}
	return counter
}

func (e *Emitter) Emit(ctx context.Context, kind Kind) {
	p := ProfileFor(kind)
	ctx = WithKind(ctx, p.Kind)

	if err := e.audio.PlayTones(ctx, p.Tones()); err != nil {
		e.debug(ctx, "Audio feedback skipped", p.Kind, err)
	}

	if err := e.haptic.Vibrate(ctx, p.Vibration); err != nil {
		e.debug(ctx, "Haptic feedback skipped", p.Kind, err)
	}

	if e.emitted != nil {
		e.emitted.WithLabelValues(string(p.Kind)).Inc()
	}
}

func (e *Emitter) debug(ctx context.Context, msg string, kind Kind, err error) {
	if e.logger == nil {
		return
	}
	log.GetLoggerInstanceFromContext(ctx, e.logger).Debug(msg, "kind", kind, "error", err)
}
