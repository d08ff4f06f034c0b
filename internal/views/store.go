// Package views tracks the lifecycle of a rendered waitlist form. A view
// starts unsubmitted and moves to submitted at most once.
package views

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StateUnsubmitted State = "unsubmitted"
	StateSubmitted   State = "submitted"
)

var ErrNotFound = errors.New("view not found or expired")

type View struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (v *View) Submitted() bool {
	return v.State == StateSubmitted
}

// Store is safe for concurrent use.
type Store interface {
	Open(ctx context.Context) (*View, error)
	// Get returns ErrNotFound for unknown or expired views.
	Get(ctx context.Context, id string) (*View, error)
	// MarkSubmitted reports true only for the call that performed the
	// transition. Later calls return false with a nil error.
	MarkSubmitted(ctx context.Context, id string) (bool, error)
	Close() error
}

type options struct {
	now   func() time.Time
	newID func() string
}

type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
