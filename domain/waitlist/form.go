package waitlist

//go:generate mockgen -source=form.go -destination=mock_form.go -package=waitlist

import (
	"context"
	"errors"
	"sync"

	"github.com/akeren/creatorchain/domain/feedback"
	"github.com/akeren/creatorchain/internal/views"
	apperrors "github.com/akeren/creatorchain/pkg/errors"
	"github.com/akeren/creatorchain/pkg/formspree"
)

var (
	ErrFormClosed       = errors.New("waitlist form already submitted")
	ErrSubmitInProgress = errors.New("waitlist submission already in progress")
)

const invalidEmailMessage = "Please enter a valid email"

// FormBackend forwards the fields to the hosted form service.
type FormBackend interface {
	Submit(ctx context.Context, formID string, fields map[string]string) (*formspree.Response, error)
}

// FeedbackEmitter plays a cue for the visitor.
type FeedbackEmitter interface {
	Emit(ctx context.Context, kind feedback.Kind)
}

// Lifecycle persists the unsubmitted -> submitted transition. MarkSubmitted
// reports whether this call performed it.
type Lifecycle interface {
	MarkSubmitted(ctx context.Context) (bool, error)
}

// Result is the answer to an accepted or rejected submission.
type Result struct {
	Accepted    bool
	FieldErrors []apperrors.FieldError
	// FirstAccept is false when another caller already completed the view.
	FirstAccept bool
}

// FormController owns the waitlist fields for one page view.
type FormController struct {
	formID    string
	backend   FormBackend
	emitter   FeedbackEmitter
	lifecycle Lifecycle

	mu          sync.Mutex
	submission  Submission
	valid       bool
	state       views.State
	submitting  bool
	fieldErrors []apperrors.FieldError
}

func NewFormController(formID string, backend FormBackend, emitter FeedbackEmitter, lifecycle Lifecycle) *FormController {
	if emitter == nil {
		emitter = feedback.NewEmitter(nil, nil)
	}
	return &FormController{
		formID:    formID,
		backend:   backend,
		emitter:   emitter,
		lifecycle: lifecycle,
		state:     views.StateUnsubmitted,
	}
}

// NewFormControllerWith starts a form already filled with submission, as a
// request carrying all four fields does.
func NewFormControllerWith(submission Submission, formID string, backend FormBackend, emitter FeedbackEmitter, lifecycle Lifecycle) *FormController {
	f := NewFormController(formID, backend, emitter, lifecycle)
	f.submission = submission
	f.valid = ValidateEmail(submission.Email)
	return f
}

func (f *FormController) update(apply func(*Submission)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == views.StateSubmitted {
		return ErrFormClosed
	}
	apply(&f.submission)
	f.valid = ValidateEmail(f.submission.Email)
	return nil
}

func (f *FormController) SetEmail(email string) error {
	return f.update(func(s *Submission) { s.Email = email })
}

func (f *FormController) SetCreatorType(v CreatorType) error {
	return f.update(func(s *Submission) { s.CreatorType = v })
}

func (f *FormController) SetPlatform(v Platform) error {
	return f.update(func(s *Submission) { s.Platform = v })
}

func (f *FormController) SetContentVolume(v ContentVolume) error {
	return f.update(func(s *Submission) { s.ContentVolume = v })
}

// Valid reports the email validity flag that gates the submit button.
func (f *FormController) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid
}

func (f *FormController) State() views.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *FormController) Submission() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submission
}

// FieldErrors are the errors shown inline after the last submit.
func (f *FormController) FieldErrors() []apperrors.FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apperrors.FieldError(nil), f.fieldErrors...)
}

// Submit validates locally and, only when valid, makes a single call to the
// form backend. Validation failures never reach the network. Every failure
// emits error feedback; success feedback fires only for the call that moves
// the form to submitted.
func (f *FormController) Submit(ctx context.Context) (*Result, error) {
	f.mu.Lock()
	if f.state == views.StateSubmitted {
		f.mu.Unlock()
		return nil, ErrFormClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}

	submission := f.submission
	if problems := submission.Check(); len(problems) > 0 {
		f.fieldErrors = problems
		f.mu.Unlock()

		f.emitter.Emit(ctx, feedback.Error)
		return nil, apperrors.NewValidationError(invalidMessage(problems), problems...)
	}

	f.submitting = true
	f.mu.Unlock()

	resp, err := f.backend.Submit(ctx, f.formID, submission.Fields())

	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()

	if err != nil {
		f.emitter.Emit(ctx, feedback.Error)
		return nil, upstreamError(err)
	}

	if !resp.Accepted {
		problems := fromBackend(resp.Errors)
		f.mu.Lock()
		f.fieldErrors = problems
		f.mu.Unlock()

		f.emitter.Emit(ctx, feedback.Error)
		return &Result{FieldErrors: problems}, nil
	}

	first, err := f.markSubmitted(ctx)

	f.mu.Lock()
	f.state = views.StateSubmitted
	f.fieldErrors = nil
	f.mu.Unlock()

	if first {
		f.emitter.Emit(ctx, feedback.Success)
	}
	return &Result{Accepted: true, FirstAccept: first}, err
}

func (f *FormController) markSubmitted(ctx context.Context) (bool, error) {
	if f.lifecycle == nil {
		return true, nil
	}
	first, err := f.lifecycle.MarkSubmitted(ctx)
	if err != nil {
		// The backend accepted the entry; the visitor still gets the
		// confirmation even though the view could not be recorded.
		return true, err
	}
	return first, nil
}

func invalidMessage(problems []apperrors.FieldError) string {
	if len(problems) == 1 && problems[0].Field == "email" {
		return invalidEmailMessage
	}
	return "Please correct the highlighted fields"
}

func fromBackend(errs []formspree.FieldError) []apperrors.FieldError {
	if len(errs) == 0 {
		return []apperrors.FieldError{{Field: "form", Code: "rejected", Message: "The submission was rejected"}}
	}
	out := make([]apperrors.FieldError, 0, len(errs))
	for _, e := range errs {
		field := e.Field
		if field == "" {
			field = "form"
		}
		out = append(out, apperrors.FieldError{Field: field, Code: e.Code, Message: e.Message})
	}
	return out
}

func upstreamError(err error) error {
	if errors.Is(err, formspree.ErrCircuitOpen) {
		return apperrors.NewServiceUnavailableError("The waitlist is temporarily unavailable, please try again shortly", err)
	}
	return apperrors.NewUpstreamError("We could not reach the waitlist service, please try again", err)
}
