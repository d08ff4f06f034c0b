package waitlist

//go:generate mockgen -source=service.go -destination=mock_service.go -package=waitlist

import (
	"context"
	"errors"

	"github.com/akeren/creatorchain/domain/feedback"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/internal/models"
	"github.com/akeren/creatorchain/internal/views"
	apperrors "github.com/akeren/creatorchain/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type WaitlistService interface {
	// OpenView starts a fresh unsubmitted page view.
	OpenView(ctx context.Context) (*views.View, error)

	// ResolveView returns the view for id, or a fresh one when id is empty,
	// unknown or expired.
	ResolveView(ctx context.Context, id string) (*views.View, error)

	// Submit runs one submit for the view named in req. The response is
	// non-nil whenever the view could be resolved, even when err is set.
	Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error)

	// EmitError plays error feedback for a submit that failed before the
	// form ran, such as an unreadable body, and returns the cue.
	EmitError(ctx context.Context) *feedback.Cue

	// Stats reports the audit log aggregates.
	Stats(ctx context.Context) (*AttemptStats, error)
}

type waitlistService struct {
	logger     *log.Logger
	formID     string
	backend    FormBackend
	views      views.Store
	repository SubmissionRepository

	submissions *prometheus.CounterVec
	feedback    *prometheus.CounterVec
}

// NewWaitlistService registers its counters on reg when reg is non-nil.
func NewWaitlistService(
	logger *log.Logger,
	formID string,
	backend FormBackend,
	store views.Store,
	repository SubmissionRepository,
	reg prometheus.Registerer,
) WaitlistService {
	submissions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_total",
			Help: "Waitlist submit attempts, by outcome.",
		},
		[]string{"outcome"},
	)
	if reg != nil {
		reg.MustRegister(submissions)
	}

	return &waitlistService{
		logger:      logger,
		formID:      formID,
		backend:     backend,
		views:       store,
		repository:  repository,
		submissions: submissions,
		feedback:    feedback.NewCounter(reg),
	}
}

func (s *waitlistService) OpenView(ctx context.Context) (*views.View, error) {
	view, err := s.views.Open(ctx)
	if err != nil {
		return nil, apperrors.NewInternalServerError("unable to start a page view", err)
	}
	return view, nil
}

func (s *waitlistService) ResolveView(ctx context.Context, id string) (*views.View, error) {
	if id == "" {
		return s.OpenView(ctx)
	}

	view, err := s.views.Get(ctx, id)
	if errors.Is(err, views.ErrNotFound) {
		log.GetLoggerInstanceFromContext(ctx, s.logger).Debug("Unknown or expired view, opening a new one", "view_id", id)
		return s.OpenView(ctx)
	}
	if err != nil {
		return nil, apperrors.NewInternalServerError("unable to load the page view", err)
	}
	return view, nil
}

// viewLifecycle binds a view ID to the store for the form controller.
type viewLifecycle struct {
	store views.Store
	id    string
}

func (l viewLifecycle) MarkSubmitted(ctx context.Context) (bool, error) {
	return l.store.MarkSubmitted(ctx, l.id)
}

func (s *waitlistService) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	view, err := s.ResolveView(ctx, req.ViewID)
	if err != nil {
		logger.Error("Failed to resolve page view", "error", err)
		return nil, err
	}

	response := &SubmitResponse{ViewID: view.ID, State: view.State}
	if view.Submitted() {
		response.AlreadySubmitted = true
		return response, nil
	}

	recorder := &feedback.CueRecorder{}
	submission := req.Submission()
	form := NewFormControllerWith(submission, s.formID, s.backend, s.emitter(recorder), viewLifecycle{store: s.views, id: view.ID})

	result, err := form.Submit(ctx)
	response.State = form.State()
	response.Feedback = recorder.Cue()

	outcome := outcomeOf(result, err)
	s.submissions.WithLabelValues(outcome).Inc()
	s.audit(ctx, view.ID, outcome, submission)

	switch {
	case err != nil && result != nil && result.Accepted:
		logger.Error("Submission accepted but view state not persisted", "view_id", view.ID, "error", err)
		return response, nil
	case err != nil:
		response.Errors = apperrors.GetFieldErrors(err)
		logger.Warn("Waitlist submission failed", "view_id", view.ID, "outcome", outcome, "error", err)
		return response, err
	case !result.Accepted:
		response.Errors = result.FieldErrors
		logger.Info("Waitlist submission rejected by form backend", "view_id", view.ID, "fields", len(result.FieldErrors))
		return response, apperrors.NewValidationError("Please correct the highlighted fields", result.FieldErrors...)
	case !result.FirstAccept:
		response.AlreadySubmitted = true
	}

	logger.Info("Waitlist submission accepted", "view_id", view.ID, "first", result.FirstAccept)
	return response, nil
}

func (s *waitlistService) EmitError(ctx context.Context) *feedback.Cue {
	recorder := &feedback.CueRecorder{}
	s.emitter(recorder).Emit(ctx, feedback.Error)
	return recorder.Cue()
}

// emitter records into recorder and counts every cue it plays.
func (s *waitlistService) emitter(recorder *feedback.CueRecorder) *feedback.Emitter {
	return feedback.NewEmitter(recorder, recorder, feedback.WithLogger(s.logger), feedback.WithCounter(s.feedback))
}

func outcomeOf(result *Result, err error) string {
	switch {
	case result != nil && result.Accepted:
		return models.OutcomeAccepted
	case apperrors.IsType(err, apperrors.ErrorTypeValidationFailed):
		return models.OutcomeInvalid
	case err != nil:
		return models.OutcomeFailed
	default:
		return models.OutcomeRejected
	}
}

func (s *waitlistService) audit(ctx context.Context, viewID, outcome string, submission Submission) {
	if !s.repository.Enabled() {
		return
	}

	attempt := &models.SubmissionAttempt{
		ViewID:        viewID,
		Outcome:       outcome,
		CreatorType:   string(submission.CreatorType),
		Platform:      string(submission.Platform),
		ContentVolume: string(submission.ContentVolume),
		EmailHash:     submission.EmailHash(),
	}
	if err := s.repository.RecordAttempt(ctx, attempt); err != nil {
		log.GetLoggerInstanceFromContext(ctx, s.logger).Warn("Failed to record submission attempt", "view_id", viewID, "error", err)
	}
}

func (s *waitlistService) Stats(ctx context.Context) (*AttemptStats, error) {
	stats, err := s.repository.Stats(ctx)
	if err != nil {
		log.GetLoggerInstanceFromContext(ctx, s.logger).Error("Failed to load submission stats", "error", err)
		return nil, err
	}
	return stats, nil
}
