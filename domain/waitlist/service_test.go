package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akeren/creatorchain/domain/feedback"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/internal/models"
	"github.com/akeren/creatorchain/internal/views"
	apperrors "github.com/akeren/creatorchain/pkg/errors"
	"github.com/akeren/creatorchain/pkg/formspree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceFixture struct {
	backend *MockFormBackend
	repo    *MockSubmissionRepository
	store   *views.MemoryStore
	reg     *prometheus.Registry
	service WaitlistService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	store, err := views.NewMemoryStore(time.Hour, 0, log.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	f := &serviceFixture{
		backend: NewMockFormBackend(ctrl),
		repo:    NewMockSubmissionRepository(ctrl),
		store:   store,
		reg:     prometheus.NewRegistry(),
	}
	f.repo.EXPECT().Enabled().Return(true).AnyTimes()
	f.service = NewWaitlistService(log.NewDiscardLogger(), testFormID, f.backend, store, f.repo, f.reg)
	return f
}

func (f *serviceFixture) openView(t *testing.T) string {
	t.Helper()
	view, err := f.service.OpenView(context.Background())
	require.NoError(t, err)
	return view.ID
}

func TestSubmit_AcceptedEmitsSuccessCue(t *testing.T) {
	f := newServiceFixture(t)
	viewID := f.openView(t)

	f.backend.EXPECT().Submit(gomock.Any(), testFormID, gomock.Any()).Return(&formspree.Response{Accepted: true}, nil).Times(1)
	f.repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a *models.SubmissionAttempt) error {
			assert.Equal(t, viewID, a.ViewID)
			assert.Equal(t, models.OutcomeAccepted, a.Outcome)
			assert.Equal(t, "streamer", a.CreatorType)
			assert.Len(t, a.EmailHash, 64)
			return nil
		},
	)

	resp, err := f.service.Submit(context.Background(), &SubmitRequest{
		ViewID:      viewID,
		Email:       "streamer@example.com",
		CreatorType: "streamer",
	})

	require.NoError(t, err)
	assert.Equal(t, viewID, resp.ViewID)
	assert.Equal(t, views.StateSubmitted, resp.State)
	assert.False(t, resp.AlreadySubmitted)
	require.NotNil(t, resp.Feedback)
	assert.Equal(t, feedback.Success, resp.Feedback.Kind)
	assert.Len(t, resp.Feedback.Tones, 3)
	assert.Equal(t, []int64{100, 50, 100}, resp.Feedback.VibrationMS)

	stored, err := f.store.Get(context.Background(), viewID)
	require.NoError(t, err)
	assert.True(t, stored.Submitted())

	assert.Equal(t, 1.0, counterValue(t, f.reg, "waitlist_submissions_total", models.OutcomeAccepted))
	assert.Equal(t, 1.0, counterValue(t, f.reg, "feedback_emitted_total", string(feedback.Success)))
}

func TestSubmit_RepeatOnSubmittedViewMakesNoCall(t *testing.T) {
	f := newServiceFixture(t)
	viewID := f.openView(t)

	f.backend.EXPECT().Submit(gomock.Any(), testFormID, gomock.Any()).Return(&formspree.Response{Accepted: true}, nil).Times(1)
	f.repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := f.service.Submit(context.Background(), &SubmitRequest{ViewID: viewID, Email: "a@b.co"})
	require.NoError(t, err)

	resp, err := f.service.Submit(context.Background(), &SubmitRequest{ViewID: viewID, Email: "other@b.co"})
	require.NoError(t, err)
	assert.True(t, resp.AlreadySubmitted)
	assert.Equal(t, views.StateSubmitted, resp.State)
	assert.Nil(t, resp.Feedback)
}

func TestSubmit_InvalidEmailNeverReachesBackend(t *testing.T) {
	f := newServiceFixture(t)
	viewID := f.openView(t)

	f.backend.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a *models.SubmissionAttempt) error {
			assert.Equal(t, models.OutcomeInvalid, a.Outcome)
			return nil
		},
	)

	resp, err := f.service.Submit(context.Background(), &SubmitRequest{ViewID: viewID, Email: "a@b"})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidationFailed))
	require.NotNil(t, resp)
	assert.Equal(t, views.StateUnsubmitted, resp.State)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "email", resp.Errors[0].Field)
	require.NotNil(t, resp.Feedback)
	assert.Equal(t, feedback.Error, resp.Feedback.Kind)
	assert.Equal(t, []int64{50}, resp.Feedback.VibrationMS)

	assert.Equal(t, 1.0, counterValue(t, f.reg, "waitlist_submissions_total", models.OutcomeInvalid))
}

func TestSubmit_RejectedKeepsViewOpen(t *testing.T) {
	f := newServiceFixture(t)
	viewID := f.openView(t)

	f.backend.EXPECT().Submit(gomock.Any(), testFormID, gomock.Any()).Return(&formspree.Response{
		Errors: []formspree.FieldError{{Field: "email", Code: "TYPE_EMAIL", Message: "should be an email"}},
	}, nil)
	f.repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := f.service.Submit(context.Background(), &SubmitRequest{ViewID: viewID, Email: "a@b.co"})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidationFailed))
	assert.Equal(t, views.StateUnsubmitted, resp.State)
	assert.Equal(t, "TYPE_EMAIL", resp.Errors[0].Code)

	stored, err := f.store.Get(context.Background(), viewID)
	require.NoError(t, err)
	assert.False(t, stored.Submitted())
}

func TestSubmit_UpstreamFailureRecordsFailed(t *testing.T) {
	f := newServiceFixture(t)
	viewID := f.openView(t)

	f.backend.EXPECT().Submit(gomock.Any(), testFormID, gomock.Any()).Return(nil, &formspree.UpstreamError{StatusCode: 500, Message: "boom"})
	f.repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(errors.New("audit down"))

	resp, err := f.service.Submit(context.Background(), &SubmitRequest{ViewID: viewID, Email: "a@b.co"})

	assert.Equal(t, apperrors.StatusBadGateway, apperrors.HTTPStatusCode(err))
	assert.Equal(t, feedback.Error, resp.Feedback.Kind)
	assert.Equal(t, 1.0, counterValue(t, f.reg, "waitlist_submissions_total", models.OutcomeFailed))
}

func TestSubmit_UnknownViewOpensFreshOne(t *testing.T) {
	f := newServiceFixture(t)

	f.backend.EXPECT().Submit(gomock.Any(), testFormID, gomock.Any()).Return(&formspree.Response{Accepted: true}, nil)
	f.repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any()).Return(nil)

	stale := "6f1d9a4e-1c0b-4b43-9d1e-2f3a4b5c6d7e"
	resp, err := f.service.Submit(context.Background(), &SubmitRequest{ViewID: stale, Email: "a@b.co"})

	require.NoError(t, err)
	assert.NotEqual(t, stale, resp.ViewID)
	assert.Equal(t, views.StateSubmitted, resp.State)
}

func TestSubmit_NilRequest(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := f.service.Submit(context.Background(), nil)
	assert.Nil(t, resp)
	assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
}

func TestSubmit_AuditDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockFormBackend(ctrl)
	store, err := views.NewMemoryStore(time.Hour, 0, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	service := NewWaitlistService(log.NewDiscardLogger(), testFormID, backend, store, NewSubmissionRepository(nil), nil)
	backend.EXPECT().Submit(gomock.Any(), testFormID, gomock.Any()).Return(&formspree.Response{Accepted: true}, nil)

	resp, err := service.Submit(context.Background(), &SubmitRequest{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, views.StateSubmitted, resp.State)

	_, err = service.Stats(context.Background())
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
}

func TestResolveView(t *testing.T) {
	f := newServiceFixture(t)
	viewID := f.openView(t)

	view, err := f.service.ResolveView(context.Background(), viewID)
	require.NoError(t, err)
	assert.Equal(t, viewID, view.ID)

	fresh, err := f.service.ResolveView(context.Background(), "")
	require.NoError(t, err)
	assert.NotEqual(t, viewID, fresh.ID)
	assert.Equal(t, views.StateUnsubmitted, fresh.State)
}

func TestStats_DelegatesToRepository(t *testing.T) {
	f := newServiceFixture(t)

	want := &AttemptStats{Total: 3, ByOutcome: map[string]int64{"accepted": 2, "invalid": 1}, UniqueAccepted: 2}
	f.repo.EXPECT().Stats(gomock.Any()).Return(want, nil)

	got, err := f.service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// counterValue reads one labelled counter back out of the registry.
func counterValue(t *testing.T, reg *prometheus.Registry, name, label string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("counter %s{%s} not found", name, label)
	return 0
}

func TestEmitError_CountsEveryCue(t *testing.T) {
	f := newServiceFixture(t)

	first := f.service.EmitError(context.Background())
	second := f.service.EmitError(context.Background())

	require.NotNil(t, first)
	assert.Equal(t, feedback.Error, first.Kind)
	assert.Equal(t, []float64{200, 150}, []float64{first.Tones[0].Frequency, first.Tones[1].Frequency})
	assert.Equal(t, []int64{50}, second.VibrationMS)
	assert.Equal(t, 2.0, counterValue(t, f.reg, "feedback_emitted_total", string(feedback.Error)))
}
