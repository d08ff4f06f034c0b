package waitlist

import (
	"github.com/akeren/creatorchain/domain/feedback"
	"github.com/akeren/creatorchain/internal/views"
	apperrors "github.com/akeren/creatorchain/pkg/errors"
)

// SubmitRequest is bound from JSON (POST /v1/waitlist) or from the
// urlencoded page form (POST /waitlist). Field rules live in Submission.Check
// so that a bad email still produces error feedback.
type SubmitRequest struct {
	ViewID        string `json:"view_id" form:"view_id" binding:"omitempty,uuid"`
	Email         string `json:"email" form:"email" binding:"max=320"`
	CreatorType   string `json:"creatorType" form:"creatorType" binding:"max=32"`
	Platform      string `json:"platform" form:"platform" binding:"max=32"`
	ContentVolume string `json:"contentVolume" form:"contentVolume" binding:"max=16"`
}

func (r *SubmitRequest) Submission() Submission {
	return Submission{
		Email:         r.Email,
		CreatorType:   CreatorType(r.CreatorType),
		Platform:      Platform(r.Platform),
		ContentVolume: ContentVolume(r.ContentVolume),
	}
}

// SubmitResponse is returned for every submit, including failed ones, so the
// client always gets the feedback cue and the view it should keep using.
type SubmitResponse struct {
	ViewID           string                 `json:"view_id"`
	State            views.State            `json:"state"`
	AlreadySubmitted bool                   `json:"already_submitted,omitempty"`
	Errors           []apperrors.FieldError `json:"errors,omitempty"`
	Feedback         *feedback.Cue          `json:"feedback,omitempty"`
}

type ValidateResponse struct {
	Valid     bool `json:"valid"`
	MinLength int  `json:"min_length"`
}

type ViewResponse struct {
	ViewID    string      `json:"view_id"`
	State     views.State `json:"state"`
	ExpiresAt string      `json:"expires_at"`
}
