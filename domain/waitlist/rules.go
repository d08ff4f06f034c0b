package waitlist

import (
	apperrors "github.com/akeren/creatorchain/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// submissionRules mirrors Submission with wire names so field errors line up
// with the form inputs.
type submissionRules struct {
	Email         string `json:"email" validate:"waitlist_email"`
	CreatorType   string `json:"creatorType" validate:"omitempty,oneof=youtuber tiktoker instagrammer podcaster streamer other"`
	Platform      string `json:"platform" validate:"omitempty,oneof=youtube tiktok instagram twitch multiple"`
	ContentVolume string `json:"contentVolume" validate:"omitempty,oneof=1-10 11-50 51-100 100+"`
}

var rules = newRulesValidator()

func newRulesValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("waitlist_email", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Check returns one field error per invalid field, in declaration order.
func (s Submission) Check() []apperrors.FieldError {
	r := &submissionRules{
		Email:         s.Email,
		CreatorType:   string(s.CreatorType),
		Platform:      string(s.Platform),
		ContentVolume: string(s.ContentVolume),
	}
	return apperrors.FormatValidationErrors(rules.Struct(r), r)
}
