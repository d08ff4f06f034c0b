package models

import (
	"time"
)

// Submission outcomes recorded in the audit table.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// SubmissionAttempt is one waitlist submit as seen by the service. The email
// address itself is never stored, only its SHA-256.
type SubmissionAttempt struct {
	ID            uint      `gorm:"primaryKey"`
	ViewID        string    `gorm:"size:36;index"`
	Outcome       string    `gorm:"size:16;not null;index"`
	CreatorType   string    `gorm:"size:32"`
	Platform      string    `gorm:"size:32"`
	ContentVolume string    `gorm:"size:16"`
	EmailHash     string    `gorm:"size:64;index"`
	CreatedAt     time.Time `gorm:"not null;index"`
}

func (SubmissionAttempt) TableName() string {
	return "submission_attempts"
}

var ModelRegistry = []interface{}{
	&SubmissionAttempt{},
}
