package waitlist

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=waitlist

import (
	"context"

	"github.com/akeren/creatorchain/internal/models"
	apperrors "github.com/akeren/creatorchain/pkg/errors"
	"gorm.io/gorm"
)

// AttemptStats summarises the audit log.
type AttemptStats struct {
	Total          int64            `json:"total"`
	ByOutcome      map[string]int64 `json:"by_outcome"`
	ByCreatorType  map[string]int64 `json:"by_creator_type"`
	UniqueAccepted int64            `json:"unique_accepted"`
}

type SubmissionRepository interface {
	// RecordAttempt appends one submit outcome to the audit log.
	RecordAttempt(ctx context.Context, attempt *models.SubmissionAttempt) error
	// Stats aggregates the audit log.
	Stats(ctx context.Context) (*AttemptStats, error)
	// Enabled is false when no database backs the audit log.
	Enabled() bool
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository falls back to a no-op audit log when db is nil.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	if db == nil {
		return nopRepository{}
	}
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Enabled() bool { return true }

func (r *submissionRepository) RecordAttempt(ctx context.Context, attempt *models.SubmissionAttempt) error {
	if err := r.db.WithContext(ctx).Create(attempt).Error; err != nil {
		return apperrors.NewDatabaseError("unable to record submission attempt", err)
	}
	return nil
}

type groupCount struct {
	Label string
	Total int64
}

func (r *submissionRepository) countBy(ctx context.Context, column string, scope func(*gorm.DB) *gorm.DB) (map[string]int64, error) {
	var rows []groupCount
	q := r.db.WithContext(ctx).
		Model(&models.SubmissionAttempt{}).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column)
	if scope != nil {
		q = scope(q)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		label := row.Label
		if label == "" {
			label = "unset"
		}
		out[label] += row.Total
	}
	return out, nil
}

func (r *submissionRepository) Stats(ctx context.Context) (*AttemptStats, error) {
	byOutcome, err := r.countBy(ctx, "outcome", nil)
	if err != nil {
		return nil, apperrors.NewDatabaseError("unable to aggregate submission attempts", err)
	}

	accepted := func(q *gorm.DB) *gorm.DB { return q.Where("outcome = ?", models.OutcomeAccepted) }

	byCreatorType, err := r.countBy(ctx, "creator_type", accepted)
	if err != nil {
		return nil, apperrors.NewDatabaseError("unable to aggregate submission attempts", err)
	}

	var unique int64
	if err := accepted(r.db.WithContext(ctx).Model(&models.SubmissionAttempt{})).
		Distinct("email_hash").
		Count(&unique).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to count accepted emails", err)
	}

	stats := &AttemptStats{
		ByOutcome:      byOutcome,
		ByCreatorType:  byCreatorType,
		UniqueAccepted: unique,
	}
	for _, n := range byOutcome {
		stats.Total += n
	}
	return stats, nil
}

type nopRepository struct{}

func (nopRepository) Enabled() bool { return false }

func (nopRepository) RecordAttempt(context.Context, *models.SubmissionAttempt) error { return nil }

func (nopRepository) Stats(context.Context) (*AttemptStats, error) {
	return nil, apperrors.NewNotFoundError("submission audit is not configured", nil)
}
