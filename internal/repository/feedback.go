package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// FeedbackRepository defines persistence operations for feedback records.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	// ListForUser returns every feedback record where the user is the
	// reviewed party, newest first. This is the single source of truth for a
	// user's feedback; it is never stored on the user record.
	ListForUser(ctx context.Context, reviewedID uint) ([]models.Feedback, error)
	// GetBySwapAndReviewer returns nil, nil when the reviewer has not yet
	// reviewed the swap.
	GetBySwapAndReviewer(ctx context.Context, swapID, reviewerID uint) (*models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository returns a new FeedbackRepository implementation.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewInvalidStateError("Swap already reviewed by this user")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *feedbackRepository) ListForUser(ctx context.Context, reviewedID uint) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := r.db.WithContext(ctx).
		Where("reviewed_id = ?", reviewedID).
		Preload("Reviewer").
		Order("created_at DESC").
		Find(&feedback).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return feedback, nil
}

func (r *feedbackRepository) GetBySwapAndReviewer(ctx context.Context, swapID, reviewerID uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).
		Where("swap_id = ? AND reviewer_id = ?", swapID, reviewerID).
		First(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &feedback, nil
}
