package service

import (
	"context"
	"math"
	"strconv"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// FeedbackService provides feedback business logic.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	swapRepo     repository.SwapRepository
}

// NewFeedbackService returns a new FeedbackService.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, swapRepo repository.SwapRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		swapRepo:     swapRepo,
	}
}

// CreateFeedbackInput carries the fields needed to leave feedback on a swap.
type CreateFeedbackInput struct {
	SwapID  uint   `json:"swap_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Create records the reviewer's feedback on a completed swap. The reviewed
// party is always the swap's other participant, and each participant can
// review a given swap at most once.
func (s *FeedbackService) Create(ctx context.Context, reviewerID uint, input CreateFeedbackInput) (*models.Feedback, error) {
	if err := validation.ValidateRating(input.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateFeedbackComment(input.Comment); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	swap, err := s.swapRepo.GetByID(ctx, input.SwapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParty(reviewerID) {
		return nil, models.NewUnauthorizedError("You can only review swaps you participated in")
	}
	if swap.Status != models.SwapStatusCompleted {
		return nil, models.NewInvalidStateError("Only completed swaps can be reviewed")
	}

	existing, err := s.feedbackRepo.GetBySwapAndReviewer(ctx, input.SwapID, reviewerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewInvalidStateError("You already reviewed this swap")
	}

	feedback := &models.Feedback{
		SwapID:     input.SwapID,
		ReviewerID: reviewerID,
		ReviewedID: swap.OtherPartyID(reviewerID),
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	cache.InvalidateRatingSummary(ctx, feedback.ReviewedID)

	observability.FeedbackSubmittedTotal.WithLabelValues(strconv.Itoa(feedback.Rating)).Inc()
	return feedback, nil
}

// ListForUser returns all feedback received by the user, newest first.
func (s *FeedbackService) ListForUser(ctx context.Context, userID uint) ([]models.Feedback, error) {
	return s.feedbackRepo.ListForUser(ctx, userID)
}

// RatingSummaryFor aggregates the user's received feedback.
func (s *FeedbackService) RatingSummaryFor(ctx context.Context, userID uint) (*models.RatingSummary, error) {
	return ratingSummary(ctx, s.feedbackRepo, userID)
}

// ratingSummary computes a user's average rating rounded to one decimal.
// A user with no feedback gets a nil average, never zero. Summaries are
// cached briefly and invalidated when new feedback arrives.
func ratingSummary(ctx context.Context, repo repository.FeedbackRepository, userID uint) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	key := cache.RatingSummaryKey(userID)

	err := cache.Aside(ctx, key, &summary, cache.RatingSummaryTTL, func() error {
		feedback, err := repo.ListForUser(ctx, userID)
		if err != nil {
			return err
		}

		summary = models.RatingSummary{Count: len(feedback)}
		if len(feedback) == 0 {
			return nil
		}

		var sum int
		for _, f := range feedback {
			sum += f.Rating
		}
		avg := math.Round(float64(sum)/float64(len(feedback))*10) / 10
		summary.Average = &avg
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &summary, nil
}
