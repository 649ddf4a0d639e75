// Package service provides business logic for users, swaps, feedback, and
// skill suggestions.
package service

import (
	"context"
	"errors"

	"skillswap/internal/models"
	"skillswap/internal/notifications"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// SwapService owns the swap request lifecycle. All status transitions go
// through a compare-and-swap update keyed on the expected current status, so
// two concurrent responders cannot both win.
type SwapService struct {
	swapRepo repository.SwapRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

// NewSwapService returns a new SwapService. notifier may be backed by a nil
// Redis client, in which case event publishing is a no-op.
func NewSwapService(swapRepo repository.SwapRepository, userRepo repository.UserRepository, notifier *notifications.Notifier) *SwapService {
	return &SwapService{
		swapRepo: swapRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// CreateSwapInput carries the fields needed to create a swap request.
type CreateSwapInput struct {
	ResponderID  uint   `json:"responder_id"`
	OfferedSkill string `json:"offered_skill"`
	WantedSkill  string `json:"wanted_skill"`
	Message      string `json:"message"`
}

// Create validates and persists a new pending swap request from requesterID.
// Nothing is persisted when any validation fails.
func (s *SwapService) Create(ctx context.Context, requesterID uint, input CreateSwapInput) (*models.SwapRequest, error) {
	if requesterID == input.ResponderID {
		return nil, models.NewValidationError("Cannot request a swap with yourself")
	}
	if err := validation.ValidateSwapMessage(input.Message); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	responder, err := s.userRepo.GetByID(ctx, input.ResponderID)
	if err != nil {
		return nil, err
	}

	if !requester.OffersSkill(input.OfferedSkill) {
		return nil, models.NewValidationError("Offered skill is not in your skill list")
	}
	if !responder.OffersSkill(input.WantedSkill) {
		return nil, models.NewValidationError("Wanted skill is not offered by the other user")
	}

	swap := &models.SwapRequest{
		RequesterID:  requesterID,
		ResponderID:  input.ResponderID,
		OfferedSkill: input.OfferedSkill,
		WantedSkill:  input.WantedSkill,
		Message:      input.Message,
		Status:       models.SwapStatusPending,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}

	observability.RecordSwapTransition(string(models.SwapStatusPending))
	s.publishEvent(ctx, swap, requesterID)
	return swap, nil
}

// Respond accepts or rejects a pending swap request. Only the responder may
// respond, and only while the request is still pending.
func (s *SwapService) Respond(ctx context.Context, userID, swapID uint, accept bool) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.ResponderID != userID {
		return nil, models.NewUnauthorizedError("Only the responder can respond to a swap request")
	}
	if swap.Status != models.SwapStatusPending {
		return nil, models.NewInvalidStateError("Swap request is no longer pending")
	}

	to := models.SwapStatusRejected
	if accept {
		to = models.SwapStatusAccepted
	}
	return s.transition(ctx, swap, models.SwapStatusPending, to, userID)
}

// Withdraw cancels a pending swap request. Only the requester may withdraw.
// The withdrawn request is also removed from the requester's inbox.
func (s *SwapService) Withdraw(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.RequesterID != userID {
		return nil, models.NewUnauthorizedError("Only the requester can withdraw a swap request")
	}
	if swap.Status != models.SwapStatusPending {
		return nil, models.NewInvalidStateError("Only pending swap requests can be withdrawn")
	}

	swap, err = s.transition(ctx, swap, models.SwapStatusPending, models.SwapStatusDeleted, userID)
	if err != nil {
		return nil, err
	}
	if err := s.swapRepo.SetHidden(ctx, swapID, true); err != nil {
		return nil, err
	}
	swap.RequesterHidden = true
	return swap, nil
}

// Complete marks an accepted swap as completed. Either party may complete.
func (s *SwapService) Complete(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParty(userID) {
		return nil, models.NewUnauthorizedError("Only a participant can complete a swap")
	}
	if swap.Status != models.SwapStatusAccepted {
		return nil, models.NewInvalidStateError("Only accepted swaps can be completed")
	}

	return s.transition(ctx, swap, models.SwapStatusAccepted, models.SwapStatusCompleted, userID)
}

// RemoveFromInbox hides a swap from the acting party's inbox. Terminal swaps
// are hidden in place. A pending swap removed by its requester is withdrawn
// first, so removal and withdrawal stay consistent. Accepted swaps cannot be
// removed; they must be completed.
func (s *SwapService) RemoveFromInbox(ctx context.Context, userID, swapID uint) error {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return err
	}
	if !swap.IsParty(userID) {
		return models.NewUnauthorizedError("You are not a participant in this swap")
	}

	switch {
	case swap.Status.Terminal():
		return s.swapRepo.SetHidden(ctx, swapID, userID == swap.RequesterID)
	case swap.Status == models.SwapStatusPending && userID == swap.RequesterID:
		_, err := s.Withdraw(ctx, userID, swapID)
		return err
	default:
		return models.NewInvalidStateError("Swap cannot be removed in its current state")
	}
}

// GetByID returns a swap visible to the given participant.
func (s *SwapService) GetByID(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParty(userID) {
		return nil, models.NewUnauthorizedError("You are not a participant in this swap")
	}
	return swap, nil
}

// ListForUser returns the user's inbox rendered from their perspective,
// newest first. Swaps whose counterparty no longer exists are marked invalid
// rather than dropped, so the user can still remove them.
func (s *SwapService) ListForUser(ctx context.Context, userID uint) ([]models.SwapView, error) {
	swaps, err := s.swapRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.SwapView, 0, len(swaps))
	for _, swap := range swaps {
		view := models.SwapView{Swap: swap, Direction: "incoming"}
		if swap.RequesterID == userID {
			view.Direction = "outgoing"
		}

		other, err := s.userRepo.GetByID(ctx, swap.OtherPartyID(userID))
		switch {
		case err == nil:
			summary := other.Summary()
			view.OtherUser = &summary
		case isNotFound(err):
			view.Invalid = true
		default:
			return nil, err
		}

		views = append(views, view)
	}
	return views, nil
}

// transition performs the compare-and-swap status update and emits the event
// and metric on success. A lost race surfaces as an invalid-state error.
func (s *SwapService) transition(ctx context.Context, swap *models.SwapRequest, from, to models.SwapStatus, actorID uint) (*models.SwapRequest, error) {
	ok, err := s.swapRepo.UpdateStatusCAS(ctx, swap.ID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		observability.SwapConflictsTotal.Inc()
		return nil, models.NewInvalidStateError("Swap request was updated concurrently")
	}

	swap.Status = to
	observability.RecordSwapTransition(string(to))
	s.publishEvent(ctx, swap, actorID)
	return swap, nil
}

func (s *SwapService) publishEvent(ctx context.Context, swap *models.SwapRequest, actorID uint) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.PublishSwapEvent(ctx, notifications.SwapEvent{
		SwapID:      swap.ID,
		Status:      string(swap.Status),
		ActorID:     actorID,
		RequesterID: swap.RequesterID,
		ResponderID: swap.ResponderID,
	})
}

func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}
