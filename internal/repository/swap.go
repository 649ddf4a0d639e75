// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapRepository defines persistence operations for swap requests.
type SwapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	// ListForUser returns every swap where the user is a party and which the
	// user has not removed from their inbox, newest first.
	ListForUser(ctx context.Context, userID uint) ([]models.SwapRequest, error)
	// UpdateStatusCAS transitions status from -> to only when the stored
	// status still equals from. Returns false when the compare-and-swap lost,
	// so racing transitions fail instead of silently overwriting each other.
	UpdateStatusCAS(ctx context.Context, swapID uint, from, to models.SwapStatus) (bool, error)
	// SetHidden flags the swap as removed from one party's inbox. The flag is
	// per party; the other inbox is unaffected.
	SetHidden(ctx context.Context, swapID uint, forRequester bool) error
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository returns a new SwapRepository implementation.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

func (r *swapRepository) ListForUser(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND requester_hidden = ?) OR (responder_id = ? AND responder_hidden = ?)",
			userID, false, userID, false).
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) UpdateStatusCAS(ctx context.Context, swapID uint, from, to models.SwapStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND status = ?", swapID, from).
		Update("status", to)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *swapRepository) SetHidden(ctx context.Context, swapID uint, forRequester bool) error {
	column := "responder_hidden"
	if forRequester {
		column = "requester_hidden"
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ?", swapID).
		Update(column, true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
