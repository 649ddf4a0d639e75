package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	var req service.CreateSwapInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	swap, err := s.swapService.Create(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetMySwaps handles GET /api/swaps
func (s *Server) GetMySwaps(c *fiber.Ctx) error {
	views, err := s.swapService.ListForUser(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"swaps": views})
}

// GetSwap handles GET /api/swaps/:id
func (s *Server) GetSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.GetByID(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// AcceptSwap handles POST /api/swaps/:id/accept
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	return s.respond(c, true)
}

// RejectSwap handles POST /api/swaps/:id/reject
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	return s.respond(c, false)
}

func (s *Server) respond(c *fiber.Ctx, accept bool) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Respond(c.Context(), currentUserID(c), id, accept)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// WithdrawSwap handles POST /api/swaps/:id/withdraw
func (s *Server) WithdrawSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Withdraw(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// CompleteSwap handles POST /api/swaps/:id/complete
func (s *Server) CompleteSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Complete(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// RemoveSwapFromInbox handles DELETE /api/swaps/:id
func (s *Server) RemoveSwapFromInbox(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.swapService.RemoveFromInbox(c.Context(), currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
