package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateFeedback handles POST /api/feedback
func (s *Server) CreateFeedback(c *fiber.Ctx) error {
	var req service.CreateFeedbackInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	feedback, err := s.feedbackService.Create(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(feedback)
}
