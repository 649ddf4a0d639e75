package server

import (
	"skillswap/internal/models"
	"skillswap/internal/suggest"

	"github.com/gofiber/fiber/v2"
)

// SuggestSkills handles POST /api/suggestions
//
// The request body may override the profile's skill lists; missing lists fall
// back to the stored profile. Gateway failures return 502 with a retryable
// error body so clients can offer a retry.
func (s *Server) SuggestSkills(c *fiber.Ctx) error {
	var req suggest.Input
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	out, err := s.suggestionService.SuggestForUser(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
