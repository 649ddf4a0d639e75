package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DiscoverUsers handles GET /api/users
//
// Query parameters: skill (substring filter), availability ("all" disables
// the filter), page (1-based).
func (s *Server) DiscoverUsers(c *fiber.Ctx) error {
	page, err := s.userService.Discover(c.Context(), service.DiscoverInput{
		ViewerID:     currentUserID(c),
		Skill:        c.Query("skill"),
		Availability: c.Query("availability"),
		Page:         c.QueryInt("page", 1),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	rating, err := s.userService.RatingSummaryFor(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":   user,
		"rating": rating,
	})
}

// GetUserFeedback handles GET /api/users/:id/feedback
func (s *Server) GetUserFeedback(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	feedback, err := s.feedbackService.ListForUser(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"feedback": feedback})
}

// GetUserRating handles GET /api/users/:id/rating
func (s *Server) GetUserRating(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	rating, err := s.userService.RatingSummaryFor(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rating)
}
