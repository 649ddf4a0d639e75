package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"
	"skillswap/internal/suggest"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.SwapRequest{},
		&models.Feedback{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newTestServer wires a Server directly from a test database, skipping
// metrics middleware registration so tests can build servers repeatedly.
func newTestServer(db *gorm.DB, suggestClient suggest.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	s := &Server{
		config:       &config.Config{JWTSecret: "test_jwt_secret"},
		db:           db,
		userRepo:     userRepo,
		swapRepo:     swapRepo,
		feedbackRepo: feedbackRepo,
	}
	s.userService = service.NewUserService(userRepo, feedbackRepo)
	s.swapService = service.NewSwapService(swapRepo, userRepo, nil)
	s.feedbackService = service.NewFeedbackService(feedbackRepo, swapRepo)
	s.suggestionService = service.NewSuggestionService(userRepo, suggestClient)
	return s
}

// authedApp registers the API routes behind a stub auth middleware that
// injects the given user ID, mirroring what AuthRequired does after
// verifying a token.
func authedApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})

	app.Get("/api/users/me", s.GetMyProfile)
	app.Put("/api/users/me", s.UpdateMyProfile)
	app.Get("/api/users/", s.DiscoverUsers)
	app.Get("/api/users/:id/feedback", s.GetUserFeedback)
	app.Get("/api/users/:id/rating", s.GetUserRating)
	app.Get("/api/users/:id", s.GetUserProfile)

	app.Post("/api/swaps/", s.CreateSwap)
	app.Get("/api/swaps/", s.GetMySwaps)
	app.Post("/api/swaps/:id/accept", s.AcceptSwap)
	app.Post("/api/swaps/:id/reject", s.RejectSwap)
	app.Post("/api/swaps/:id/withdraw", s.WithdrawSwap)
	app.Post("/api/swaps/:id/complete", s.CompleteSwap)
	app.Delete("/api/swaps/:id", s.RemoveSwapFromInbox)
	app.Get("/api/swaps/:id", s.GetSwap)

	app.Post("/api/feedback/", s.CreateFeedback)
	app.Post("/api/suggestions", s.SuggestSkills)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createTestUser(t *testing.T, db *gorm.DB, name string, offered, wanted []string, availability string, status models.ProfileStatus) *models.User {
	t.Helper()
	user := &models.User{
		Name:          name,
		Email:         name + "@example.com",
		Password:      "not-a-real-hash",
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		Availability:  availability,
		ProfileStatus: status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}
