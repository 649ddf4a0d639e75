// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/notifications"
	"skillswap/internal/repository"
	"skillswap/internal/service"
	"skillswap/internal/suggest"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	swapRepo     repository.SwapRepository
	feedbackRepo repository.FeedbackRepository

	notifier *notifications.Notifier

	userService       *service.UserService
	swapService       *service.SwapService
	feedbackService   *service.FeedbackService
	suggestionService *service.SuggestionService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var suggestClient suggest.Client
	if cfg.AnthropicAPIKey != "" {
		client, err := suggest.NewAnthropicClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("suggestion gateway init failed: %w", err)
		}
		suggestClient = client
	}

	return NewServerWithDeps(cfg, db, redisClient, suggestClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding. suggestClient may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, suggestClient suggest.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	prom := middleware.InitMetrics("skillswap-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		swapRepo:       swapRepo,
		feedbackRepo:   feedbackRepo,
	}

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	server.userService = service.NewUserService(userRepo, feedbackRepo)
	server.swapService = service.NewSwapService(swapRepo, userRepo, server.notifier)
	server.feedbackService = service.NewFeedbackService(feedbackRepo, swapRepo)
	server.suggestionService = service.NewSuggestionService(userRepo, suggestClient)

	middleware.InitMiddleware(cfg)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/", s.DiscoverUsers)
	// Specific /:id/:resource routes BEFORE generic /:id route
	users.Get("/:id/feedback", s.GetUserFeedback)
	users.Get("/:id/rating", s.GetUserRating)
	users.Get("/:id", s.GetUserProfile)

	// Swap routes
	swaps := protected.Group("/swaps")
	swaps.Post("/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_swap"), s.CreateSwap)
	swaps.Get("/", s.GetMySwaps)
	swaps.Post("/:id/accept", s.AcceptSwap)
	swaps.Post("/:id/reject", s.RejectSwap)
	swaps.Post("/:id/withdraw", s.WithdrawSwap)
	swaps.Post("/:id/complete", s.CompleteSwap)
	swaps.Delete("/:id", s.RemoveSwapFromInbox)
	swaps.Get("/:id", s.GetSwap)

	// Feedback routes
	feedback := protected.Group("/feedback")
	feedback.Post("/", s.CreateFeedback)

	// Skill suggestion gateway
	protected.Post("/suggestions", middleware.RateLimit(
		s.redis, 5, time.Minute, "suggestions"), s.SuggestSkills)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional; the API degrades to uncached operation.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "SkillSwap API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
