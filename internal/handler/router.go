package handler

import (
	"law-quiz/internal/config"
	"law-quiz/internal/metrics"
	"law-quiz/internal/middleware"
	"law-quiz/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber app with all routes registered. /metrics is
// served even when the quiz store is unavailable.
func NewApp(cfg config.ServerConfig, h *LawQuizHandler, store *repository.StoreHandle, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(m))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))

	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	app.Use(middleware.RequireStore(store))

	app.Get("/healthz", h.Health)

	apiGroup := app.Group("/api")
	apiGroup.Get("/lawquizzes/latest", h.GetLatest)
	apiGroup.Post("/lawquizzes/new", h.GenerateNew)

	if cfg.StaticDir != "" {
		index := cfg.IndexFile
		if index == "" {
			index = "index.html"
		}
		app.Static("/", cfg.StaticDir, fiber.Static{Index: index})
	}

	return app
}
