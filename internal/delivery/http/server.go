package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/config"
	"github.com/greasemeter/place-index/internal/delivery/http/handler"
	"github.com/greasemeter/place-index/internal/delivery/http/middleware"
)

// Server - HTTP server built on Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	sessionHandler  *handler.SessionHandler
	viewportHandler *handler.ViewportHandler
	suggestHandler  *handler.SuggestHandler
	placeHandler    *handler.PlaceHandler
	reviewHandler   *handler.ReviewHandler
	bookmarkHandler *handler.BookmarkHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessionHandler *handler.SessionHandler,
	viewportHandler *handler.ViewportHandler,
	suggestHandler *handler.SuggestHandler,
	placeHandler *handler.PlaceHandler,
	reviewHandler *handler.ReviewHandler,
	bookmarkHandler *handler.BookmarkHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Place Index Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		sessionHandler:  sessionHandler,
		viewportHandler: viewportHandler,
		suggestHandler:  suggestHandler,
		placeHandler:    placeHandler,
		reviewHandler:   reviewHandler,
		bookmarkHandler: bookmarkHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Session routes
	api.Post("/sessions", s.sessionHandler.Create)
	api.Delete("/sessions/:id", s.sessionHandler.Delete)

	// Viewport routes
	api.Get("/viewport/markers", s.viewportHandler.GetMarkers)

	// Search routes
	api.Get("/search/suggest", s.suggestHandler.Suggest)

	// Place routes; the static recommend route goes before the :id routes
	api.Post("/places/recommend", s.bookmarkHandler.RecommendPlace)
	api.Get("/places/:id", s.placeHandler.GetPlace)
	api.Get("/places/:id/resolve", s.placeHandler.ResolvePlace)

	// Review routes
	api.Get("/places/:id/reviews", s.reviewHandler.ListReviews)
	api.Post("/places/:id/reviews", s.reviewHandler.CreateReview)

	// Bookmark routes
	api.Post("/places/:id/bookmarks", s.bookmarkHandler.AddBookmark)
	api.Get("/my/bookmarks", s.bookmarkHandler.ListBookmarks)
	api.Delete("/my/bookmarks/:id", s.bookmarkHandler.DeleteBookmark)
}

// Start - run the HTTP server
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
