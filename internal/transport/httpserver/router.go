// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/begengineer/quickfit/internal/app/service"
	"github.com/begengineer/quickfit/internal/transport/httpserver/handler"
	"github.com/begengineer/quickfit/internal/transport/httpserver/middleware"
	"github.com/begengineer/quickfit/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port       int
	BodyLimit  int
	CronSecret string
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	videoSvc *service.VideoService,
	curationSvc *service.CurationService,
	db *gorm.DB,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "quickfit",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(db))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(cors.New())
	app.Use(compress.New())

	videoHandler := handler.NewVideoHandler(videoSvc, v, logger)
	cronHandler := handler.NewCronHandler(curationSvc, logger)

	registerRoutes(app, videoHandler, cronHandler, cfg.CronSecret)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	videoHandler *handler.VideoHandler,
	cronHandler *handler.CronHandler,
	cronSecret string,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	v1 := app.Group("/api/v1")

	// Videos
	videos := v1.Group("/videos")
	videos.Get("/", videoHandler.GetVideo)
	videos.Get("/stats", videoHandler.GetStats)

	// Scheduled maintenance, gated by a shared secret
	cron := v1.Group("/cron", middleware.BearerAuth(cronSecret))
	cron.Get("/update-videos", cronHandler.UpdateVideos)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
