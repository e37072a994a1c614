package server

import (
	"errors"
	"log"

	"booknest-be/internal/bootstrap"
	"booknest-be/internal/config"
	"booknest-be/internal/pkg/serverutils"
	"booknest-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    2 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.VaultController.RegisterRoutes(api)
	c.LibraryController.RegisterRoutes(api)
	c.ScanController.RegisterRoutes(api)

	c.StreamHandler.RegisterRoutes(api)
}

// errorHandler maps service error kinds onto HTTP statuses. Anything
// unrecognized is a 500 with the message suppressed.
func errorHandler(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(serverutils.ErrorResponse(fiberErr.Message))
	}

	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidIsbn):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrNoPendingScan):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrLookupFailed),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrInviteInvalid):
		status = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrScanLocked),
		errors.Is(err, service.ErrEmailTaken):
		status = fiber.StatusConflict
		message = err.Error()
	case errors.Is(err, service.ErrSyncFailed):
		status = fiber.StatusServiceUnavailable
		message = err.Error()
	}

	return ctx.Status(status).JSON(serverutils.ErrorResponse(message))
}
