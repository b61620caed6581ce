package server

import (
	"log"
	"strconv"
	"time"

	"persona-replicator-be/internal/bootstrap"
	"persona-replicator-be/internal/config"
	"persona-replicator-be/internal/pkg/serverutils"
	"persona-replicator-be/pkg/metrics"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024, // 10MB, ingest uploads
		ErrorHandler: serverutils.NewErrorHandler(container.Logger),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(otelfiber.Middleware())
	app.Use(requestDuration())

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{
			"llm_provider": container.ProviderName,
			"configured":   container.LLMConfigured,
		}))
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

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

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.PersonaController.RegisterRoutes(api)
	c.ReplyController.RegisterRoutes(api)
	c.ChatController.RegisterRoutes(api)
	c.ActivityController.RegisterRoutes(api)
	c.ThreadController.RegisterRoutes(api)
	c.MessageController.RegisterRoutes(api)
}

// requestDuration labels latency by route template, not raw path.
func requestDuration() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if ferr, ok := err.(*fiber.Error); ok {
				status = ferr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		metrics.HTTPRequestDuration.
			WithLabelValues(ctx.Method(), ctx.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}
