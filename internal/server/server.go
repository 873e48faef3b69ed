package server

import (
	"context"
	"log"
	"time"

	"drama-llm-be/internal/bootstrap"
	"drama-llm-be/internal/config"
	"drama-llm-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	gocache "github.com/patrickmn/go-cache"
)

const healthCacheKey = "db_ping"

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container

	// Caches the DB ping so health probes cannot stampede the pool.
	healthCache *gocache.Cache
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.RequestLoggerMiddleware(container.Logger))
	app.Use(container.ErrorHandlerMiddleware)

	s := &Server{
		app:         app,
		cfg:         cfg,
		container:   container,
		healthCache: gocache.New(5*time.Second, 30*time.Second),
	}

	s.registerRoutes()

	return s
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.healthHandler)
	s.app.Get("/api", s.apiInfoHandler)

	api := s.app.Group("/api")

	c := s.container
	c.AuthController.RegisterRoutes(api, c.AuthMiddleware)
	c.ConversationController.RegisterRoutes(api, c.AuthMiddleware, c.OwnershipMiddleware)
	c.MessageController.RegisterRoutes(api, c.AuthMiddleware, c.OwnershipMiddleware)
}

func (s *Server) healthHandler(ctx *fiber.Ctx) error {
	dbOK := s.pingDatabase(ctx.UserContext())

	status := "ok"
	dbStatus := "connected"
	code := fiber.StatusOK
	if !dbOK {
		status = "degraded"
		dbStatus = "disconnected"
		code = fiber.StatusServiceUnavailable
	}

	return ctx.Status(code).JSON(fiber.Map{
		"status":    status,
		"service":   "drama-llm-api",
		"timestamp": time.Now().Format(time.RFC3339),
		"database":  dbStatus,
	})
}

func (s *Server) pingDatabase(ctx context.Context) bool {
	if cached, found := s.healthCache.Get(healthCacheKey); found {
		return cached.(bool)
	}

	ok := false
	if sqlDB, err := s.container.DB.DB(); err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		ok = sqlDB.PingContext(pingCtx) == nil
	}

	s.healthCache.Set(healthCacheKey, ok, gocache.DefaultExpiration)
	return ok
}

func (s *Server) apiInfoHandler(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"name":    "drama-llm-api",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"auth":          "/api/auth",
			"conversations": "/api/conversations",
			"health":        "/health",
		},
	})
}
