// server.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aidul23/agent-mem/pkg/config"
	"github.com/aidul23/agent-mem/pkg/httpx"
	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Failed to load configuration: %v", err)
	}

	logx.SetLevel(logx.ParseLevel(cfg.Server.LogLevel))

	logx.Info("Starting agent-mem server...")
	logx.Infof("Environment: %s", cfg.Environment)

	container := NewContainer(cfg)
	defer container.Cleanup()

	app := fiber.New(fiber.Config{
		AppName:               "agent-mem",
		DisableStartupMessage: true,
		ErrorHandler:          httpx.ErrorHandler(cfg.IsDevelopment()),
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		IdleTimeout:           120 * time.Second,
	})

	setupMiddleware(app, cfg)

	app.Get("/health", healthCheckHandler(container))
	app.Get("/", infoHandler(cfg))

	registerRoutes(app, container)

	app.Use(notFoundHandler)

	printRouteSummary()

	startServer(app, cfg)
}

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.IsDevelopment(),
	}))

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	corsOrigins := "*"
	if len(cfg.Server.CORSOrigins) > 0 {
		corsOrigins = strings.Join(cfg.Server.CORSOrigins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  corsOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, OPTIONS",
		ExposeHeaders: "X-Request-ID",
	}))

	logFormat := "${time} | ${status} | ${latency} | ${method} ${path}"
	if cfg.IsDevelopment() {
		logFormat += " | ${ip} | ${reqHeader:X-Request-ID}\n"
	} else {
		logFormat += "\n"
	}
	app.Use(logger.New(logger.Config{
		Format:     logFormat,
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))
}

func registerRoutes(app *fiber.App, container *Container) {
	// /consent, /user/:user_id/status
	container.ProfileHandlers.RegisterRoutes(app)

	// /chat
	container.ChatHandlers.RegisterRoutes(app)

	// /api/v1/documents, /rules, /reflections, /outdated, /memories/recall
	container.MemoryHandlers.RegisterRoutes(app, container.AuthMiddleware)

	logx.Info("Routes registered")
}

func healthCheckHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		health := fiber.Map{
			"status":    "ok",
			"service":   "agent-mem",
			"backend":   string(container.Config.Memory.Backend),
			"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
		}

		for name, err := range container.HealthCheck(ctx) {
			if err != nil {
				health[name] = "unhealthy"
				health[name+"_error"] = err.Error()
				health["status"] = "degraded"
			} else {
				health[name] = "healthy"
			}
		}

		status := fiber.StatusOK
		if health["status"] == "degraded" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(health)
	}
}

func infoHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode := "simple"
		if cfg.Memory.EnterpriseMode {
			mode = "enterprise"
		}
		return c.JSON(fiber.Map{
			"service":        "agent-mem",
			"description":    "Chat agent with consent-gated long-term memory",
			"environment":    string(cfg.Environment),
			"mode":           mode,
			"company_id":     cfg.Memory.CompanyID,
			"memory_backend": string(cfg.Memory.Backend),
			"auth_enabled":   cfg.Auth.Enabled,
			"endpoints": fiber.Map{
				"health":    "GET /health",
				"consent":   "POST /consent",
				"chat":      "POST /chat",
				"status":    "GET /user/:user_id/status",
				"documents": "POST /api/v1/documents",
				"rules":     "PUT /api/v1/rules/:rule_id",
				"reflect":   "POST /api/v1/reflections",
				"outdated":  "GET /api/v1/outdated?topic=",
				"recall":    "POST /api/v1/memories/recall",
			},
		})
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": c.Get(fiber.HeaderXRequestID),
	})
}

func printRouteSummary() {
	logx.Info("Route Summary:")
	logx.Info("   ├─ Health: /health")
	logx.Info("   ├─ Info: /")
	logx.Info("   ├─ Consent: /consent, /user/:user_id/status")
	logx.Info("   ├─ Chat: /chat")
	logx.Info("   └─ Knowledge base: /api/v1/*")
}

// startServer listens in the background and blocks until a shutdown signal
func startServer(app *fiber.App, cfg *config.Config) {
	port := fmt.Sprintf("%d", cfg.Server.Port)

	go func() {
		logx.Infof("Server listening on port %s", port)
		logx.Infof("Health Check: http://localhost:%s/health", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	gracefulShutdown(app)
}

func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logx.Infof("Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}
