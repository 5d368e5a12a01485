package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/handlers"
	"tasktracker/internal/jobs"
	"tasktracker/internal/logging"
	"tasktracker/internal/middleware"
	"tasktracker/internal/preflight"
	"tasktracker/internal/services"
	"tasktracker/pkg/auth"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	log.Println("🚀 Starting Task Tracker Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init(cfg.Environment)
	log.Printf("📋 Configuration loaded (Port: %s, Environment: %s)", cfg.Port, cfg.Environment)

	// MongoDB
	mongodb, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongodb.Initialize(initCtx); err != nil {
		log.Fatalf("❌ Failed to initialize MongoDB: %v", err)
	}
	cancelInit()

	// Redis is optional; without it rate limits are per instance
	var limiterStorage fiber.Storage
	var redisService *services.RedisService
	if cfg.RedisURL != "" {
		redisService, err = services.NewRedisService(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, using in-memory rate limits: %v", err)
		} else {
			limiterStorage = services.NewRedisStorage(redisService, "tasktracker:ratelimit:")
		}
	}

	var cachePinger preflight.Pinger
	if redisService != nil {
		cachePinger = redisService
	}
	checks := preflight.NewChecker(cfg, mongodb, cachePinger).RunAll(context.Background())
	if preflight.HasFailures(checks) {
		log.Fatal("❌ Pre-flight checks failed")
	}

	jwtAuth, err := auth.NewLocalJWTAuth(cfg.JWTSecret, cfg.TokenExpiry)
	if err != nil {
		log.Fatalf("❌ Failed to initialize JWT authentication: %v", err)
	}

	// Stores and services
	taskStore := services.NewTaskStore(mongodb)
	projectStore := services.NewProjectStore(mongodb)
	userStore := services.NewUserStore(mongodb)
	commentStore := services.NewCommentStore(mongodb)
	historyStore := services.NewHistoryStore(mongodb)
	notificationStore := services.NewNotificationStore(mongodb)

	metrics := services.NewMetrics(prometheus.DefaultRegisterer)
	resolver := services.NewReferenceResolver(projectStore, userStore, cfg.UserCacheTTL)

	userService := services.NewUserService(userStore, jwtAuth)
	taskService := services.NewTaskService(taskStore, historyStore, notificationStore, resolver, metrics)
	reportService := services.NewReportService(taskStore, projectStore, userStore)

	h := &handlers.Handlers{
		Auth:          handlers.NewLocalAuthHandler(userService),
		Tasks:         handlers.NewTaskHandler(taskService, reportService),
		Export:        handlers.NewExportHandler(taskService),
		Projects:      handlers.NewProjectHandler(services.NewProjectService(projectStore)),
		Comments:      handlers.NewCommentHandler(services.NewCommentService(commentStore, resolver)),
		History:       handlers.NewHistoryHandler(services.NewHistoryService(historyStore, resolver)),
		Notifications: handlers.NewNotificationHandler(services.NewNotificationService(notificationStore)),
		Users:         handlers.NewUserHandler(userService),
		Reports:       handlers.NewReportHandler(reportService),
	}

	// Background jobs
	jobScheduler, err := jobs.NewJobScheduler()
	if err != nil {
		log.Fatalf("❌ Failed to create job scheduler: %v", err)
	}
	if err := jobScheduler.Register(jobs.StatsRefreshJobName, cfg.StatsRefreshCron, jobs.NewStatsRefreshJob(taskStore, metrics)); err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := jobScheduler.RunNow(jobs.StatsRefreshJobName); err != nil {
		log.Printf("⚠️  Initial stats refresh failed: %v", err)
	}
	jobScheduler.Start()

	app := fiber.New(fiber.Config{
		AppName:      "Task Tracker",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: logging.RequestIDKey,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// Prometheus metrics middleware
	prom := fiberprometheus.New("tasktracker")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	// Fiber's CORS middleware does not allow AllowCredentials with wildcard origins
	allowCredentials := cfg.AllowedOrigins != "*"
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: allowCredentials,
	}))
	log.Printf("🔒 [SECURITY] CORS allowed origins: %s", cfg.AllowedOrigins)

	rateLimitConfig := middleware.NewRateLimitConfig(cfg, limiterStorage)
	log.Printf("🛡️  [RATE-LIMIT] Loaded config: Global=%d/min, Auth=%d/min, Redis=%t",
		rateLimitConfig.GlobalAPIMax, rateLimitConfig.AuthMax, limiterStorage != nil)

	app.Get("/health", handlers.NewHealthHandler(mongodb).Handle)

	// Global API rate limiter, excludes health checks and metrics
	app.Use("/api", middleware.GlobalAPIRateLimiter(rateLimitConfig))

	handlers.RegisterRoutes(
		app.Group("/api"),
		h,
		middleware.LocalAuthMiddleware(jwtAuth, userService),
		middleware.AuthRateLimiter(rateLimitConfig),
	)

	if cfg.ServeFrontend {
		serveFrontend(app, cfg.FrontendDir)
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		if err := jobScheduler.Stop(); err != nil {
			log.Printf("⚠️ Error stopping job scheduler: %v", err)
		}

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}

		if redisService != nil {
			if err := redisService.Close(); err != nil {
				log.Printf("⚠️ Error closing Redis: %v", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongodb.Close(ctx); err != nil {
			log.Printf("⚠️ Error closing MongoDB: %v", err)
		}
	}()

	log.Printf("✅ Server ready on port %s", cfg.Port)
	log.Printf("📡 Health check: http://localhost:%s/health", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// serveFrontend serves the built client with an index.html fallback for
// client-side routes.
func serveFrontend(app *fiber.App, frontendDir string) {
	if _, err := os.Stat(frontendDir); err != nil {
		log.Printf("⚠️  SERVE_FRONTEND=true but directory %s not found", frontendDir)
		return
	}

	app.Static("/", frontendDir, fiber.Static{
		Compress:      true,
		CacheDuration: 24 * time.Hour,
	})
	app.Get("/*", func(c *fiber.Ctx) error {
		path := c.Path()
		if strings.HasPrefix(path, "/api/") || path == "/health" || path == "/metrics" {
			return c.Next()
		}
		return c.SendFile(filepath.Join(frontendDir, "index.html"))
	})
	log.Printf("🌐 Frontend serving from %s", frontendDir)
}
