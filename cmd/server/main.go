// Package main is the entry point for the admin API server. It loads
// configuration, connects postgres and redis, and serves the Fiber app.
package main

import (
	"context"
	"log"
	"time"

	"quizadmin/internal/config"
	"quizadmin/internal/repositories"
	"quizadmin/internal/routes"
	"quizadmin/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()
	appLogger := utils.InitLogger()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Periodic connection pool stats for capacity tuning.
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			stats := sqlDB.Stats()
			appLogger.WithFields(map[string]interface{}{
				"open":    stats.OpenConnections,
				"idle":    stats.Idle,
				"in_use":  stats.InUse,
				"waiting": stats.WaitCount,
			}).Debug("db pool stats")
		}
	}()

	// Settings and token-version caches are rebuilt lazily, so a stale cache
	// from a previous deploy can simply be dropped.
	if repositories.CacheService != nil {
		if err := repositories.CacheService.FlushAll(context.Background()); err != nil {
			appLogger.WithError(err).Warn("failed to flush redis cache on startup")
		}
	}

	defer func() {
		if err := sqlDB.Close(); err != nil {
			appLogger.WithError(err).Warn("failed to close database connection")
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				appLogger.WithError(err).Warn("failed to close redis connection")
			}
		}
	}()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "too many login attempts, please try again later",
			})
		},
	}))

	routes.SetupRoutes(app, repositories.DB, appLogger)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
