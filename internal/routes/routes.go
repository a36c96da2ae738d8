// Package routes wires repositories, services, and handlers into the Fiber
// route tree.
package routes

import (
	"log"

	"quizadmin/internal/config"
	"quizadmin/internal/handlers"
	"quizadmin/internal/middleware"
	"quizadmin/internal/models"
	"quizadmin/internal/repositories"
	"quizadmin/internal/repositories/cache"
	"quizadmin/internal/services/auth"
	"quizadmin/internal/services/conversion"
	"quizadmin/internal/services/notification"
	"quizadmin/internal/services/settings"
	"quizadmin/internal/services/withdrawal"
	"quizadmin/internal/storage"
	"quizadmin/internal/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes, grouped by resource, with
// the admin auth middleware on everything behind /api/admin.
func SetupRoutes(app *fiber.App, db *gorm.DB, appLogger *utils.Logger) {
	// Repositories
	adminRepo := repositories.NewAdminRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	quizRepo := repositories.NewQuizRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	bannerRepo := repositories.NewBannerRepository(db)
	userRepo := repositories.NewUserRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRequestRepository(db)
	historyRepo := repositories.NewBalanceHistoryRepository(db)
	tokenRepo := repositories.NewDeviceTokenRepository(db)

	// Services
	authService := auth.NewService(adminRepo, repositories.CacheService)

	conversionSettings := settings.NewService[models.CoinConversionSetting, *models.CoinConversionSetting](
		settings.NewGormStore[models.CoinConversionSetting, *models.CoinConversionSetting](db),
		repositories.CacheService,
		cache.ActiveSettingKey("coin_conversion_settings"),
	)
	withdrawalSettings := settings.NewService[models.WithdrawalSetting, *models.WithdrawalSetting](
		settings.NewGormStore[models.WithdrawalSetting, *models.WithdrawalSetting](db),
		repositories.CacheService,
		cache.ActiveSettingKey("withdrawal_settings"),
	)

	conversionService := conversion.NewService(conversion.NewGormStore(db), conversionSettings, appLogger.Logger)
	withdrawalService := withdrawal.NewService(withdrawal.NewGormStore(db), withdrawalSettings, appLogger.Logger)
	notificationService := notification.NewService(tokenRepo, notification.Config{
		CredentialsPath: config.GetEnv("FCM_CREDENTIALS_PATH", "service-account.json"),
	}, appLogger.Logger)

	uploadStore, err := storage.NewLocalStore(
		config.GetEnv("UPLOAD_DIR", "./uploads"),
		config.GetEnv("UPLOAD_URL_PREFIX", "/uploads"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, uploadStore)
	quizHandler := handlers.NewQuizHandler(quizRepo, categoryRepo, uploadStore)
	questionHandler := handlers.NewQuestionHandler(questionRepo, quizRepo, uploadStore)
	bannerHandler := handlers.NewBannerHandler(bannerRepo, uploadStore)
	userHandler := handlers.NewUserHandler(userRepo, conversionService, historyRepo, tokenRepo)
	conversionSettingsHandler := handlers.NewCoinConversionSettingsHandler(conversionSettings)
	withdrawalSettingsHandler := handlers.NewWithdrawalSettingsHandler(withdrawalSettings)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService, withdrawalRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	uploadHandler := handlers.NewUploadHandler(uploadStore)
	healthHandler := handlers.NewHealthHandler(db)

	app.Get("/health", healthHandler.Check)
	app.Static(config.GetEnv("UPLOAD_URL_PREFIX", "/uploads"), config.GetEnv("UPLOAD_DIR", "./uploads"))

	api := app.Group("/api")

	// Public endpoints
	api.Post("/admin/login", authHandler.Login)
	api.Post("/admin/refresh", authHandler.Refresh)

	// Everything else requires an authenticated admin
	admin := api.Group("/admin", middleware.AdminAuth(authService))

	admin.Post("/logout", authHandler.Logout)
	admin.Get("/me", authHandler.Me)

	categories := admin.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/reorder", categoryHandler.Reorder)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	quizzes := admin.Group("/quizzes")
	quizzes.Get("/", quizHandler.List)
	quizzes.Post("/", quizHandler.Create)
	quizzes.Put("/reorder", quizHandler.Reorder)
	quizzes.Get("/:id", quizHandler.Get)
	quizzes.Put("/:id", quizHandler.Update)
	quizzes.Delete("/:id", quizHandler.Delete)

	questions := admin.Group("/questions")
	questions.Get("/", questionHandler.List)
	questions.Post("/", questionHandler.Create)
	questions.Post("/import", questionHandler.Import)
	questions.Put("/reorder", questionHandler.Reorder)
	questions.Get("/:id", questionHandler.Get)
	questions.Put("/:id", questionHandler.Update)
	questions.Delete("/:id", questionHandler.Delete)

	banners := admin.Group("/banners")
	banners.Get("/", bannerHandler.List)
	banners.Post("/", bannerHandler.Create)
	banners.Put("/reorder", bannerHandler.Reorder)
	banners.Get("/:id", bannerHandler.Get)
	banners.Put("/:id", bannerHandler.Update)
	banners.Delete("/:id", bannerHandler.Delete)

	users := admin.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/convert", userHandler.Convert)
	users.Get("/:id/balance-history", userHandler.BalanceHistory)
	users.Post("/:id/device-tokens", userHandler.RegisterDeviceToken)

	conversionGroup := admin.Group("/settings/coin-conversion")
	conversionGroup.Get("/", conversionSettingsHandler.List)
	conversionGroup.Post("/", conversionSettingsHandler.Create)
	conversionGroup.Get("/active", conversionSettingsHandler.GetActive)
	conversionGroup.Get("/:id", conversionSettingsHandler.Get)
	conversionGroup.Put("/:id", conversionSettingsHandler.Update)
	conversionGroup.Patch("/:id/toggle", conversionSettingsHandler.Toggle)
	conversionGroup.Delete("/:id", conversionSettingsHandler.Delete)

	withdrawalSettingsGroup := admin.Group("/settings/withdrawal")
	withdrawalSettingsGroup.Get("/", withdrawalSettingsHandler.List)
	withdrawalSettingsGroup.Post("/", withdrawalSettingsHandler.Create)
	withdrawalSettingsGroup.Get("/active", withdrawalSettingsHandler.GetActive)
	withdrawalSettingsGroup.Get("/:id", withdrawalSettingsHandler.Get)
	withdrawalSettingsGroup.Put("/:id", withdrawalSettingsHandler.Update)
	withdrawalSettingsGroup.Patch("/:id/toggle", withdrawalSettingsHandler.Toggle)
	withdrawalSettingsGroup.Delete("/:id", withdrawalSettingsHandler.Delete)

	withdrawals := admin.Group("/withdrawals")
	withdrawals.Get("/", withdrawalHandler.List)
	withdrawals.Post("/", withdrawalHandler.Create)
	withdrawals.Get("/:id", withdrawalHandler.Get)
	withdrawals.Put("/:id/status", withdrawalHandler.UpdateStatus)

	admin.Post("/notifications", notificationHandler.Send)
	admin.Post("/uploads", uploadHandler.Upload)
}
