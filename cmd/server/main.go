package main

import (
	"fmt"
	"os"

	"github.com/recipebox/backend-go/internal/api"
	"github.com/recipebox/backend-go/internal/config"
	"github.com/recipebox/backend-go/internal/database"
	"github.com/recipebox/backend-go/internal/database/repository"
	"github.com/recipebox/backend-go/internal/database/service"
	"github.com/recipebox/backend-go/internal/handler"
	"github.com/recipebox/backend-go/internal/logger"
	"github.com/recipebox/backend-go/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting recipe API...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// 5. Initialize Rate Limiter
	var rateLimiter middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	} else {
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg, appLogger)
	}
	defer rateLimiter.Close()

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg, appLogger)
	userService := service.NewUserService(userRepo, appLogger)
	recipeService := service.NewRecipeService(recipeRepo, cfg, appLogger)
	tagService := service.NewTagService(tagRepo, appLogger)
	ingredientService := service.NewIngredientService(ingredientRepo, appLogger)
	eventService := service.NewEventService(eventRepo, recipeRepo, appLogger)

	// 7. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, appLogger)
	userHandler := handler.NewUserHandler(userService, appLogger)
	recipeHandler := handler.NewRecipeHandler(recipeService, appLogger)
	tagHandler := handler.NewTagHandler(tagService, appLogger)
	ingredientHandler := handler.NewIngredientHandler(ingredientService, appLogger)
	eventHandler := handler.NewEventHandler(eventService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo, appLogger)

	// 8. Setup Router and start HTTP server
	r := api.SetupRouter(
		authHandler,
		userHandler,
		recipeHandler,
		tagHandler,
		ingredientHandler,
		eventHandler,
		authMiddleware,
		rateLimiter,
		appLogger,
	)

	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
