package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend-go/internal/handler"
	"github.com/recipebox/backend-go/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	recipeHandler *handler.RecipeHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
	eventHandler *handler.EventHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter middleware.RateLimiter,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Public routes
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (Public)
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.RefreshToken)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Protected API routes
	api := r.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())
	api.Use(middleware.WriteQuota(rateLimiter, logger))
	{
		api.GET("/me", userHandler.GetProfile)
		api.PATCH("/me", userHandler.UpdateProfile)

		api.GET("/recipes", recipeHandler.List)
		api.POST("/recipes", recipeHandler.Create)
		api.GET("/recipes/:id", recipeHandler.Get)
		api.PATCH("/recipes/:id", recipeHandler.Update)
		api.PUT("/recipes/:id", recipeHandler.Replace)
		api.DELETE("/recipes/:id", recipeHandler.Delete)
		api.POST("/recipes/:id/upload-image", recipeHandler.UploadImage)

		api.GET("/tags", tagHandler.List)
		api.PATCH("/tags/:id", tagHandler.Update)
		api.PUT("/tags/:id", tagHandler.Update)
		api.DELETE("/tags/:id", tagHandler.Delete)

		api.GET("/ingredients", ingredientHandler.List)
		api.PATCH("/ingredients/:id", ingredientHandler.Update)
		api.PUT("/ingredients/:id", ingredientHandler.Update)
		api.DELETE("/ingredients/:id", ingredientHandler.Delete)

		api.GET("/events", eventHandler.List)
		api.POST("/events", eventHandler.Create)
		api.GET("/events/:id", eventHandler.Get)
		api.PATCH("/events/:id", eventHandler.Update)
		api.DELETE("/events/:id", eventHandler.Delete)
	}

	return r
}
