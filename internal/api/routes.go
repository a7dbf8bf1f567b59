package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"coursecms/internal/api/middleware"
	"coursecms/internal/auth"
	"coursecms/internal/config"
	"coursecms/internal/pagestore"
	"coursecms/internal/storage"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	store *pagestore.Store,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
) {
	lockTTL := cfg.Auth.LoginLockTTL
	if lockTTL <= 0 {
		lockTTL = 15 * time.Minute
	}
	authHandler := NewAuthHandler(db, authService, redisClient, logger,
		cfg.Auth.LoginRateLimitPerHour, cfg.Auth.LoginLockThreshold, lockTTL, cfg.API.CookieDomain)
	pageHandler := NewPageHandler(store, asynqClient, storageClient, redisClient, logger, cfg.Preview.RateLimitPerHour)
	wsHandler := NewWsHandler(redisClient, authService, logger, cfg.API.AllowedOriginList())
	authMiddleware := middleware.AuthMiddleware(authService)
	passwordGate := middleware.RequirePasswordChangeCompletedMiddleware()

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
		}

		pageGroup := v1.Group("/pages")
		pageGroup.Use(authMiddleware, passwordGate)
		{
			pageGroup.GET("", pageHandler.ListPages)
			pageGroup.POST("", pageHandler.CreatePage)
			pageGroup.POST("/preview", pageHandler.PreviewPage)
			pageGroup.GET("/block-defaults", pageHandler.BlockDefaults)
			pageGroup.GET("/templates", pageHandler.ListTemplates)
			pageGroup.GET("/templates/:name", pageHandler.GetTemplate)
			pageGroup.GET("/:id", pageHandler.GetPage)
			pageGroup.PUT("/:id", pageHandler.UpdatePage)
			pageGroup.DELETE("/:id", pageHandler.DeletePage)
			pageGroup.POST("/:id/snapshot", pageHandler.SnapshotPage)
		}

		publicGroup := v1.Group("/public")
		{
			publicGroup.GET("/home", pageHandler.PublicHome)
			publicGroup.GET("/menu", pageHandler.PublicMenu)
			publicGroup.GET("/pages/:slug", pageHandler.PublicPage)
		}
	}
}
