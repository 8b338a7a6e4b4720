package main

import (
	"prompt_market/internal/pkg/config"
	"prompt_market/internal/pkg/middleware"
	"prompt_market/internal/pkg/push"
	"prompt_market/internal/pkg/registry"
	"prompt_market/internal/pkg/uploader"
	"prompt_market/pkg/database"
	"prompt_market/pkg/logger"

	_ "prompt_market/internal/domain/common"
	_ "prompt_market/internal/domain/payment"
	_ "prompt_market/internal/domain/prompt"
	_ "prompt_market/internal/domain/purchase"
	_ "prompt_market/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	logger.Init(config.GlobalConfig.Server.Mode)
	defer logger.Sync()

	db := database.InitDatabase()
	rdb := database.InitRedis()

	if err := uploader.InitUploader(); err != nil {
		logger.Log.Warn("OSS uploader not available", zap.Error(err))
	}
	if err := push.InitPushService(); err != nil {
		logger.Log.Warn("Push service not available", zap.Error(err))
	}

	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware())

	// The payment widget calls the prepare/confirm endpoints straight from
	// the browser, so CORS has to be permissive, preflight included.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	moduleCtx := &registry.ModuleContext{
		DB:     db,
		Redis:  rdb,
		Router: r,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("Failed to init modules", zap.Error(err))
	}

	port := config.GlobalConfig.Server.Port
	logger.Log.Info("Server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatal("Server exited", zap.Error(err))
	}
}
