package prompt

import (
	"prompt_market/internal/domain/prompt/handler"
	"prompt_market/internal/domain/prompt/repository"
	"prompt_market/internal/domain/prompt/service"
	purchaseRepo "prompt_market/internal/domain/purchase/repository"
	"prompt_market/internal/pkg/middleware"
	"prompt_market/internal/pkg/registry"
	"prompt_market/pkg/cache"

	"github.com/gin-gonic/gin"
)

// PromptModule wires the catalog.
type PromptModule struct{}

func init() {
	registry.Register(&PromptModule{})
}

func (m *PromptModule) Name() string {
	return "prompt"
}

func (m *PromptModule) Priority() int {
	return 10
}

func (m *PromptModule) Init(ctx *registry.ModuleContext) error {
	pRepo := repository.NewPromptRepository(ctx.DB)

	// The catalog asks the purchase layer who owns what.
	purchases := purchaseRepo.NewPurchaseRepository(ctx.DB)

	base := service.NewPromptService(pRepo, purchases)
	cached := service.NewCachedPromptService(base, cache.NewRedisCache(ctx.Redis))
	pHandler := handler.NewPromptHandler(cached)

	setupRoutes(ctx.Router, pHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PromptHandler) {
	g := r.Group("/prompts")

	// Public storefront; token parsed when present so buyers see content.
	g.GET("/", middleware.OptionalAuthMiddleware(), h.Explore)
	g.GET("/:id", middleware.OptionalAuthMiddleware(), h.GetPrompt)

	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/mine", h.MyPrompts)

		seller := auth.Group("")
		seller.Use(middleware.SellerMiddleware())
		{
			seller.POST("/", h.CreatePrompt)
		}

		admin := auth.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/pending", h.PendingPrompts)
			admin.POST("/:id/review", h.ReviewPrompt)
		}
	}
}
