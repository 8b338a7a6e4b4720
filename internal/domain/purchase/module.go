package purchase

import (
	"prompt_market/internal/domain/purchase/handler"
	"prompt_market/internal/domain/purchase/repository"
	"prompt_market/internal/domain/purchase/service"
	"prompt_market/internal/pkg/middleware"
	"prompt_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PurchaseModule wires the buyer library endpoints.
type PurchaseModule struct{}

func init() {
	registry.Register(&PurchaseModule{})
}

func (m *PurchaseModule) Name() string {
	return "purchase"
}

func (m *PurchaseModule) Priority() int {
	return 15
}

func (m *PurchaseModule) Init(ctx *registry.ModuleContext) error {
	pRepo := repository.NewPurchaseRepository(ctx.DB)
	pService := service.NewPurchaseService(pRepo)
	pHandler := handler.NewPurchaseHandler(pService)

	setupRoutes(ctx.Router, pHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PurchaseHandler) {
	g := r.Group("/purchases")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("/mine", h.MyPurchases)
		g.GET("/check/:promptId", h.CheckPurchased)
	}
}
