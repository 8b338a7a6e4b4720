package common

import (
	commonHandler "prompt_market/internal/pkg/common"
	"prompt_market/internal/pkg/middleware"
	"prompt_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CommonModule carries routes that belong to no single domain.
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	setupRoutes(ctx.Router)
	return nil
}

func setupRoutes(r *gin.Engine) {
	// Avatar and thumbnail uploads.
	r.POST("/upload", middleware.AuthMiddleware(), commonHandler.UploadFile)
}
