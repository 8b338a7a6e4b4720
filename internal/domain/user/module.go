package user

import (
	"prompt_market/internal/domain/user/handler"
	"prompt_market/internal/domain/user/repository"
	"prompt_market/internal/domain/user/service"
	"prompt_market/internal/pkg/middleware"
	"prompt_market/internal/pkg/otp"
	"prompt_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule wires auth and profiles.
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// Other modules depend on user identity; initialize first.
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	userRepo := repository.NewUserRepository(ctx.DB)
	otpService := otp.NewOTPService(ctx.Redis)
	userService := service.NewUserService(userRepo, otpService)
	userHandler := handler.NewUserHandler(userService)

	setupRoutes(ctx.Router, userHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/code", h.SendSignInCode)
		authGroup.POST("/login", h.LoginOrRegister)
	}

	userGroup := r.Group("/users")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.GET("/:id", h.GetUser)
		userGroup.PUT("/:id", h.UpdateUser)
		userGroup.POST("/become-seller", h.BecomeSeller)

		admin := userGroup.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/", h.GetUsers)
			admin.DELETE("/:id", h.DeleteUser)
		}
	}
}
