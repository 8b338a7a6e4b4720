package payment

import (
	"time"

	"prompt_market/internal/domain/payment/gateway"
	"prompt_market/internal/domain/payment/handler"
	"prompt_market/internal/domain/payment/repository"
	"prompt_market/internal/domain/payment/service"
	"prompt_market/internal/domain/payment/worker"
	promptRepo "prompt_market/internal/domain/prompt/repository"
	purchaseRepo "prompt_market/internal/domain/purchase/repository"
	"prompt_market/internal/pkg/config"
	"prompt_market/internal/pkg/registry"
	"prompt_market/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PaymentModule wires the payment handshake.
type PaymentModule struct{}

func init() {
	registry.Register(&PaymentModule{})
}

func (m *PaymentModule) Name() string {
	return "payment"
}

func (m *PaymentModule) Priority() int {
	// Depends on the catalog and purchase layers.
	return 20
}

func (m *PaymentModule) Init(ctx *registry.ModuleContext) error {
	cfg := config.GlobalConfig.Toss

	gw, err := gateway.NewTossClient(cfg)
	if err != nil {
		// Without gateway credentials confirmations cannot work at all.
		logger.Log.Error("Failed to init payment gateway client: " + err.Error())
		return err
	}

	payRepo := repository.NewPaymentRepository(ctx.DB)
	pService := service.NewPaymentService(
		promptRepo.NewPromptRepository(ctx.DB),
		purchaseRepo.NewPurchaseRepository(ctx.DB),
		payRepo,
		gw,
		time.Duration(cfg.PreparationTTLMin)*time.Minute,
	)
	pHandler := handler.NewPaymentHandler(pService)

	setupRoutes(ctx.Router, pHandler)

	sweeper := worker.NewExpirySweeper(payRepo, time.Duration(cfg.SweepIntervalMin)*time.Minute)
	sweeper.Start()

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PaymentHandler) {
	// The widget posts here from the browser; identity comes from the
	// request body, not from a session. CORS preflight is handled by the
	// global middleware.
	r.POST("/prepare-payment", h.PreparePayment)
	r.POST("/confirm-payment", h.ConfirmPayment)
}
