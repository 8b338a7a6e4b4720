package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"prompt_market/internal/domain/payment/gateway"
	"prompt_market/internal/domain/payment/model"
	"prompt_market/internal/domain/payment/repository"
	promptModel "prompt_market/internal/domain/prompt/model"
	promptRepo "prompt_market/internal/domain/prompt/repository"
	purchaseRepo "prompt_market/internal/domain/purchase/repository"
	"prompt_market/internal/pkg/push"
	"prompt_market/pkg/logger"
	"prompt_market/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PrepareRequest carries the buyer's declared intent. The amount is
// client-declared and only trusted after it matches the catalog price.
type PrepareRequest struct {
	UserID    string
	PromptID  string
	OrderID   string
	Amount    int64
	OrderName string
}

// ValidationStatus echoes which gates a successful preparation passed.
type ValidationStatus struct {
	PromptFound      bool `json:"promptFound"`
	PriceValid       bool `json:"priceValid"`
	NotPurchased     bool `json:"notPurchased"`
	Approved         bool `json:"approved"`
	PreparationSaved bool `json:"preparationSaved"`
}

// PrepareResult is the successful preparation payload.
type PrepareResult struct {
	OrderID          string
	PreparationID    string
	PromptInfo       promptModel.Summary
	ValidationStatus ValidationStatus
}

// ConfirmRequest carries the gateway's opaque payment reference back
// for server-side confirmation.
type ConfirmRequest struct {
	PaymentKey string
	OrderID    string
	Amount     int64
}

// PreparationInfo lets the caller correlate the settled payment with
// the ledger row it came from.
type PreparationInfo struct {
	PreparationID string `json:"preparationId"`
	PromptID      string `json:"promptId"`
	UserID        string `json:"userId"`
}

// ConfirmResult is the successful confirmation payload.
type ConfirmResult struct {
	Payment         *gateway.Payment
	PreparationInfo PreparationInfo
}

// PaymentService implements the two-step payment handshake.
type PaymentService interface {
	Prepare(ctx context.Context, req PrepareRequest) (*PrepareResult, *PaymentError)
	Confirm(ctx context.Context, req ConfirmRequest) (*ConfirmResult, *PaymentError)
}

type paymentService struct {
	prompts      promptRepo.PromptRepository
	purchases    purchaseRepo.PurchaseRepository
	preparations repository.PaymentRepository
	gateway      gateway.ConfirmationClient
	prepTTL      time.Duration
	metrics      *metrics.Collector
}

// NewPaymentService creates the payment service. prepTTL bounds how
// long a prepared row stays live before the sweeper fails it.
func NewPaymentService(
	prompts promptRepo.PromptRepository,
	purchases purchaseRepo.PurchaseRepository,
	preparations repository.PaymentRepository,
	gw gateway.ConfirmationClient,
	prepTTL time.Duration,
) PaymentService {
	if prepTTL <= 0 {
		prepTTL = 30 * time.Minute
	}
	return &paymentService{
		prompts:      prompts,
		purchases:    purchases,
		preparations: preparations,
		gateway:      gw,
		prepTTL:      prepTTL,
		metrics:      metrics.GetGlobalCollector(),
	}
}

// Prepare runs the preparation gates in order; the first failure
// short-circuits and nothing is written on any failure path.
func (s *paymentService) Prepare(ctx context.Context, req PrepareRequest) (*PrepareResult, *PaymentError) {
	if req.UserID == "" || req.PromptID == "" || req.OrderID == "" || req.Amount == 0 || req.OrderName == "" {
		s.countPrepare("missing_parameters")
		return nil, missingParameters("userId, promptId, orderId, amount, orderName are required")
	}

	prompt, err := s.prompts.GetByID(req.PromptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.countPrepare("prompt_not_found")
			return nil, &PaymentError{
				Status:  http.StatusNotFound,
				Code:    CodePromptNotFound,
				Message: "the requested prompt does not exist",
			}
		}
		s.countPrepare("prompt_query_error")
		return nil, &PaymentError{
			Status:  http.StatusInternalServerError,
			Code:    CodePromptQueryError,
			Message: "failed to look up the prompt",
			Details: err.Error(),
		}
	}

	if prompt.Status != promptModel.StatusApproved {
		s.countPrepare("prompt_not_approved")
		return nil, &PaymentError{
			Status:  http.StatusBadRequest,
			Code:    CodePromptNotApproved,
			Message: "the prompt is not approved for sale",
		}
	}

	// Exact integer equality; the client-declared amount is only
	// advisory until it matches the catalog price.
	if prompt.Price != req.Amount {
		s.countPrepare("price_mismatch")
		return nil, &PaymentError{
			Status:  http.StatusBadRequest,
			Code:    CodePriceMismatch,
			Message: "the requested amount does not match the prompt price",
			Extra: map[string]interface{}{
				"expected": prompt.Price,
				"actual":   req.Amount,
			},
		}
	}

	existing, err := s.purchases.GetByUserAndPrompt(req.UserID, req.PromptID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.countPrepare("purchase_check_error")
		return nil, &PaymentError{
			Status:  http.StatusInternalServerError,
			Code:    CodePurchaseCheckError,
			Message: "failed to check purchase history",
			Details: err.Error(),
		}
	}
	if existing != nil {
		s.countPrepare("already_purchased")
		return nil, &PaymentError{
			Status:  http.StatusConflict,
			Code:    CodeAlreadyPurchased,
			Message: "the prompt was already purchased",
			Extra: map[string]interface{}{
				"purchaseDate": existing.CreatedAt.UTC().Format(time.RFC3339),
			},
		}
	}

	prep := &model.PaymentPreparation{
		OrderID:   req.OrderID,
		UserID:    req.UserID,
		PromptID:  req.PromptID,
		Amount:    req.Amount,
		OrderName: req.OrderName,
		Status:    model.StatusPrepared,
		ExpiresAt: time.Now().Add(s.prepTTL),
	}
	if err := s.preparations.CreatePreparation(prep); err != nil {
		s.countPrepare("preparation_save_error")
		return nil, &PaymentError{
			Status:  http.StatusInternalServerError,
			Code:    CodePreparationSaveErr,
			Message: "failed to save the payment preparation",
			Details: err.Error(),
		}
	}

	logger.Log.Info("payment prepared",
		zap.String("order_id", req.OrderID),
		zap.String("preparation_id", prep.ID),
		zap.String("user_id", req.UserID),
		zap.String("prompt_id", req.PromptID),
		zap.Int64("amount", req.Amount),
	)
	s.countPrepare("success")

	return &PrepareResult{
		OrderID:       req.OrderID,
		PreparationID: prep.ID,
		PromptInfo:    prompt.Summary(),
		ValidationStatus: ValidationStatus{
			PromptFound:      true,
			PriceValid:       true,
			NotPurchased:     true,
			Approved:         true,
			PreparationSaved: true,
		},
	}, nil
}

// Confirm re-validates against the ledger, calls the gateway, and
// settles. Once the gateway has approved the charge, bookkeeping
// failures are logged but never turned into a client-facing error: the
// buyer was charged and must not be told otherwise.
func (s *paymentService) Confirm(ctx context.Context, req ConfirmRequest) (*ConfirmResult, *PaymentError) {
	if req.PaymentKey == "" || req.OrderID == "" || req.Amount == 0 {
		s.countConfirm("missing_parameters")
		return nil, missingParameters("paymentKey, orderId, amount are required")
	}

	prep, err := s.preparations.GetPreparedByOrderID(req.OrderID)
	if err != nil {
		// Covers both a genuinely unknown order and replay against an
		// already-confirmed or already-failed record.
		s.countConfirm("preparation_not_found")
		return nil, &PaymentError{
			Status:  http.StatusNotFound,
			Code:    CodePreparationNotFound,
			Message: "no prepared payment matches this order",
		}
	}

	if prep.Amount != req.Amount {
		s.countConfirm("amount_mismatch")
		return nil, &PaymentError{
			Status:  http.StatusBadRequest,
			Code:    CodeAmountMismatch,
			Message: "the requested amount does not match the prepared amount",
		}
	}

	start := time.Now()
	payment, err := s.gateway.Confirm(ctx, gateway.ConfirmRequest{
		PaymentKey: req.PaymentKey,
		OrderID:    req.OrderID,
		Amount:     req.Amount,
	})
	s.metrics.GatewayCallDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var gwErr *gateway.GatewayError
		if errors.As(err, &gwErr) {
			// Terminal business outcome, not a transient error.
			if markErr := s.preparations.MarkFailed(prep.ID, gwErr.Error()); markErr != nil {
				logger.Log.Error("failed to record gateway decline",
					zap.String("preparation_id", prep.ID), zap.Error(markErr))
			}
			logger.Log.Warn("gateway declined payment",
				zap.String("order_id", req.OrderID),
				zap.String("code", gwErr.Code),
				zap.String("message", gwErr.Message),
			)
			s.countConfirm("gateway_declined")
			return nil, &PaymentError{
				Status:  http.StatusBadRequest,
				Code:    gwErr.Code,
				Message: gwErr.Message,
			}
		}

		logger.Log.Error("gateway call failed",
			zap.String("order_id", req.OrderID), zap.Error(err))
		s.countConfirm("gateway_error")
		return nil, internalError(err.Error())
	}

	// Settlement: confirmed flip + purchase row in one transaction.
	if err := s.preparations.ConfirmAndSettle(prep, payment.PaymentKey, payment.Method, payment.ApprovedTime()); err != nil {
		// The charge succeeded; this is secondary bookkeeping. Log loudly
		// for reconciliation and still report success.
		logger.Log.Error("settlement bookkeeping failed after gateway success",
			zap.String("preparation_id", prep.ID),
			zap.String("order_id", req.OrderID),
			zap.String("payment_key", payment.PaymentKey),
			zap.Error(err),
		)
	}

	logger.Log.Info("payment confirmed",
		zap.String("order_id", req.OrderID),
		zap.String("preparation_id", prep.ID),
		zap.String("payment_key", payment.PaymentKey),
		zap.Int64("amount", req.Amount),
	)
	s.countConfirm("success")

	if push.GlobalPushService != nil {
		title := "Purchase complete"
		body := fmt.Sprintf("Your order %s has been paid.", req.OrderID)
		go push.GlobalPushService.PushToAccount(prep.UserID, title, body, map[string]string{
			"promptId": prep.PromptID,
		})
	}

	return &ConfirmResult{
		Payment: payment,
		PreparationInfo: PreparationInfo{
			PreparationID: prep.ID,
			PromptID:      prep.PromptID,
			UserID:        prep.UserID,
		},
	}, nil
}

func (s *paymentService) countPrepare(outcome string) {
	s.metrics.PaymentPreparesTotal.WithLabelValues(outcome).Inc()
}

func (s *paymentService) countConfirm(outcome string) {
	s.metrics.PaymentConfirmsTotal.WithLabelValues(outcome).Inc()
}
