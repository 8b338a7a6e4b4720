package handler

import (
	"net/http"
	"time"

	"prompt_market/internal/domain/payment/service"
	"prompt_market/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the two-step handshake. Its wire format is a
// published client contract and deliberately does not use the shared
// response envelope.
type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

type PreparePaymentInput struct {
	UserID    string `json:"userId"`
	PromptID  string `json:"promptId"`
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	OrderName string `json:"orderName"`
}

// PreparePayment reserves a payment intent before the buyer is handed
// to the payment widget.
// @Summary Prepare a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param input body PreparePaymentInput true "Payment intent"
// @Router /prepare-payment [post]
func (h *PaymentHandler) PreparePayment(c *gin.Context) {
	var input PreparePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writePrepareError(c, &service.PaymentError{
			Status:  http.StatusBadRequest,
			Code:    service.CodeMissingParameters,
			Message: "request body could not be parsed",
			Details: err.Error(),
		})
		return
	}

	result, perr := h.service.Prepare(c.Request.Context(), service.PrepareRequest{
		UserID:    input.UserID,
		PromptID:  input.PromptID,
		OrderID:   input.OrderID,
		Amount:    input.Amount,
		OrderName: input.OrderName,
	})
	if perr != nil {
		writePrepareError(c, perr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"orderId":          result.OrderID,
		"preparationId":    result.PreparationID,
		"promptInfo":       result.PromptInfo,
		"validationStatus": result.ValidationStatus,
		"timestamp":        nowRFC3339(),
	})
}

type ConfirmPaymentInput struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// ConfirmPayment finalizes a prepared payment against the gateway.
// @Summary Confirm a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param input body ConfirmPaymentInput true "Gateway reference"
// @Router /confirm-payment [post]
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var input ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeConfirmError(c, &service.PaymentError{
			Status:  http.StatusBadRequest,
			Code:    service.CodeMissingParameters,
			Message: "request body could not be parsed",
			Details: err.Error(),
		})
		return
	}

	result, perr := h.service.Confirm(c.Request.Context(), service.ConfirmRequest{
		PaymentKey: input.PaymentKey,
		OrderID:    input.OrderID,
		Amount:     input.Amount,
	})
	if perr != nil {
		writeConfirmError(c, perr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"payment":         result.Payment,
		"preparationInfo": result.PreparationInfo,
		"timestamp":       nowRFC3339(),
	})
}

// writePrepareError renders the preparation endpoint's flat error shape:
// {success:false, error:"CODE", details:"...", ...extras}
func writePrepareError(c *gin.Context, perr *service.PaymentError) {
	logPaymentError(c, perr)

	body := gin.H{
		"success": false,
		"error":   perr.Code,
		"details": perr.Message,
	}
	if perr.Details != "" {
		body["details"] = perr.Message + ": " + perr.Details
	}
	for k, v := range perr.Extra {
		body[k] = v
	}
	c.JSON(perr.Status, body)
}

// writeConfirmError renders the confirmation endpoint's nested error
// shape: {success:false, error:{code,message,details?}, timestamp}
func writeConfirmError(c *gin.Context, perr *service.PaymentError) {
	logPaymentError(c, perr)

	errBody := gin.H{
		"code":    perr.Code,
		"message": perr.Message,
	}
	if perr.Details != "" {
		errBody["details"] = perr.Details
	}
	for k, v := range perr.Extra {
		errBody[k] = v
	}
	c.JSON(perr.Status, gin.H{
		"success":   false,
		"error":     errBody,
		"timestamp": nowRFC3339(),
	})
}

func logPaymentError(c *gin.Context, perr *service.PaymentError) {
	logger.Log.Warn("payment request rejected",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", perr.Status),
		zap.String("code", perr.Code),
		zap.String("details", perr.Details),
	)
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
