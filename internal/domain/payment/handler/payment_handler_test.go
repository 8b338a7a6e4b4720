package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prompt_market/internal/domain/payment/gateway"
	"prompt_market/internal/domain/payment/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPaymentService is a mock of PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Prepare(ctx context.Context, req service.PrepareRequest) (*service.PrepareResult, *service.PaymentError) {
	args := m.Called(ctx, req)
	var result *service.PrepareResult
	if args.Get(0) != nil {
		result = args.Get(0).(*service.PrepareResult)
	}
	var perr *service.PaymentError
	if args.Get(1) != nil {
		perr = args.Get(1).(*service.PaymentError)
	}
	return result, perr
}

func (m *MockPaymentService) Confirm(ctx context.Context, req service.ConfirmRequest) (*service.ConfirmResult, *service.PaymentError) {
	args := m.Called(ctx, req)
	var result *service.ConfirmResult
	if args.Get(0) != nil {
		result = args.Get(0).(*service.ConfirmResult)
	}
	var perr *service.PaymentError
	if args.Get(1) != nil {
		perr = args.Get(1).(*service.PaymentError)
	}
	return result, perr
}

func setupRouter(svc service.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPaymentHandler(svc)
	r.POST("/prepare-payment", h.PreparePayment)
	r.POST("/confirm-payment", h.ConfirmPayment)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w, decoded
}

func TestPreparePayment(t *testing.T) {
	t.Run("Success response shape", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Prepare", mock.Anything, mock.AnythingOfType("service.PrepareRequest")).
			Return(&service.PrepareResult{
				OrderID:       "order-1",
				PreparationID: "prep-1",
				ValidationStatus: service.ValidationStatus{
					PromptFound:      true,
					PriceValid:       true,
					NotPurchased:     true,
					Approved:         true,
					PreparationSaved: true,
				},
			}, nil)
		r := setupRouter(svc)

		w, body := postJSON(t, r, "/prepare-payment", gin.H{
			"userId":    "user-1",
			"promptId":  "prompt-1",
			"orderId":   "order-1",
			"amount":    5000,
			"orderName": "Prompt pack",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "order-1", body["orderId"])
		assert.Equal(t, "prep-1", body["preparationId"])
		assert.NotEmpty(t, body["timestamp"])
		vs := body["validationStatus"].(map[string]interface{})
		assert.Equal(t, true, vs["preparationSaved"])
	})

	t.Run("Error is flat with the code as the error value", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Prepare", mock.Anything, mock.Anything).
			Return(nil, &service.PaymentError{
				Status:  http.StatusConflict,
				Code:    service.CodeAlreadyPurchased,
				Message: "the prompt was already purchased",
				Extra: map[string]interface{}{
					"purchaseDate": "2026-03-01T12:00:00Z",
				},
			})
		r := setupRouter(svc)

		w, body := postJSON(t, r, "/prepare-payment", gin.H{"userId": "user-1"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "ALREADY_PURCHASED", body["error"])
		assert.Equal(t, "2026-03-01T12:00:00Z", body["purchaseDate"])
	})

	t.Run("Price mismatch extras land at the top level", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Prepare", mock.Anything, mock.Anything).
			Return(nil, &service.PaymentError{
				Status:  http.StatusBadRequest,
				Code:    service.CodePriceMismatch,
				Message: "the requested amount does not match the prompt price",
				Extra: map[string]interface{}{
					"expected": int64(9900),
					"actual":   int64(5000),
				},
			})
		r := setupRouter(svc)

		w, body := postJSON(t, r, "/prepare-payment", gin.H{"userId": "user-1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "PRICE_MISMATCH", body["error"])
		assert.Equal(t, float64(9900), body["expected"])
		assert.Equal(t, float64(5000), body["actual"])
	})

	t.Run("Malformed body is missing parameters", func(t *testing.T) {
		svc := new(MockPaymentService)
		r := setupRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/prepare-payment", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "MISSING_PARAMETERS", body["error"])
		svc.AssertNotCalled(t, "Prepare", mock.Anything, mock.Anything)
	})
}

func TestConfirmPayment(t *testing.T) {
	t.Run("Success response shape", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Confirm", mock.Anything, mock.AnythingOfType("service.ConfirmRequest")).
			Return(&service.ConfirmResult{
				Payment: &gateway.Payment{
					PaymentKey:  "pay-key-1",
					OrderID:     "order-1",
					Method:      "CARD",
					TotalAmount: 5000,
					Status:      "DONE",
				},
				PreparationInfo: service.PreparationInfo{
					PreparationID: "prep-1",
					PromptID:      "prompt-1",
					UserID:        "user-1",
				},
			}, nil)
		r := setupRouter(svc)

		w, body := postJSON(t, r, "/confirm-payment", gin.H{
			"paymentKey": "pay-key-1",
			"orderId":    "order-1",
			"amount":     5000,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		payment := body["payment"].(map[string]interface{})
		assert.Equal(t, "pay-key-1", payment["paymentKey"])
		info := body["preparationInfo"].(map[string]interface{})
		assert.Equal(t, "prep-1", info["preparationId"])
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("Error is nested with code and message", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Confirm", mock.Anything, mock.Anything).
			Return(nil, &service.PaymentError{
				Status:  http.StatusNotFound,
				Code:    service.CodePreparationNotFound,
				Message: "no prepared payment matches this order",
			})
		r := setupRouter(svc)

		w, body := postJSON(t, r, "/confirm-payment", gin.H{
			"paymentKey": "pay-key-1",
			"orderId":    "order-x",
			"amount":     5000,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, body["success"])
		errBody := body["error"].(map[string]interface{})
		assert.Equal(t, "PREPARATION_NOT_FOUND", errBody["code"])
		assert.Equal(t, "no prepared payment matches this order", errBody["message"])
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("Gateway decline code passes through", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Confirm", mock.Anything, mock.Anything).
			Return(nil, &service.PaymentError{
				Status:  http.StatusBadRequest,
				Code:    "REJECT_CARD_COMPANY",
				Message: "card declined",
			})
		r := setupRouter(svc)

		w, body := postJSON(t, r, "/confirm-payment", gin.H{
			"paymentKey": "pay-key-1",
			"orderId":    "order-1",
			"amount":     5000,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errBody := body["error"].(map[string]interface{})
		assert.Equal(t, "REJECT_CARD_COMPANY", errBody["code"])
	})
}
