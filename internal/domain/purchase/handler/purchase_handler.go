package handler

import (
	"net/http"
	"strconv"

	"prompt_market/internal/domain/purchase/service"
	"prompt_market/pkg/response"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

// MyPurchases lists the caller's purchased prompts.
// @Summary List own purchases
// @Tags Purchase
// @Router /purchases/mine [get]
func (h *PurchaseHandler) MyPurchases(c *gin.Context) {
	userID := getUserIDFromContext(c)
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	purchases, total, err := h.service.ListByUser(userID, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{
		"purchases": purchases,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// CheckPurchased reports whether the caller owns a prompt.
func (h *PurchaseHandler) CheckPurchased(c *gin.Context) {
	userID := getUserIDFromContext(c)
	promptID := c.Param("promptId")

	owned, err := h.service.HasPurchased(userID, promptID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{"purchased": owned})
}

func getUserIDFromContext(c *gin.Context) string {
	val, _ := c.Get("userID")
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func queryInt(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}
