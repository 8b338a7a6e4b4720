package handler

import (
	"net/http"
	"strconv"

	"prompt_market/internal/domain/prompt/service"
	"prompt_market/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PromptHandler struct {
	service service.PromptService
}

func NewPromptHandler(s service.PromptService) *PromptHandler {
	return &PromptHandler{service: s}
}

type CreatePromptInput struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Content      string `json:"content" binding:"required"`
	Price        int64  `json:"price" binding:"min=0"`
	IsFree       bool   `json:"isFree"`
	Category     string `json:"category"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// CreatePrompt submits a prompt for review.
// @Summary Submit a prompt
// @Tags Prompt
// @Accept json
// @Produce json
// @Param input body CreatePromptInput true "Prompt"
// @Router /prompts [post]
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
	var input CreatePromptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	sellerID := getUserIDFromContext(c)
	prompt, err := h.service.CreatePrompt(sellerID, service.CreatePromptInput{
		Title:        input.Title,
		Description:  input.Description,
		Content:      input.Content,
		Price:        input.Price,
		IsFree:       input.IsFree,
		Category:     input.Category,
		ThumbnailURL: input.ThumbnailURL,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, prompt)
}

// Explore lists approved prompts for the storefront.
// @Summary Browse approved prompts
// @Tags Prompt
// @Router /prompts [get]
func (h *PromptHandler) Explore(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	category := c.Query("category")

	prompts, total, err := h.service.Explore(category, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{
		"prompts": prompts,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetPrompt returns prompt detail. Content is only included for free
// prompts, buyers, the seller, and admins.
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	id := c.Param("id")
	viewerID := getUserIDFromContext(c)
	viewerRole := getRoleFromContext(c)

	prompt, err := h.service.GetPrompt(id, viewerID, viewerRole)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(c, http.StatusNotFound, response.ErrPromptNotFound, "Prompt not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, prompt)
}

// MyPrompts lists the authenticated seller's submissions.
func (h *PromptHandler) MyPrompts(c *gin.Context) {
	sellerID := getUserIDFromContext(c)
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	prompts, total, err := h.service.ListBySeller(sellerID, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{"prompts": prompts, "total": total})
}

// PendingPrompts is the admin review queue.
func (h *PromptHandler) PendingPrompts(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	prompts, total, err := h.service.ListPending(page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{"prompts": prompts, "total": total})
}

type ReviewInput struct {
	Approve      bool   `json:"approve"`
	RejectReason string `json:"rejectReason"`
}

// ReviewPrompt approves or rejects a pending prompt (admin only).
func (h *PromptHandler) ReviewPrompt(c *gin.Context) {
	id := c.Param("id")

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.Review(id, input.Approve, input.RejectReason); err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(c, http.StatusNotFound, response.ErrPromptNotFound, "Prompt not found")
			return
		}
		if err.Error() == "prompt is not pending review" {
			response.Fail(c, response.ErrPromptNotApproved, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, "Review recorded")
}

func getUserIDFromContext(c *gin.Context) string {
	val, _ := c.Get("userID")
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getRoleFromContext(c *gin.Context) int {
	val, _ := c.Get("role")
	if r, ok := val.(int); ok {
		return r
	}
	return 0
}

func queryInt(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}
