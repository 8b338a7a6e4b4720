package handler

import (
	"net/http"
	"strconv"

	"prompt_market/internal/domain/user/service"
	"prompt_market/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

type SendCodeInput struct {
	Email string `json:"email" binding:"required,email"`
}

// SendSignInCode emails a one-time sign-in code.
// @Summary Send sign-in code
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body SendCodeInput true "Email"
// @Router /auth/code [post]
func (h *UserHandler) SendSignInCode(c *gin.Context) {
	var input SendCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.SendSignInCode(input.Email); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, "Sign-in code sent")
}

type LoginInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// LoginOrRegister exchanges an emailed code for a bearer token,
// creating the account on first sign-in.
// @Summary Login or register
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body LoginInput true "Credentials"
// @Router /auth/login [post]
func (h *UserHandler) LoginOrRegister(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	token, err := h.service.LoginOrRegister(input.Email, input.Code)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, err.Error())
		return
	}

	response.Success(c, gin.H{"token": token})
}

// GetUsers lists accounts (admin only).
// @Summary List users
// @Tags User
// @Router /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	users, total, err := h.service.GetUsers(page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetUser returns one profile.
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.service.GetUser(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, user)
}

type UpdateUserInput struct {
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}

// UpdateUser updates the caller's own profile.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if uid, _ := c.Get("userID"); uid != id {
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Cannot update another user's profile")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, err := h.service.UpdateUser(id, input.Nickname, input.AvatarURL)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, user)
}

// BecomeSeller upgrades the caller to a seller account.
func (h *UserHandler) BecomeSeller(c *gin.Context) {
	uid, exists := c.Get("userID")
	if !exists {
		response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "User not authenticated")
		return
	}

	if err := h.service.BecomeSeller(uid.(string)); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, "Seller role granted")
}

// DeleteUser removes an account (admin only).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteUser(id); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, "User deleted")
}

func queryInt(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}
