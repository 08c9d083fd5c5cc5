package handler

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/middleware"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Signup(&req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, data)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Login(&req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	data, err := h.service.Me(middleware.GetUserID(c))
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}
