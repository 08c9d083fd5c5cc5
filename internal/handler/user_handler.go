package handler

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/repository"
	"github.com/gin-gonic/gin"
)

// UserHandler exposes the user directory used by mention autocomplete
// and member management
type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch users", err)
		return
	}

	data := make([]*domain.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, u.ToResponse())
	}

	common.SuccessResponse(c, data, nil)
}
