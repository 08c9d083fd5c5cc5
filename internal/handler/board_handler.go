package handler

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/middleware"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/service"
	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	service  service.BoardService
	activity service.ActivityService
}

func NewBoardHandler(service service.BoardService, activity service.ActivityService) *BoardHandler {
	return &BoardHandler{service: service, activity: activity}
}

// ListBoards handles GET /api/v1/boards
func (h *BoardHandler) ListBoards(c *gin.Context) {
	data, err := h.service.ListVisible(middleware.GetActor(c))
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// GetBoard handles GET /api/v1/boards/:board_id
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID, err := paramID(c, "board_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid board ID", err)
		return
	}

	data, err := h.service.Get(middleware.GetActor(c), boardID)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// CreateBoard handles POST /api/v1/boards
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	var req domain.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Create(middleware.GetActor(c), &req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, data)
}

// UpdateBoard handles PUT /api/v1/boards/:board_id
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	boardID, err := paramID(c, "board_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid board ID", err)
		return
	}

	var req domain.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Update(middleware.GetActor(c), boardID, &req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// DeleteBoard handles DELETE /api/v1/boards/:board_id
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	boardID, err := paramID(c, "board_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid board ID", err)
		return
	}

	if err := h.service.Delete(middleware.GetActor(c), boardID); err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// AddMember handles PUT /api/v1/boards/:board_id/members/:user_id?role=ANALYST
func (h *BoardHandler) AddMember(c *gin.Context) {
	boardID, err := paramID(c, "board_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid board ID", err)
		return
	}
	userID, err := paramID(c, "user_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid user ID", err)
		return
	}

	role := domain.Role(c.Query("role"))
	if err := h.service.AddMember(middleware.GetActor(c), boardID, userID, role); err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"user_id": userID, "role": role}, nil)
}

// RemoveMember handles DELETE /api/v1/boards/:board_id/members/:user_id
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	boardID, err := paramID(c, "board_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid board ID", err)
		return
	}
	userID, err := paramID(c, "user_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid user ID", err)
		return
	}

	if err := h.service.RemoveMember(middleware.GetActor(c), boardID, userID); err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"removed": true}, nil)
}

// BoardActivity handles GET /api/v1/boards/:board_id/activity
func (h *BoardHandler) BoardActivity(c *gin.Context) {
	boardID, err := paramID(c, "board_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid board ID", err)
		return
	}

	data, err := h.activity.AggregateBoard(middleware.GetActor(c), boardID)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}
