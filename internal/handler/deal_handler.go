package handler

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/middleware"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/service"
	"github.com/gin-gonic/gin"
)

type DealHandler struct {
	service  service.DealService
	activity service.ActivityService
}

func NewDealHandler(service service.DealService, activity service.ActivityService) *DealHandler {
	return &DealHandler{service: service, activity: activity}
}

// ListDeals handles GET /api/v1/deals with an optional board_id filter
func (h *DealHandler) ListDeals(c *gin.Context) {
	actor := middleware.GetActor(c)

	if c.Query("board_id") != "" {
		boardID, err := paramQueryID(c, "board_id")
		if err != nil {
			common.ErrorResponse(c, 400, "Invalid board ID", err)
			return
		}
		data, err := h.service.ListByBoard(actor, boardID)
		if err != nil {
			common.ServiceErrorResponse(c, err)
			return
		}
		common.SuccessResponse(c, data, nil)
		return
	}

	data, err := h.service.ListVisible(actor)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// GetDeal handles GET /api/v1/deals/:deal_id
func (h *DealHandler) GetDeal(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	data, err := h.service.Get(middleware.GetActor(c), dealID)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// CreateDeal handles POST /api/v1/deals
func (h *DealHandler) CreateDeal(c *gin.Context) {
	var req domain.CreateDealRequest
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

// UpdateDeal handles PATCH /api/v1/deals/:deal_id
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	var patch domain.DealPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	before, err := h.service.Get(middleware.GetActor(c), dealID)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	data, err := h.service.Update(middleware.GetActor(c), dealID, &patch)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	if data.Stage != before.Stage {
		middleware.CountStageTransition(string(before.Stage), string(data.Stage))
	}

	common.SuccessResponse(c, data, nil)
}

// DeleteDeal handles DELETE /api/v1/deals/:deal_id
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	if err := h.service.Delete(middleware.GetActor(c), dealID); err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// DealActivity handles GET /api/v1/deals/:deal_id/activity
func (h *DealHandler) DealActivity(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	data, err := h.activity.ListByDeal(middleware.GetActor(c), dealID)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}
