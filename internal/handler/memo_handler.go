package handler

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/middleware"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/service"
	"github.com/gin-gonic/gin"
)

type MemoHandler struct {
	service service.MemoService
}

func NewMemoHandler(service service.MemoService) *MemoHandler {
	return &MemoHandler{service: service}
}

// GetMemo handles GET /api/v1/deals/:deal_id/memo and returns the
// current version
func (h *MemoHandler) GetMemo(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	data, err := h.service.GetCurrent(middleware.GetActor(c), dealID)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// SaveMemo handles PUT /api/v1/deals/:deal_id/memo. Every save appends
// a new version; unset sections carry forward from the previous one.
func (h *MemoHandler) SaveMemo(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	var patch domain.MemoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.AppendVersion(middleware.GetActor(c), dealID, &patch)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, data)
}

// ListMemoVersions handles GET /api/v1/deals/:deal_id/memo/versions
func (h *MemoHandler) ListMemoVersions(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	data, err := h.service.ListVersions(middleware.GetActor(c), dealID)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// GetMemoVersion handles GET /api/v1/deals/:deal_id/memo/versions/:version
func (h *MemoHandler) GetMemoVersion(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}
	version, err := paramID(c, "version")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid version", err)
		return
	}

	data, err := h.service.GetVersion(middleware.GetActor(c), dealID, uint(version))
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}
