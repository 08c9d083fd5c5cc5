package handler

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/middleware"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/service"
	"github.com/gin-gonic/gin"
)

// InteractionHandler serves deal comments and partner votes
type InteractionHandler struct {
	comments service.CommentService
	votes    service.VoteService
}

func NewInteractionHandler(comments service.CommentService, votes service.VoteService) *InteractionHandler {
	return &InteractionHandler{comments: comments, votes: votes}
}

// ListComments handles GET /api/v1/deals/:deal_id/comments
func (h *InteractionHandler) ListComments(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	data, err := h.comments.ListByDeal(middleware.GetActor(c), dealID)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// CreateComment handles POST /api/v1/deals/:deal_id/comments
func (h *InteractionHandler) CreateComment(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.comments.Create(middleware.GetActor(c), dealID, &req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, data)
}

// ListVotes handles GET /api/v1/deals/:deal_id/votes
func (h *InteractionHandler) ListVotes(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	data, err := h.votes.ListByDeal(middleware.GetActor(c), dealID)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// CastVote handles POST /api/v1/deals/:deal_id/votes. Voting twice
// replaces the previous vote.
func (h *InteractionHandler) CastVote(c *gin.Context) {
	dealID, err := paramID(c, "deal_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid deal ID", err)
		return
	}

	var req domain.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.votes.Cast(middleware.GetActor(c), dealID, &req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, data)
}
