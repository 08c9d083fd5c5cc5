package service

import (
	"fmt"
	"strings"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/mention"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/repository"
)

// CommentService comment operations. Comments are immutable once posted;
// responses carry mention spans resolved against the board member list
// (resolution annotates rendering only, it never gates access).
type CommentService interface {
	Create(actor domain.Actor, dealID uint64, req *domain.CreateCommentRequest) (*domain.CommentResponse, error)
	ListByDeal(actor domain.Actor, dealID uint64) ([]*domain.CommentResponse, error)
}

type commentService struct {
	comments repository.CommentRepository
	deals    repository.DealRepository
	boards   repository.BoardRepository
	access   AccessService
	hub      Broadcaster
}

// NewCommentService creates a new CommentService
func NewCommentService(
	comments repository.CommentRepository,
	deals repository.DealRepository,
	boards repository.BoardRepository,
	access AccessService,
	hub Broadcaster,
) CommentService {
	return &commentService{comments: comments, deals: deals, boards: boards, access: access, hub: hub}
}

func (s *commentService) Create(actor domain.Actor, dealID uint64, req *domain.CreateCommentRequest) (*domain.CommentResponse, error) {
	deal, err := s.deals.FindByID(dealID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionComment, deal.BoardID, actor.ID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, common.NewValidationError("content", "is required")
	}

	comment := &domain.Comment{
		DealID:  dealID,
		UserID:  actor.ID,
		Content: req.Content,
	}
	activity := &domain.ActivityRecord{
		DealID:      dealID,
		UserID:      actor.ID,
		ActionType:  domain.ActionCommented,
		Description: fmt.Sprintf("%s commented on '%s'", actor.FullName, deal.Name),
	}

	if err := s.comments.CreateWithActivity(comment, activity); err != nil {
		return nil, err
	}

	members, err := s.boards.ListMembers(deal.BoardID)
	if err != nil {
		members = nil // mention resolution degrades, the comment stands
	}
	resp := s.toResponse(comment, actor.FullName, members)

	if s.hub != nil {
		s.hub.PublishBoard(deal.BoardID, "comment.created", resp)
	}
	return resp, nil
}

func (s *commentService) ListByDeal(actor domain.Actor, dealID uint64) ([]*domain.CommentResponse, error) {
	deal, err := s.deals.FindByID(dealID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionView, deal.BoardID, actor.ID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByDeal(dealID)
	if err != nil {
		return nil, err
	}

	members, err := s.boards.ListMembers(deal.BoardID)
	if err != nil {
		return nil, err
	}
	nameOf := make(map[uint64]string, len(members))
	for _, m := range members {
		nameOf[m.UserID] = m.FullName
	}

	responses := make([]*domain.CommentResponse, len(comments))
	for i := range comments {
		responses[i] = s.toResponse(&comments[i], nameOf[comments[i].UserID], members)
	}
	return responses, nil
}

func (s *commentService) toResponse(c *domain.Comment, userName string, members []domain.BoardMember) *domain.CommentResponse {
	return &domain.CommentResponse{
		ID:        c.ID,
		DealID:    c.DealID,
		UserID:    c.UserID,
		UserName:  userName,
		Content:   c.Content,
		Mentions:  mention.Resolve(c.Content, members),
		CreatedAt: c.CreatedAt,
	}
}
