package service

import (
	"fmt"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/repository"
)

// VoteService vote operations. One vote per (deal, user): a resubmission
// updates the existing row instead of adding another.
type VoteService interface {
	Cast(actor domain.Actor, dealID uint64, req *domain.CastVoteRequest) (*domain.Vote, error)
	ListByDeal(actor domain.Actor, dealID uint64) ([]domain.Vote, error)
}

type voteService struct {
	votes  repository.VoteRepository
	deals  repository.DealRepository
	access AccessService
	hub    Broadcaster
}

// NewVoteService creates a new VoteService
func NewVoteService(
	votes repository.VoteRepository,
	deals repository.DealRepository,
	access AccessService,
	hub Broadcaster,
) VoteService {
	return &voteService{votes: votes, deals: deals, access: access, hub: hub}
}

func (s *voteService) Cast(actor domain.Actor, dealID uint64, req *domain.CastVoteRequest) (*domain.Vote, error) {
	deal, err := s.deals.FindByID(dealID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionVote, deal.BoardID, actor.ID); err != nil {
		return nil, err
	}
	if !domain.ValidVoteChoice(req.Vote) {
		return nil, common.NewValidationError("vote", fmt.Sprintf("unknown vote %q", req.Vote))
	}

	vote := &domain.Vote{
		DealID:  dealID,
		UserID:  actor.ID,
		Vote:    req.Vote,
		Comment: req.Comment,
	}
	activity := &domain.ActivityRecord{
		DealID:      dealID,
		UserID:      actor.ID,
		ActionType:  domain.ActionVoted,
		Description: fmt.Sprintf("%s voted to %s '%s'", actor.FullName, req.Vote, deal.Name),
	}

	if err := s.votes.UpsertWithActivity(vote, activity); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.PublishBoard(deal.BoardID, "vote.cast", vote)
	}
	return vote, nil
}

func (s *voteService) ListByDeal(actor domain.Actor, dealID uint64) ([]domain.Vote, error) {
	deal, err := s.deals.FindByID(dealID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionView, deal.BoardID, actor.ID); err != nil {
		return nil, err
	}
	return s.votes.ListByDeal(dealID)
}
