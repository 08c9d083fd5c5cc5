package service

import (
	"errors"
	"fmt"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/repository"
)

// MemoService is the versioned document store for IC memos. Versions are
// append-only: an edit creates version N+1 seeded from version N's fields;
// nothing ever mutates or deletes a written version.
type MemoService interface {
	AppendVersion(actor domain.Actor, dealID uint64, patch *domain.MemoPatch) (*domain.MemoVersion, error)
	GetCurrent(actor domain.Actor, dealID uint64) (*domain.MemoVersion, error)
	GetVersion(actor domain.Actor, dealID uint64, version uint) (*domain.MemoVersion, error)
	ListVersions(actor domain.Actor, dealID uint64) ([]*domain.MemoVersion, error)
}

type memoService struct {
	memos  repository.MemoRepository
	deals  repository.DealRepository
	access AccessService
}

// NewMemoService creates a new MemoService
func NewMemoService(
	memos repository.MemoRepository,
	deals repository.DealRepository,
	access AccessService,
) MemoService {
	return &memoService{memos: memos, deals: deals, access: access}
}

func (s *memoService) AppendVersion(actor domain.Actor, dealID uint64, patch *domain.MemoPatch) (*domain.MemoVersion, error) {
	deal, err := s.deals.FindByID(dealID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionEditMemo, deal.BoardID, actor.ID); err != nil {
		return nil, err
	}

	// seed unset sections from the previous version
	var prev *domain.MemoVersion
	current, err := s.memos.FindCurrent(dealID)
	switch {
	case err == nil:
		prev = current
	case errors.Is(err, common.ErrMemoNotFound):
		prev = &domain.MemoVersion{}
	default:
		return nil, err
	}

	next, err := s.memos.NextVersion(dealID)
	if err != nil {
		return nil, err
	}

	version := &domain.MemoVersion{
		DealID:        dealID,
		Version:       next,
		Summary:       pick(patch.Summary, prev.Summary),
		Market:        pick(patch.Market, prev.Market),
		Product:       pick(patch.Product, prev.Product),
		Traction:      pick(patch.Traction, prev.Traction),
		Risks:         pick(patch.Risks, prev.Risks),
		OpenQuestions: pick(patch.OpenQuestions, prev.OpenQuestions),
		CreatedBy:     actor.ID,
	}

	activity := &domain.ActivityRecord{
		DealID: dealID,
		UserID: actor.ID,
	}
	if next == 1 {
		activity.ActionType = domain.ActionMemoCreated
		activity.Description = fmt.Sprintf("%s created IC memo for '%s'", actor.FullName, deal.Name)
	} else {
		activity.ActionType = domain.ActionMemoUpdated
		activity.Description = fmt.Sprintf("%s updated IC memo (v%d) for '%s'", actor.FullName, next, deal.Name)
	}

	if err := s.memos.AppendWithActivity(version, activity); err != nil {
		return nil, err
	}
	return version, nil
}

func (s *memoService) GetCurrent(actor domain.Actor, dealID uint64) (*domain.MemoVersion, error) {
	if err := s.requireRead(actor, dealID); err != nil {
		return nil, err
	}
	return s.memos.FindCurrent(dealID)
}

func (s *memoService) GetVersion(actor domain.Actor, dealID uint64, version uint) (*domain.MemoVersion, error) {
	if err := s.requireRead(actor, dealID); err != nil {
		return nil, err
	}
	// exact version only; never interpolated or merged across versions
	return s.memos.FindByDealAndVersion(dealID, version)
}

func (s *memoService) ListVersions(actor domain.Actor, dealID uint64) ([]*domain.MemoVersion, error) {
	if err := s.requireRead(actor, dealID); err != nil {
		return nil, err
	}
	return s.memos.ListByDeal(dealID)
}

func (s *memoService) requireRead(actor domain.Actor, dealID uint64) error {
	deal, err := s.deals.FindByID(dealID)
	if err != nil {
		return err
	}
	_, err = s.access.Require(ActionView, deal.BoardID, actor.ID)
	return err
}

func pick(patched *string, previous string) string {
	if patched != nil {
		return *patched
	}
	return previous
}
