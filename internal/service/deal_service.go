package service

import (
	"fmt"
	"strings"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/repository"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/view"
)

// Broadcaster pushes board-scoped events to live subscribers. The websocket
// hub implements it; a nil Broadcaster disables live updates.
type Broadcaster interface {
	PublishBoard(boardID uint64, eventType string, payload interface{})
}

// DealService is the pipeline transition engine: it validates and applies
// deal mutations, emits activity records, and routes writes through the
// per-board optimistic view so callers observe speculative state that
// converges to store truth.
type DealService interface {
	Create(actor domain.Actor, req *domain.CreateDealRequest) (*domain.Deal, error)
	Get(actor domain.Actor, dealID uint64) (*domain.Deal, error)
	ListByBoard(actor domain.Actor, boardID uint64) ([]domain.Deal, error)
	ListVisible(actor domain.Actor) ([]domain.Deal, error)
	Update(actor domain.Actor, dealID uint64, patch *domain.DealPatch) (*domain.Deal, error)
	Delete(actor domain.Actor, dealID uint64) error
}

type dealService struct {
	deals  repository.DealRepository
	boards repository.BoardRepository
	access AccessService
	views  *view.Registry
	hub    Broadcaster
}

// NewDealService creates a new DealService
func NewDealService(
	deals repository.DealRepository,
	boards repository.BoardRepository,
	access AccessService,
	views *view.Registry,
	hub Broadcaster,
) DealService {
	return &dealService{deals: deals, boards: boards, access: access, views: views, hub: hub}
}

func (s *dealService) Create(actor domain.Actor, req *domain.CreateDealRequest) (*domain.Deal, error) {
	if _, err := s.boards.FindByID(req.BoardID); err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionCreateDeal, req.BoardID, actor.ID); err != nil {
		return nil, err
	}

	// validation happens before any mutation or event emission
	if strings.TrimSpace(req.Name) == "" {
		return nil, common.NewValidationError("name", "is required")
	}
	stage := req.Stage
	if stage == "" {
		stage = domain.StageSourced
	}
	if !domain.ValidStage(stage) {
		return nil, common.NewValidationError("stage", fmt.Sprintf("unknown stage %q", stage))
	}

	deal := &domain.Deal{
		BoardID:    req.BoardID,
		OwnerID:    actor.ID,
		Name:       strings.TrimSpace(req.Name),
		CompanyURL: req.CompanyURL,
		Round:      req.Round,
		CheckSize:  req.CheckSize,
		Stage:      stage,
		Status:     domain.StatusActive,
	}
	activity := &domain.ActivityRecord{
		UserID:      actor.ID,
		ActionType:  domain.ActionCreated,
		Description: fmt.Sprintf("%s created deal '%s'", actor.FullName, deal.Name),
	}

	bv := s.views.Board(req.BoardID)
	err := bv.Mutate(
		func(deals []domain.Deal) []domain.Deal {
			// speculative entry has no store-assigned ID yet; the
			// post-write refresh reconciles it
			return append(deals, *deal)
		},
		func() error { return s.deals.CreateWithActivity(deal, activity) },
		s.refreshFunc(req.BoardID),
	)
	if err != nil {
		return nil, err
	}

	s.publish(req.BoardID, "deal.created", deal)
	return deal, nil
}

func (s *dealService) Get(actor domain.Actor, dealID uint64) (*domain.Deal, error) {
	deal, err := s.deals.FindByID(dealID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionView, deal.BoardID, actor.ID); err != nil {
		return nil, err
	}
	return deal, nil
}

// ListByBoard serves the board's visible collection: the optimistic view
// when seeded, otherwise the store (seeding the view on the way out).
func (s *dealService) ListByBoard(actor domain.Actor, boardID uint64) ([]domain.Deal, error) {
	if _, err := s.boards.FindByID(boardID); err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionView, boardID, actor.ID); err != nil {
		return nil, err
	}

	bv := s.views.Board(boardID)
	if bv.Seeded() {
		return bv.Deals(), nil
	}

	deals, err := s.deals.ListByBoard(boardID)
	if err != nil {
		return nil, err
	}
	bv.Seed(deals)
	return deals, nil
}

// ListVisible returns deals from every board the actor can read
func (s *dealService) ListVisible(actor domain.Actor) ([]domain.Deal, error) {
	boards, err := s.boards.ListVisible(actor.ID)
	if err != nil {
		return nil, err
	}

	boardIDs := make([]uint64, len(boards))
	for i, b := range boards {
		boardIDs[i] = b.ID
	}
	return s.deals.ListByBoards(boardIDs)
}

// Update applies a partial patch per the transition rules: any stage may
// move to any stage; a same-stage patch is a no-op and emits nothing; a
// stage change emits exactly one stage_change record with from/to metadata;
// other field diffs emit one updated record. Validation rejects before any
// mutation, and the write plus its activity appends are all-or-nothing.
func (s *dealService) Update(actor domain.Actor, dealID uint64, patch *domain.DealPatch) (*domain.Deal, error) {
	deal, err := s.deals.FindByID(dealID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionEditDeal, deal.BoardID, actor.ID); err != nil {
		return nil, err
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, common.NewValidationError("name", "is required")
	}
	if patch.Stage != nil && !domain.ValidStage(*patch.Stage) {
		return nil, common.NewValidationError("stage", fmt.Sprintf("unknown stage %q", *patch.Stage))
	}
	if patch.Status != nil && !domain.ValidDealStatus(*patch.Status) {
		return nil, common.NewValidationError("status", fmt.Sprintf("unknown status %q", *patch.Status))
	}

	updated := *deal
	fieldsChanged := false
	if patch.Name != nil && *patch.Name != deal.Name {
		updated.Name = strings.TrimSpace(*patch.Name)
		fieldsChanged = true
	}
	if patch.CompanyURL != nil && *patch.CompanyURL != deal.CompanyURL {
		updated.CompanyURL = *patch.CompanyURL
		fieldsChanged = true
	}
	if patch.Round != nil && *patch.Round != deal.Round {
		updated.Round = *patch.Round
		fieldsChanged = true
	}
	if patch.CheckSize != nil && *patch.CheckSize != deal.CheckSize {
		updated.CheckSize = *patch.CheckSize
		fieldsChanged = true
	}
	if patch.Status != nil && *patch.Status != deal.Status {
		updated.Status = *patch.Status
		fieldsChanged = true
	}

	stageChanged := patch.Stage != nil && *patch.Stage != deal.Stage
	if stageChanged {
		updated.Stage = *patch.Stage
	}

	if !stageChanged && !fieldsChanged {
		// strict no-op: no write, no activity
		return deal, nil
	}

	var activities []*domain.ActivityRecord
	if stageChanged {
		activities = append(activities, &domain.ActivityRecord{
			UserID:     actor.ID,
			ActionType: domain.ActionStageChange,
			Description: fmt.Sprintf("%s moved '%s' from %s to %s",
				actor.FullName, updated.Name, deal.Stage, updated.Stage),
			Metadata: domain.EncodeStageChangeMeta(deal.Stage, updated.Stage),
		})
	}
	if fieldsChanged {
		activities = append(activities, &domain.ActivityRecord{
			UserID:      actor.ID,
			ActionType:  domain.ActionUpdated,
			Description: fmt.Sprintf("%s updated deal '%s'", actor.FullName, updated.Name),
		})
	}

	bv := s.views.Board(deal.BoardID)
	err = bv.Mutate(
		func(deals []domain.Deal) []domain.Deal {
			for i := range deals {
				if deals[i].ID == dealID {
					deals[i] = updated
				}
			}
			return deals
		},
		func() error { return s.deals.UpdateWithActivities(&updated, activities) },
		s.refreshFunc(deal.BoardID),
	)
	if err != nil {
		return nil, err
	}

	s.publish(deal.BoardID, "deal.updated", &updated)
	return &updated, nil
}

func (s *dealService) Delete(actor domain.Actor, dealID uint64) error {
	deal, err := s.deals.FindByID(dealID)
	if err != nil {
		return err
	}
	_, isMember, err := s.access.Resolve(deal.BoardID, actor.ID)
	if err != nil {
		return err
	}
	// board role is irrelevant for deletion, but a non-member still has no
	// access to the board at all; only the global admin crosses that line
	if !isMember && !actor.IsAdmin {
		return common.ErrNoBoardAccess
	}
	if err := s.access.AuthorizeDealDelete(actor, deal); err != nil {
		return err
	}

	bv := s.views.Board(deal.BoardID)
	err = bv.Mutate(
		func(deals []domain.Deal) []domain.Deal {
			out := deals[:0]
			for _, d := range deals {
				if d.ID != dealID {
					out = append(out, d)
				}
			}
			return out
		},
		func() error { return s.deals.DeleteCascade(dealID) },
		s.refreshFunc(deal.BoardID),
	)
	if err != nil {
		return err
	}

	s.publish(deal.BoardID, "deal.deleted", deal)
	return nil
}

func (s *dealService) refreshFunc(boardID uint64) view.RefreshFunc {
	return func() ([]domain.Deal, error) {
		return s.deals.ListByBoard(boardID)
	}
}

func (s *dealService) publish(boardID uint64, eventType string, payload interface{}) {
	if s.hub != nil {
		s.hub.PublishBoard(boardID, eventType, payload)
	}
}
