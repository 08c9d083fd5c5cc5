package service

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/repository"
)

// Action is an operation gated by board role
type Action string

const (
	ActionView          Action = "view"
	ActionCreateDeal    Action = "create_deal"
	ActionEditDeal      Action = "edit_deal"
	ActionEditMemo      Action = "edit_memo"
	ActionComment       Action = "comment"
	ActionVote          Action = "vote"
	ActionManageMembers Action = "manage_members"
	ActionManageBoard   Action = "manage_board"
)

// AccessService computes effective board roles and gates operations.
// Authorize never mutates state; callers check it before any side effect.
type AccessService interface {
	// Resolve returns the user's role on the board and whether a membership
	// row exists at all. A role-less membership (RoleNone, true) grants
	// read access only.
	Resolve(boardID, userID uint64) (domain.Role, bool, error)
	// Authorize checks that a resolved (role, member) pair may perform the
	// action, returning ErrPermissionDenied (or ErrNoBoardAccess when no
	// membership exists) otherwise.
	Authorize(action Action, role domain.Role, isMember bool) error
	// Require resolves and authorizes in one step
	Require(action Action, boardID, userID uint64) (domain.Role, error)
	// AuthorizeDealDelete gates deal deletion: the deal's owner or a global
	// admin may delete, regardless of board role.
	AuthorizeDealDelete(actor domain.Actor, deal *domain.Deal) error
}

type accessService struct {
	boards repository.BoardRepository
}

// NewAccessService creates a new AccessService
func NewAccessService(boards repository.BoardRepository) AccessService {
	return &accessService{boards: boards}
}

// Resolve is an indexed lookup over the board's role map (Redis-backed),
// not a scan of the membership list. The board creator is always treated
// as a member even if the membership row was tampered away.
func (s *accessService) Resolve(boardID, userID uint64) (domain.Role, bool, error) {
	roles, err := s.boards.RoleMap(boardID)
	if err != nil {
		return domain.RoleNone, false, err
	}

	if role, ok := roles[userID]; ok {
		return role, true, nil
	}

	board, err := s.boards.FindByID(boardID)
	if err != nil {
		return domain.RoleNone, false, err
	}
	if board.CreatedBy == userID {
		return domain.RoleAdmin, true, nil
	}

	return domain.RoleNone, false, nil
}

func (s *accessService) Authorize(action Action, role domain.Role, isMember bool) error {
	if !isMember {
		return common.ErrNoBoardAccess
	}

	switch action {
	case ActionView:
		// any membership, including role-less, may read
		return nil
	case ActionCreateDeal, ActionEditDeal, ActionEditMemo, ActionComment:
		if role == domain.RoleAdmin || role == domain.RoleAnalyst {
			return nil
		}
	case ActionVote:
		if role == domain.RoleAdmin || role == domain.RolePartner {
			return nil
		}
	case ActionManageMembers, ActionManageBoard:
		if role == domain.RoleAdmin {
			return nil
		}
	}

	return common.ErrPermissionDenied
}

func (s *accessService) Require(action Action, boardID, userID uint64) (domain.Role, error) {
	role, isMember, err := s.Resolve(boardID, userID)
	if err != nil {
		return domain.RoleNone, err
	}
	if err := s.Authorize(action, role, isMember); err != nil {
		return domain.RoleNone, err
	}
	return role, nil
}

// AuthorizeDealDelete ignores board role. Ownership or the global admin
// flag decides.
func (s *accessService) AuthorizeDealDelete(actor domain.Actor, deal *domain.Deal) error {
	if actor.IsAdmin || deal.OwnerID == actor.ID {
		return nil
	}
	return common.ErrPermissionDenied
}
