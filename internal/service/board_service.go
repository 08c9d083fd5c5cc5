package service

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/repository"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/view"
)

// BoardService board and membership operations
type BoardService interface {
	Create(actor domain.Actor, req *domain.CreateBoardRequest) (*domain.BoardResponse, error)
	Get(actor domain.Actor, boardID uint64) (*domain.BoardResponse, error)
	ListVisible(actor domain.Actor) ([]*domain.BoardResponse, error)
	Update(actor domain.Actor, boardID uint64, req *domain.UpdateBoardRequest) (*domain.BoardResponse, error)
	Delete(actor domain.Actor, boardID uint64) error
	AddMember(actor domain.Actor, boardID, userID uint64, role domain.Role) error
	RemoveMember(actor domain.Actor, boardID, userID uint64) error
}

type boardService struct {
	boards repository.BoardRepository
	users  repository.UserRepository
	access AccessService
	views  *view.Registry
}

// NewBoardService creates a new BoardService
func NewBoardService(
	boards repository.BoardRepository,
	users repository.UserRepository,
	access AccessService,
	views *view.Registry,
) BoardService {
	return &boardService{boards: boards, users: users, access: access, views: views}
}

// Create makes a board with the creator as its ADMIN member
func (s *boardService) Create(actor domain.Actor, req *domain.CreateBoardRequest) (*domain.BoardResponse, error) {
	board := &domain.Board{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   actor.ID,
	}
	membership := &domain.Membership{
		UserID:    actor.ID,
		BoardRole: domain.RoleAdmin,
	}

	if err := s.boards.Create(board, membership); err != nil {
		return nil, err
	}
	return s.toResponse(board)
}

func (s *boardService) Get(actor domain.Actor, boardID uint64) (*domain.BoardResponse, error) {
	board, err := s.boards.FindByID(boardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionView, boardID, actor.ID); err != nil {
		return nil, err
	}
	return s.toResponse(board)
}

func (s *boardService) ListVisible(actor domain.Actor) ([]*domain.BoardResponse, error) {
	boards, err := s.boards.ListVisible(actor.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.BoardResponse, 0, len(boards))
	for _, b := range boards {
		resp, err := s.toResponse(b)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *boardService) Update(actor domain.Actor, boardID uint64, req *domain.UpdateBoardRequest) (*domain.BoardResponse, error) {
	board, err := s.boards.FindByID(boardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionManageBoard, boardID, actor.ID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, common.NewValidationError("name", "is required")
		}
		board.Name = *req.Name
	}
	if req.Description != nil {
		board.Description = *req.Description
	}

	if err := s.boards.Update(board); err != nil {
		return nil, err
	}
	return s.toResponse(board)
}

// Delete removes the board and cascades to everything it owns. Only the
// creator may delete a board.
func (s *boardService) Delete(actor domain.Actor, boardID uint64) error {
	board, err := s.boards.FindByID(boardID)
	if err != nil {
		return err
	}
	if board.CreatedBy != actor.ID {
		return common.ErrPermissionDenied
	}

	if err := s.boards.DeleteCascade(boardID); err != nil {
		return err
	}
	if s.views != nil {
		s.views.Drop(boardID)
	}
	return nil
}

// AddMember upserts the (board, user) membership. An empty role is valid
// and grants read-only access.
func (s *boardService) AddMember(actor domain.Actor, boardID, userID uint64, role domain.Role) error {
	if _, err := s.boards.FindByID(boardID); err != nil {
		return err
	}
	if _, err := s.access.Require(ActionManageMembers, boardID, actor.ID); err != nil {
		return err
	}
	if !domain.ValidRole(role) {
		return common.NewValidationError("role", "unknown board role")
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return err
	}

	return s.boards.UpsertMember(&domain.Membership{
		BoardID:   boardID,
		UserID:    userID,
		BoardRole: role,
	})
}

func (s *boardService) RemoveMember(actor domain.Actor, boardID, userID uint64) error {
	board, err := s.boards.FindByID(boardID)
	if err != nil {
		return err
	}
	if _, err := s.access.Require(ActionManageMembers, boardID, actor.ID); err != nil {
		return err
	}
	// the creator is an implicit member and cannot be removed
	if userID == board.CreatedBy {
		return common.NewValidationError("user_id", "cannot remove the board creator")
	}

	return s.boards.RemoveMember(boardID, userID)
}

func (s *boardService) toResponse(board *domain.Board) (*domain.BoardResponse, error) {
	members, err := s.boards.ListMembers(board.ID)
	if err != nil {
		return nil, err
	}
	return &domain.BoardResponse{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		CreatedBy:   board.CreatedBy,
		IsDefault:   board.IsDefault,
		Members:     members,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}, nil
}
