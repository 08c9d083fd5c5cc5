package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/pkg/cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoardRepository board and membership data access
type BoardRepository interface {
	Create(board *domain.Board, creatorMembership *domain.Membership) error
	FindByID(id uint64) (*domain.Board, error)
	FindDefault() (*domain.Board, error)
	ListVisible(userID uint64) ([]*domain.Board, error)
	Update(board *domain.Board) error
	DeleteCascade(boardID uint64) error

	UpsertMember(m *domain.Membership) error
	RemoveMember(boardID, userID uint64) error
	ListMembers(boardID uint64) ([]domain.BoardMember, error)
	// RoleMap returns the (user_id -> role) index for a board. Users absent
	// from the map have no membership at all.
	RoleMap(boardID uint64) (map[uint64]domain.Role, error)
}

type boardRepository struct {
	db    *gorm.DB
	cache cache.Service
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB, cacheService cache.Service) BoardRepository {
	return &boardRepository{db: db, cache: cacheService}
}

// Create inserts the board and the creator's ADMIN membership atomically
func (r *boardRepository) Create(board *domain.Board, creatorMembership *domain.Membership) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		creatorMembership.BoardID = board.ID
		return tx.Create(creatorMembership).Error
	})
}

func (r *boardRepository) FindByID(id uint64) (*domain.Board, error) {
	var board domain.Board
	err := r.db.First(&board, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) FindDefault() (*domain.Board, error) {
	var board domain.Board
	err := r.db.Where("is_default = ?", true).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) ListVisible(userID uint64) ([]*domain.Board, error) {
	var boards []*domain.Board
	err := r.db.
		Where("created_by = ? OR id IN (?)", userID,
			r.db.Model(&domain.Membership{}).Select("board_id").Where("user_id = ?", userID)).
		Order("created_at ASC").
		Find(&boards).Error
	return boards, err
}

func (r *boardRepository) Update(board *domain.Board) error {
	return r.db.Save(board).Error
}

// DeleteCascade removes a board and everything it owns: memberships, deals,
// and each deal's activities, memo versions, comments and votes.
func (r *boardRepository) DeleteCascade(boardID uint64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var dealIDs []uint64
		if err := tx.Model(&domain.Deal{}).Where("board_id = ?", boardID).Pluck("id", &dealIDs).Error; err != nil {
			return err
		}

		if len(dealIDs) > 0 {
			for _, model := range []interface{}{
				&domain.ActivityRecord{}, &domain.MemoVersion{}, &domain.Comment{}, &domain.Vote{},
			} {
				if err := tx.Where("deal_id IN ?", dealIDs).Delete(model).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("board_id = ?", boardID).Delete(&domain.Deal{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("board_id = ?", boardID).Delete(&domain.Membership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Board{}, boardID).Error
	})
	if err != nil {
		return err
	}

	r.invalidate(boardID)
	return nil
}

// UpsertMember inserts or updates the single (board, user) membership row
func (r *boardRepository) UpsertMember(m *domain.Membership) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "board_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"board_role"}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	r.invalidate(m.BoardID)
	return nil
}

func (r *boardRepository) RemoveMember(boardID, userID uint64) error {
	result := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).Delete(&domain.Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrMemberNotFound
	}

	r.invalidate(boardID)
	return nil
}

func (r *boardRepository) ListMembers(boardID uint64) ([]domain.BoardMember, error) {
	var members []domain.BoardMember
	err := r.db.Model(&domain.Membership{}).
		Select("board_members.user_id, users.email, users.full_name, board_members.board_role").
		Joins("JOIN users ON users.id = board_members.user_id").
		Where("board_members.board_id = ?", boardID).
		Order("board_members.joined_at ASC").
		Scan(&members).Error
	return members, err
}

// RoleMap serves from the Redis role index when warm, falling back to a
// single membership query and repopulating the cache.
func (r *boardRepository) RoleMap(boardID uint64) (map[uint64]domain.Role, error) {
	ctx := context.Background()

	if r.cache != nil && r.cache.IsAvailable() {
		if data, err := r.cache.GetBoardRoles(ctx, boardID); err == nil {
			var roles map[uint64]domain.Role
			if err := json.Unmarshal(data, &roles); err == nil {
				return roles, nil
			}
		}
	}

	var memberships []domain.Membership
	if err := r.db.Where("board_id = ?", boardID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	roles := make(map[uint64]domain.Role, len(memberships))
	for _, m := range memberships {
		roles[m.UserID] = m.BoardRole
	}

	if r.cache != nil && r.cache.IsAvailable() {
		_ = r.cache.SetBoardRoles(ctx, boardID, roles)
	}

	return roles, nil
}

func (r *boardRepository) invalidate(boardID uint64) {
	if r.cache != nil && r.cache.IsAvailable() {
		_ = r.cache.InvalidateBoardRoles(context.Background(), boardID)
		_ = r.cache.InvalidateDeals(context.Background(), boardID)
	}
}
