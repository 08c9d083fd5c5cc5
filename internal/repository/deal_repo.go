package repository

import (
	"context"
	"errors"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/pkg/cache"
	"gorm.io/gorm"
)

// DealRepository deal data access. Multi-row writes (deal + activity) are
// transactional so callers get all-or-nothing semantics.
type DealRepository interface {
	CreateWithActivity(deal *domain.Deal, activity *domain.ActivityRecord) error
	FindByID(id uint64) (*domain.Deal, error)
	ListByBoard(boardID uint64) ([]domain.Deal, error)
	ListByBoards(boardIDs []uint64) ([]domain.Deal, error)
	UpdateWithActivities(deal *domain.Deal, activities []*domain.ActivityRecord) error
	DeleteCascade(dealID uint64) error
}

type dealRepository struct {
	db    *gorm.DB
	cache cache.Service
}

// NewDealRepository creates a new DealRepository
func NewDealRepository(db *gorm.DB, cacheService cache.Service) DealRepository {
	return &dealRepository{db: db, cache: cacheService}
}

func (r *dealRepository) CreateWithActivity(deal *domain.Deal, activity *domain.ActivityRecord) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(deal).Error; err != nil {
			return err
		}
		activity.DealID = deal.ID
		return tx.Create(activity).Error
	})
	if err != nil {
		return err
	}

	r.invalidate(deal.BoardID)
	return nil
}

func (r *dealRepository) FindByID(id uint64) (*domain.Deal, error) {
	var deal domain.Deal
	err := r.db.First(&deal, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *dealRepository) ListByBoard(boardID uint64) ([]domain.Deal, error) {
	var deals []domain.Deal
	err := r.db.Where("board_id = ?", boardID).Order("created_at ASC").Find(&deals).Error
	return deals, err
}

func (r *dealRepository) ListByBoards(boardIDs []uint64) ([]domain.Deal, error) {
	if len(boardIDs) == 0 {
		return []domain.Deal{}, nil
	}
	var deals []domain.Deal
	err := r.db.Where("board_id IN ?", boardIDs).Order("created_at ASC").Find(&deals).Error
	return deals, err
}

// UpdateWithActivities saves the deal and appends its activity records in
// one transaction. A concurrent delete of the deal surfaces as ErrConflict.
func (r *dealRepository) UpdateWithActivities(deal *domain.Deal, activities []*domain.ActivityRecord) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Deal{}).Where("id = ?", deal.ID).Updates(map[string]interface{}{
			"name":        deal.Name,
			"company_url": deal.CompanyURL,
			"round":       deal.Round,
			"check_size":  deal.CheckSize,
			"stage":       deal.Stage,
			"status":      deal.Status,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrConflict
		}

		for _, a := range activities {
			a.DealID = deal.ID
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(deal.BoardID)
	return nil
}

// DeleteCascade removes a deal and everything it owns
func (r *dealRepository) DeleteCascade(dealID uint64) error {
	var boardID uint64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var deal domain.Deal
		if err := tx.First(&deal, dealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrDealNotFound
			}
			return err
		}
		boardID = deal.BoardID

		for _, model := range []interface{}{
			&domain.ActivityRecord{}, &domain.MemoVersion{}, &domain.Comment{}, &domain.Vote{},
		} {
			if err := tx.Where("deal_id = ?", dealID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&domain.Deal{}, dealID).Error
	})
	if err != nil {
		return err
	}

	r.invalidate(boardID)
	return nil
}

func (r *dealRepository) invalidate(boardID uint64) {
	if r.cache != nil && r.cache.IsAvailable() {
		_ = r.cache.InvalidateDeals(context.Background(), boardID)
	}
}
