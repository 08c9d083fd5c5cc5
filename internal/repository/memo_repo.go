package repository

import (
	"errors"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"gorm.io/gorm"
)

// MemoRepository memo version data access. The version chain is append-only:
// no update or delete of existing versions exists here.
type MemoRepository interface {
	AppendWithActivity(version *domain.MemoVersion, activity *domain.ActivityRecord) error
	FindCurrent(dealID uint64) (*domain.MemoVersion, error)
	FindByDealAndVersion(dealID uint64, version uint) (*domain.MemoVersion, error)
	ListByDeal(dealID uint64) ([]*domain.MemoVersion, error)
	NextVersion(dealID uint64) (uint, error)
}

type memoRepository struct {
	db *gorm.DB
}

// NewMemoRepository creates a new MemoRepository
func NewMemoRepository(db *gorm.DB) MemoRepository {
	return &memoRepository{db: db}
}

// AppendWithActivity inserts the new version and its activity record in one
// transaction. The unique (deal_id, version) index rejects a concurrent
// append of the same version number; that surfaces as ErrConflict.
func (r *memoRepository) AppendWithActivity(version *domain.MemoVersion, activity *domain.ActivityRecord) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(version).Error; err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrConflict
		}
		return err
	}
	return nil
}

func (r *memoRepository) FindCurrent(dealID uint64) (*domain.MemoVersion, error) {
	var version domain.MemoVersion
	err := r.db.Where("deal_id = ?", dealID).Order("version DESC").First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrMemoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *memoRepository) FindByDealAndVersion(dealID uint64, versionNum uint) (*domain.MemoVersion, error) {
	var version domain.MemoVersion
	err := r.db.Where("deal_id = ? AND version = ?", dealID, versionNum).First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrMemoVersionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *memoRepository) ListByDeal(dealID uint64) ([]*domain.MemoVersion, error) {
	var versions []*domain.MemoVersion
	err := r.db.Where("deal_id = ?", dealID).Order("version DESC").Find(&versions).Error
	return versions, err
}

// NextVersion returns 1 + the current max version for the deal (1 if none)
func (r *memoRepository) NextVersion(dealID uint64) (uint, error) {
	var maxVersion *uint
	err := r.db.Model(&domain.MemoVersion{}).
		Where("deal_id = ?", dealID).
		Select("MAX(version)").
		Scan(&maxVersion).Error
	if err != nil {
		return 1, err
	}
	if maxVersion == nil {
		return 1, nil
	}
	return *maxVersion + 1, nil
}
