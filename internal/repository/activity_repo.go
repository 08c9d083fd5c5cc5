package repository

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"gorm.io/gorm"
)

// ActivityRepository activity record data access. Records are append-only;
// there is deliberately no update or delete of individual rows.
type ActivityRepository interface {
	Create(activity *domain.ActivityRecord) error
	ListByDeal(dealID uint64) ([]domain.ActivityRecord, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *domain.ActivityRecord) error {
	return r.db.Create(activity).Error
}

// ListByDeal returns a deal's records newest first, insertion order
// breaking created_at ties so the stream ordering is deterministic.
func (r *activityRepository) ListByDeal(dealID uint64) ([]domain.ActivityRecord, error) {
	var activities []domain.ActivityRecord
	err := r.db.Where("deal_id = ?", dealID).
		Order("created_at DESC, id DESC").
		Find(&activities).Error
	return activities, err
}
