package repository

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository comment data access
type CommentRepository interface {
	CreateWithActivity(comment *domain.Comment, activity *domain.ActivityRecord) error
	ListByDeal(dealID uint64) ([]domain.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateWithActivity(comment *domain.Comment, activity *domain.ActivityRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
}

func (r *commentRepository) ListByDeal(dealID uint64) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.Where("deal_id = ?", dealID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}
