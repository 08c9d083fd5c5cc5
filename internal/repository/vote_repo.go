package repository

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRepository vote data access
type VoteRepository interface {
	// UpsertWithActivity writes the single (deal, user) vote row, updating
	// it if the user voted before, and appends the activity record.
	UpsertWithActivity(vote *domain.Vote, activity *domain.ActivityRecord) error
	ListByDeal(dealID uint64) ([]domain.Vote, error)
	FindByDealAndUser(dealID, userID uint64) (*domain.Vote, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) UpsertWithActivity(vote *domain.Vote, activity *domain.ActivityRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "deal_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"vote", "comment", "updated_at"}),
		}).Create(vote).Error
		if err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
}

func (r *voteRepository) ListByDeal(dealID uint64) ([]domain.Vote, error) {
	var votes []domain.Vote
	err := r.db.Where("deal_id = ?", dealID).Order("created_at ASC").Find(&votes).Error
	return votes, err
}

func (r *voteRepository) FindByDealAndUser(dealID, userID uint64) (*domain.Vote, error) {
	var vote domain.Vote
	err := r.db.Where("deal_id = ? AND user_id = ?", dealID, userID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}
