package domain

import "time"

// VoteChoice is a partner's position on a deal
type VoteChoice string

const (
	VoteApprove VoteChoice = "approve"
	VoteDecline VoteChoice = "decline"
)

// ValidVoteChoice reports whether v is a known vote choice
func ValidVoteChoice(v VoteChoice) bool {
	return v == VoteApprove || v == VoteDecline
}

// Vote is one user's vote on a deal. At most one row per (deal, user);
// a resubmission updates the existing row.
type Vote struct {
	ID        uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DealID    uint64     `gorm:"column:deal_id;uniqueIndex:uniq_deal_voter" json:"deal_id"`
	UserID    uint64     `gorm:"column:user_id;uniqueIndex:uniq_deal_voter" json:"user_id"`
	Vote      VoteChoice `gorm:"column:vote;type:varchar(10)" json:"vote"`
	Comment   string     `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Vote) TableName() string { return "votes" }

// CastVoteRequest payload for casting or updating a vote
type CastVoteRequest struct {
	Vote    VoteChoice `json:"vote" binding:"required"`
	Comment string     `json:"comment"`
}
