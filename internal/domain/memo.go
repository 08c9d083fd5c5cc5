package domain

import "time"

// MemoVersion is one immutable snapshot in a deal's IC memo history.
// Version numbers are per-deal, monotonic, starting at 1; edits always
// append a new version and never touch prior ones.
type MemoVersion struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DealID        uint64    `gorm:"column:deal_id;uniqueIndex:uniq_deal_version" json:"deal_id"`
	Version       uint      `gorm:"column:version;uniqueIndex:uniq_deal_version" json:"version"`
	Summary       string    `gorm:"column:summary;type:text" json:"summary"`
	Market        string    `gorm:"column:market;type:text" json:"market"`
	Product       string    `gorm:"column:product;type:text" json:"product"`
	Traction      string    `gorm:"column:traction;type:text" json:"traction"`
	Risks         string    `gorm:"column:risks;type:text" json:"risks"`
	OpenQuestions string    `gorm:"column:open_questions;type:text" json:"open_questions"`
	CreatedBy     uint64    `gorm:"column:created_by" json:"created_by"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (MemoVersion) TableName() string { return "memo_versions" }

// MemoPatch is a partial memo edit; nil sections are carried forward
// from the previous version when the new version is built.
type MemoPatch struct {
	Summary       *string `json:"summary"`
	Market        *string `json:"market"`
	Product       *string `json:"product"`
	Traction      *string `json:"traction"`
	Risks         *string `json:"risks"`
	OpenQuestions *string `json:"open_questions"`
}
