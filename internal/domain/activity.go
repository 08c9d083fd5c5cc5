package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ActionType classifies an activity record
type ActionType string

const (
	ActionCreated     ActionType = "created"
	ActionStageChange ActionType = "stage_change"
	ActionUpdated     ActionType = "updated"
	ActionCommented   ActionType = "commented"
	ActionVoted       ActionType = "voted"
	ActionMemoCreated ActionType = "memo_created"
	ActionMemoUpdated ActionType = "memo_updated"
)

// ActivityRecord is one immutable entry in a deal's append-only audit trail
type ActivityRecord struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DealID      uint64         `gorm:"column:deal_id;index" json:"deal_id"`
	UserID      uint64         `gorm:"column:user_id;index" json:"user_id"`
	ActionType  ActionType     `gorm:"column:action_type;type:varchar(20)" json:"action_type"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Metadata    datatypes.JSON `gorm:"column:metadata;type:json" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ActivityRecord) TableName() string { return "activities" }

// StageChangeMeta is the metadata shape attached to stage_change records
type StageChangeMeta struct {
	FromStage Stage `json:"from_stage"`
	ToStage   Stage `json:"to_stage"`
}

// EncodeStageChangeMeta marshals stage transition metadata.
// Marshal of this struct cannot fail, so the error is dropped.
func EncodeStageChangeMeta(from, to Stage) datatypes.JSON {
	b, _ := json.Marshal(StageChangeMeta{FromStage: from, ToStage: to})
	return datatypes.JSON(b)
}

// FeedEntry is an activity record annotated with its deal's name,
// as produced by the cross-deal aggregated feed.
type FeedEntry struct {
	ActivityRecord
	DealName string `json:"deal_name"`
}
