package domain

import "time"

// Stage is one of the six fixed pipeline buckets a deal occupies.
// The set is display-ordered only; any stage may transition to any other.
type Stage string

const (
	StageSourced   Stage = "Sourced"
	StageScreen    Stage = "Screen"
	StageDiligence Stage = "Diligence"
	StageIC        Stage = "IC"
	StageInvested  Stage = "Invested"
	StagePassed    Stage = "Passed"
)

// StageOrder is the column display order. Not a transition graph.
var StageOrder = []Stage{
	StageSourced,
	StageScreen,
	StageDiligence,
	StageIC,
	StageInvested,
	StagePassed,
}

// ValidStage reports whether s is in the fixed stage set
func ValidStage(s Stage) bool {
	for _, v := range StageOrder {
		if s == v {
			return true
		}
	}
	return false
}

// DealStatus is the lifecycle outcome of a deal
type DealStatus string

const (
	StatusActive   DealStatus = "active"
	StatusApproved DealStatus = "approved"
	StatusDeclined DealStatus = "declined"
)

// ValidDealStatus reports whether s is a known deal status
func ValidDealStatus(s DealStatus) bool {
	switch s {
	case StatusActive, StatusApproved, StatusDeclined:
		return true
	}
	return false
}

// Deal is an investment opportunity moving through the pipeline
type Deal struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BoardID    uint64     `gorm:"column:board_id;index" json:"board_id"`
	OwnerID    uint64     `gorm:"column:owner_id;index" json:"owner_id"`
	Name       string     `gorm:"column:name;type:varchar(255)" json:"name"`
	CompanyURL string     `gorm:"column:company_url;type:varchar(500)" json:"company_url"`
	Round      string     `gorm:"column:round;type:varchar(50)" json:"round"`
	CheckSize  float64    `gorm:"column:check_size;type:decimal(15,2)" json:"check_size"`
	Stage      Stage      `gorm:"column:stage;type:varchar(20)" json:"stage"`
	Status     DealStatus `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Deal) TableName() string { return "deals" }

// CreateDealRequest payload for creating a deal
type CreateDealRequest struct {
	BoardID    uint64  `json:"board_id" binding:"required"`
	Name       string  `json:"name"`
	CompanyURL string  `json:"company_url"`
	Round      string  `json:"round"`
	CheckSize  float64 `json:"check_size"`
	Stage      Stage   `json:"stage"`
}

// DealPatch is a partial update; nil fields are left untouched.
// A patch where every set field equals the current value is a no-op
// and emits no activity.
type DealPatch struct {
	Name       *string     `json:"name"`
	CompanyURL *string     `json:"company_url"`
	Round      *string     `json:"round"`
	CheckSize  *float64    `json:"check_size"`
	Stage      *Stage      `json:"stage"`
	Status     *DealStatus `json:"status"`
}
