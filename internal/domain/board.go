package domain

import "time"

// Role is a user's authorization level on a single board.
// An empty role is a valid membership: it grants read-only access.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleAnalyst Role = "ANALYST"
	RolePartner Role = "PARTNER"
	RoleNone    Role = "" // member without a role (read-only)
)

// ValidRole reports whether r is an assignable board role
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RolePartner, RoleNone:
		return true
	}
	return false
}

// Board is a tenant-scoped workspace holding deals and member roles
type Board struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedBy   uint64    `gorm:"column:created_by;index" json:"created_by"`
	IsDefault   bool      `gorm:"column:is_default;default:false" json:"is_default"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Board) TableName() string { return "boards" }

// Membership links a user to a board with an optional board role.
// One row per (board, user); the board creator always has a row.
type Membership struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BoardID   uint64    `gorm:"column:board_id;uniqueIndex:uniq_board_user" json:"board_id"`
	UserID    uint64    `gorm:"column:user_id;uniqueIndex:uniq_board_user" json:"user_id"`
	BoardRole Role      `gorm:"column:board_role;type:varchar(20)" json:"board_role"`
	JoinedAt  time.Time `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`
}

func (Membership) TableName() string { return "board_members" }

// BoardMember is a membership joined with the member's identity,
// in the shape the member list and the mention picker consume.
type BoardMember struct {
	UserID    uint64 `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	BoardRole Role   `json:"board_role"`
}

// BoardResponse is a board with its resolved member list
type BoardResponse struct {
	ID          uint64        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedBy   uint64        `json:"created_by"`
	IsDefault   bool          `json:"is_default"`
	Members     []BoardMember `json:"members"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CreateBoardRequest payload for creating a board
type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateBoardRequest payload for updating a board
type UpdateBoardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
