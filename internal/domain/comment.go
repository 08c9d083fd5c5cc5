package domain

import "time"

// Comment is an immutable note on a deal
type Comment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DealID    uint64    `gorm:"column:deal_id;index" json:"deal_id"`
	UserID    uint64    `gorm:"column:user_id;index" json:"user_id"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }

// CreateCommentRequest payload for posting a comment
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// MentionSpan marks a resolved @mention inside a comment body
type MentionSpan struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Name     string `json:"name"`
	UserID   uint64 `json:"user_id,omitempty"`
	Resolved bool   `json:"resolved"`
}

// CommentResponse is a comment annotated with its author and any
// mention spans resolved against the board member list
type CommentResponse struct {
	ID        uint64        `json:"id"`
	DealID    uint64        `json:"deal_id"`
	UserID    uint64        `json:"user_id"`
	UserName  string        `json:"user_name"`
	Content   string        `json:"content"`
	Mentions  []MentionSpan `json:"mentions,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
