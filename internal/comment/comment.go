package comment

import "time"

type PostComment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"index" json:"post_id"`
	UserID    string    `gorm:"size:64;index" json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type PostCommentsSum struct {
	PostID        uint64 `gorm:"primaryKey" json:"post_id"`
	CommentsCount int64  `json:"comments_count"`
	UpdatedAt     time.Time
}

type CreateReq struct {
	Text string `json:"text"`
}

// PointsEvent is published after each stored comment so the points consumer
// can credit engagement. The feed client treats this side effect as opaque.
type PointsEvent struct {
	UserID     string    `json:"user_id"`
	Points     int64     `json:"points"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

const CommentPoints = 5
