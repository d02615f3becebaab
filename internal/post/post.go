package post

import "time"

type Post struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;index" json:"user_id"`
	Title     string    `gorm:"size:200" json:"title"`
	Body      string    `json:"body"`
	Category  string    `gorm:"size:50;index" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostEvent goes to Kafka when a post is created, for downstream feed
// builders and notification fan-out.
type PostEvent struct {
	ID        uint64    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
