package media

import "time"

const (
	KindPhoto  = "photo"
	KindPermit = "permit"
)

type Media struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	OwnerID     string    `gorm:"size:64;index" json:"owner_id"`
	FileName    string    `gorm:"size:255" json:"file_name"`
	ObjectKey   string    `gorm:"size:255;uniqueIndex" json:"object_key"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	Size        int64     `json:"size"`
	Kind        string    `gorm:"size:20;index" json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
}
