package destination

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Destination struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200" json:"name"`
	Description string    `json:"description"`
	Category    string    `gorm:"size:50;index" json:"category"`
	Town        string    `gorm:"size:100" json:"town"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	PermitKey   string    `gorm:"size:255" json:"permit_key"`
	Status      string    `gorm:"size:20;default:pending;index" json:"status"`
	CreatedBy   string    `gorm:"size:64;index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Town        string  `json:"town"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PermitKey   string  `json:"permit_key"`
}
