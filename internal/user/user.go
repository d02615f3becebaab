package user

import "time"

const (
	RoleTraveler  = "traveler"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID          string `gorm:"primaryKey;size:64" json:"user_id"`
	Email       string `gorm:"uniqueIndex;size:255" json:"email"`
	PassHash    string `json:"-"`
	DisplayName string `gorm:"size:100" json:"display_name"`
	AvatarKey   string `gorm:"size:255" json:"avatar_key"`
	Role        string `gorm:"size:20;default:traveler" json:"role"`
	EcoPoints   int64  `json:"eco_points"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
