package carbon

import "time"

type Record struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"size:64;index" json:"user_id"`
	Mode       string    `gorm:"size:30" json:"mode"`
	DistanceKM float64   `json:"distance_km"`
	Passengers int       `json:"passengers"`
	EmissionKG float64   `json:"emission_kg"`
	CreatedAt  time.Time `json:"created_at"`
}

type EstimateReq struct {
	Mode       string  `json:"mode"`
	DistanceKM float64 `json:"distance_km"`
	Passengers int     `json:"passengers"`
}

type EstimateResp struct {
	Mode       string  `json:"mode"`
	DistanceKM float64 `json:"distance_km"`
	Passengers int     `json:"passengers"`
	EmissionKG float64 `json:"emission_kg"`
}
