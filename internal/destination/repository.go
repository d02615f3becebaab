package destination

import (
	"gorm.io/gorm"

	"ecolakbay-service/internal/shared/db"
)

type Repository interface {
	Create(d *Destination) error
	ListByStatus(status string, limit, offset int) ([]Destination, error)
	GetByID(id uint64) (*Destination, error)
	SetStatus(id uint64, status string) error
}

type repo struct{ db *gorm.DB }

func NewRepository(s *db.Store) Repository { return &repo{db: s.DB} }

func (r *repo) Create(d *Destination) error {
	return r.db.Create(d).Error
}

func (r *repo) ListByStatus(status string, limit, offset int) ([]Destination, error) {
	var out []Destination
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *repo) GetByID(id uint64) (*Destination, error) {
	var d Destination
	if err := r.db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repo) SetStatus(id uint64, status string) error {
	return r.db.Model(&Destination{}).Where("id = ?", id).Update("status", status).Error
}
