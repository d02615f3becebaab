package media

import (
	"gorm.io/gorm"

	"ecolakbay-service/internal/shared/db"
)

type Repository interface {
	Create(m *Media) error
	FindByID(id uint64) (*Media, error)
	ListByOwner(ownerID string) ([]Media, error)
}

type repo struct{ db *gorm.DB }

func NewRepository(s *db.Store) Repository { return &repo{db: s.DB} }

func (r *repo) Create(m *Media) error {
	return r.db.Create(m).Error
}

func (r *repo) FindByID(id uint64) (*Media, error) {
	var m Media
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) ListByOwner(ownerID string) ([]Media, error) {
	var out []Media
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&out).Error
	return out, err
}
