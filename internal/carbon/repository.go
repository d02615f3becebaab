package carbon

import (
	"gorm.io/gorm"

	"ecolakbay-service/internal/shared/db"
)

type Repository interface {
	Create(rec *Record) error
	ListByUser(uid string) ([]Record, error)
}

type repo struct{ db *gorm.DB }

func NewRepository(s *db.Store) Repository { return &repo{db: s.DB} }

func (r *repo) Create(rec *Record) error {
	return r.db.Create(rec).Error
}

func (r *repo) ListByUser(uid string) ([]Record, error) {
	var out []Record
	err := r.db.Where("user_id = ?", uid).Order("created_at DESC").Find(&out).Error
	return out, err
}
