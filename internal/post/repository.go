package post

import (
	"gorm.io/gorm"

	"ecolakbay-service/internal/shared/db"
)

type Repository interface {
	Create(p *Post) error
	List(limit, offset int) ([]Post, error)
	GetByID(id uint64) (*Post, error)
	Update(p *Post) error
	Delete(id uint64) error
}

type repo struct{ db *gorm.DB }

func NewRepository(s *db.Store) Repository { return &repo{db: s.DB} }

func (r *repo) Create(p *Post) error {
	return r.db.Create(p).Error
}

// List returns posts newest first.
func (r *repo) List(limit, offset int) ([]Post, error) {
	var out []Post
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (r *repo) GetByID(id uint64) (*Post, error) {
	var p Post
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) Update(p *Post) error {
	return r.db.Save(p).Error
}

func (r *repo) Delete(id uint64) error {
	return r.db.Delete(&Post{}, id).Error
}
