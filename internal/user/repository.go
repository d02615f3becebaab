package user

import (
	"gorm.io/gorm"

	"ecolakbay-service/internal/shared/db"
)

type Repository interface {
	Create(u *User) error
	GetByEmail(email string) (*User, error)
	GetByID(id string) (*User, error)
	ListByIDs(ids []string) ([]User, error)
	Update(u *User) error
	AddPoints(id string, delta int64) error
}

type repo struct{ db *gorm.DB }

func NewRepository(s *db.Store) Repository { return &repo{db: s.DB} }

func (r *repo) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *repo) GetByEmail(email string) (*User, error) {
	var u User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) GetByID(id string) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) ListByIDs(ids []string) ([]User, error) {
	var out []User
	if err := r.db.Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) Update(u *User) error {
	return r.db.Save(u).Error
}

func (r *repo) AddPoints(id string, delta int64) error {
	return r.db.Model(&User{}).Where("id = ?", id).
		Update("eco_points", gorm.Expr("eco_points + ?", delta)).Error
}
