package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service interface {
	Register(email, password, displayName string) (*User, error)
	Login(email, password string) (*User, error)
	Get(id string) (*User, error)
	ListPublic(ids []string) ([]PublicProfile, error)
	UpdateProfile(id string, in UpdateProfileRequest) error
	AddPoints(id string, delta int64) error
	IsAdmin(id string) bool
	CanModerate(id string) bool
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

func (s *service) Register(email, password, displayName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if existing, _ := s.repo.GetByEmail(email); existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}
	u := &User{
		ID:          uuid.NewString(),
		Email:       email,
		PassHash:    string(hash),
		DisplayName: displayName,
		Role:        RoleTraveler,
	}
	if err := s.repo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PassHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *service) Get(id string) (*User, error) { return s.repo.GetByID(id) }

func (s *service) ListPublic(ids []string) ([]PublicProfile, error) {
	users, err := s.repo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make([]PublicProfile, 0, len(users))
	for _, u := range users {
		out = append(out, PublicProfile{
			UserID:      u.ID,
			DisplayName: u.DisplayName,
			AvatarKey:   u.AvatarKey,
			EcoPoints:   u.EcoPoints,
		})
	}
	return out, nil
}

func (s *service) UpdateProfile(id string, in UpdateProfileRequest) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if in.DisplayName != "" {
		u.DisplayName = in.DisplayName
	}
	if in.AvatarKey != "" {
		u.AvatarKey = in.AvatarKey
	}
	return s.repo.Update(u)
}

func (s *service) AddPoints(id string, delta int64) error {
	return s.repo.AddPoints(id, delta)
}

func (s *service) IsAdmin(id string) bool {
	u, err := s.repo.GetByID(id)
	return err == nil && u.Role == RoleAdmin
}

// CanModerate reports whether the user may edit content they do not own.
func (s *service) CanModerate(id string) bool {
	u, err := s.repo.GetByID(id)
	return err == nil && (u.Role == RoleAdmin || u.Role == RoleModerator)
}
