package destination

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName  = errors.New("destination name is required")
	ErrBadStatus  = errors.New("unknown status")
	ErrAdminsOnly = errors.New("admin role required")
)

type Service interface {
	Submit(uid string, in CreateReq) (*Destination, error)
	ListApproved(limit, offset int) ([]Destination, error)
	ListByStatus(status string, limit, offset int) ([]Destination, error)
	Get(id uint64) (*Destination, error)
	Moderate(id uint64, status string) error
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

// Submit records a destination in pending state; it stays hidden from the
// public listing until an admin approves it.
func (s *service) Submit(uid string, in CreateReq) (*Destination, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	d := &Destination{
		Name:        name,
		Description: in.Description,
		Category:    in.Category,
		Town:        in.Town,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		PermitKey:   in.PermitKey,
		Status:      StatusPending,
		CreatedBy:   uid,
	}
	if err := s.repo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) ListApproved(limit, offset int) ([]Destination, error) {
	return s.repo.ListByStatus(StatusApproved, limit, offset)
}

func (s *service) ListByStatus(status string, limit, offset int) ([]Destination, error) {
	return s.repo.ListByStatus(status, limit, offset)
}

func (s *service) Get(id uint64) (*Destination, error) { return s.repo.GetByID(id) }

func (s *service) Moderate(id uint64, status string) error {
	switch status {
	case StatusApproved, StatusRejected, StatusPending:
	default:
		return ErrBadStatus
	}
	return s.repo.SetStatus(id, status)
}
