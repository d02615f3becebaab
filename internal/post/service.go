package post

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"ecolakbay-service/pkg/kafka"
)

var (
	ErrEmptyPost = errors.New("post title and body are required")
	ErrForbidden = errors.New("not the post author")
)

type Service interface {
	Create(uid string, in CreateReq) (*Post, error)
	List(limit, offset int) ([]Post, error)
	Get(id uint64) (*Post, error)
	Update(uid string, id uint64, in UpdateReq, isPrivileged bool) error
	Delete(uid string, id uint64, isAdmin bool) error
}

type service struct {
	repo   Repository
	events kafka.Writer
}

func NewService(r Repository, events kafka.Writer) Service {
	return &service{repo: r, events: events}
}

func (s *service) Create(uid string, in CreateReq) (*Post, error) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	if title == "" || body == "" {
		return nil, ErrEmptyPost
	}
	p := &Post{UserID: uid, Title: title, Body: body, Category: in.Category}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	if s.events != nil {
		ev := PostEvent{ID: p.ID, UserID: p.UserID, Title: p.Title, Category: p.Category, CreatedAt: p.CreatedAt}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.events.WriteJSON(ctx, ev); err != nil {
			log.Printf("post event publish: %v", err)
		}
	}
	return p, nil
}

func (s *service) List(limit, offset int) ([]Post, error) {
	return s.repo.List(limit, offset)
}

func (s *service) Get(id uint64) (*Post, error) { return s.repo.GetByID(id) }

// Update edits a post. Moderators and admins may edit posts they do not own;
// the handler resolves the caller's role into isPrivileged.
func (s *service) Update(uid string, id uint64, in UpdateReq, isPrivileged bool) error {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p.UserID != uid && !isPrivileged {
		return ErrForbidden
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		p.Title = t
	}
	if b := strings.TrimSpace(in.Body); b != "" {
		p.Body = b
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	return s.repo.Update(p)
}

func (s *service) Delete(uid string, id uint64, isAdmin bool) error {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p.UserID != uid && !isAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}
