package comment

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"ecolakbay-service/pkg/kafka"
)

var ErrEmptyText = errors.New("comment text cannot be empty")

type Service interface {
	Create(uid string, postID uint64, in CreateReq) (*PostComment, error)
	ListByPost(postID uint64, limit, offset int) ([]PostComment, error)
	Count(postID uint64) (int64, error)
}

type service struct {
	repo   Repository
	points kafka.Writer
}

// NewService wires the repository and an optional points writer; a nil writer
// disables engagement awards without affecting comment storage.
func NewService(r Repository, points kafka.Writer) Service {
	return &service{repo: r, points: points}
}

func (s *service) Create(uid string, postID uint64, in CreateReq) (*PostComment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	pc, err := s.repo.Create(uid, postID, text)
	if err != nil {
		return nil, err
	}
	if s.points != nil {
		ev := PointsEvent{UserID: uid, Points: CommentPoints, Reason: "comment", OccurredAt: time.Now()}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.points.WriteJSON(ctx, ev); err != nil {
			log.Printf("points event publish: %v", err)
		}
	}
	return pc, nil
}

func (s *service) ListByPost(postID uint64, limit, offset int) ([]PostComment, error) {
	return s.repo.ListByPost(postID, limit, offset)
}

func (s *service) Count(postID uint64) (int64, error) { return s.repo.Count(postID) }
