package points

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"ecolakbay-service/internal/comment"
	"ecolakbay-service/internal/user"
	"ecolakbay-service/pkg/kafka"
)

type Service interface {
	Award(ev comment.PointsEvent) error
	Total(uid string) (int64, error)
}

type service struct{ users user.Repository }

func NewService(ur user.Repository) Service { return &service{users: ur} }

func (s *service) Award(ev comment.PointsEvent) error {
	if ev.UserID == "" || ev.Points <= 0 {
		return fmt.Errorf("invalid points event: user=%q points=%d", ev.UserID, ev.Points)
	}
	return s.users.AddPoints(ev.UserID, ev.Points)
}

func (s *service) Total(uid string) (int64, error) {
	u, err := s.users.GetByID(uid)
	if err != nil {
		return 0, err
	}
	return u.EcoPoints, nil
}

// HandleMessage decodes an engagement event from Kafka and credits the user.
func HandleMessage(svc Service) kafka.MessageHandler {
	return func(ctx context.Context, value []byte) error {
		var ev comment.PointsEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			return fmt.Errorf("bad points payload: %w", err)
		}
		if err := svc.Award(ev); err != nil {
			return err
		}
		log.Printf("awarded %d points to %s (%s)", ev.Points, ev.UserID, ev.Reason)
		return nil
	}
}
