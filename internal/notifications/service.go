package notifications

import (
	"context"

	"github.com/rs/zerolog/log"
)

type Service struct {
	repo      *Repo
	publisher *Publisher
}

func NewService(repo *Repo, publisher *Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Notify stores a notification and pushes it to live listeners. Notifying
// yourself is a no-op. A failed push is logged, not returned: the row is the
// source of truth and the bell reloads it.
func (s *Service) Notify(ctx context.Context, req NewNotification) error {
	if req.UserID == "" || req.UserID == req.ActorID {
		return nil
	}

	n := &Notification{
		UserID:       req.UserID,
		ActorID:      req.ActorID,
		Type:         req.Type,
		IdeaID:       req.IdeaID,
		DiscussionID: req.DiscussionID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, n); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("user_id", n.UserID).Msg("notification push failed")
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, userID, unreadOnly, limit)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
