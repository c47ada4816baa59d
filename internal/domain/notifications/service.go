package notifications

import (
	"context"
	"log/slog"
)

type Service struct {
	store *Store
}

func New(store *Store) *Service {
	return &Service{store: store}
}

// Create inserts an in-app notification. Failures are logged and swallowed:
// a missed notification must never fail the action that produced it.
func (s *Service) Create(ctx context.Context, userID, ntype, title, body string) {
	if userID == "" {
		return
	}
	if err := s.store.Create(ctx, userID, ntype, title, body); err != nil {
		slog.Warn("notification create failed", "userId", userID, "type", ntype, "err", err)
	}
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Notification, error) {
	return s.store.List(ctx, userID, limit, offset)
}

func (s *Service) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}
