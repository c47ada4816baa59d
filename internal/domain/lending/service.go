package lending

import (
	"context"
	"fmt"

	"salon/internal/domain/notifications"
)

type Service struct {
	Store  *Store
	Notify *notifications.Service
}

func NewService(store *Store, notify *notifications.Service) *Service {
	return &Service{Store: store, Notify: notify}
}

func (s *Service) List(ctx context.Context, branchID, status string) ([]Lending, error) {
	return s.Store.ListForBranch(ctx, branchID, status)
}

// Create stores a pending lending request after checking the window and
// refusing a stylist already lent or requested for an overlapping window.
func (s *Service) Create(ctx context.Context, l Lending) (Lending, error) {
	if err := Validate(l); err != nil {
		return Lending{}, err
	}

	existing, err := s.Store.ActiveForStylist(ctx, l.StylistID, l.StartDate, l.EndDate)
	if err != nil {
		return Lending{}, err
	}
	for _, other := range existing {
		if Overlaps(l.StartDate, l.EndDate, other.StartDate, other.EndDate) {
			return Lending{}, fmt.Errorf("stylist already lent %s to %s (%s)",
				other.StartDate.Format("2006-01-02"), other.EndDate.Format("2006-01-02"), other.Status)
		}
	}

	l.Status = StatusPending
	return s.Store.Create(ctx, l)
}

func (s *Service) Approve(ctx context.Context, lendingID, approverUserID string) (Lending, error) {
	return s.decide(ctx, lendingID, approverUserID, StatusApproved)
}

func (s *Service) Reject(ctx context.Context, lendingID, approverUserID string) (Lending, error) {
	return s.decide(ctx, lendingID, approverUserID, StatusRejected)
}

func (s *Service) Cancel(ctx context.Context, lendingID, actorUserID string) (Lending, error) {
	return s.decide(ctx, lendingID, actorUserID, StatusCancelled)
}

func (s *Service) decide(ctx context.Context, lendingID, actorUserID, next string) (Lending, error) {
	l, err := s.Store.Get(ctx, lendingID)
	if err != nil {
		return Lending{}, err
	}
	if err := Transition(l.Status, next); err != nil {
		return Lending{}, err
	}
	if err := s.Store.UpdateStatus(ctx, lendingID, next, actorUserID); err != nil {
		return Lending{}, err
	}
	l.Status = next
	l.DecidedBy = actorUserID

	if s.Notify != nil {
		if userID, err := s.Store.StylistUserID(ctx, l.StylistID); err == nil {
			title := fmt.Sprintf("Lending %s", next)
			body := fmt.Sprintf("Your lending %s to %s was %s.",
				l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), next)
			s.Notify.Create(ctx, userID, "lending", title, body)
		}
	}
	return l, nil
}
