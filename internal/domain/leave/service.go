package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon/internal/domain/notifications"
)

var ErrForbidden = errors.New("forbidden")

type Service struct {
	Store  *Store
	Notify *notifications.Service
}

func NewService(store *Store, notify *notifications.Service) *Service {
	return &Service{Store: store, Notify: notify}
}

func (s *Service) List(ctx context.Context, branchID, employeeID, status string, limit, offset int) ([]Request, error) {
	return s.Store.List(ctx, branchID, employeeID, status, limit, offset)
}

func (s *Service) Create(ctx context.Context, req Request) (Request, error) {
	if !ValidType(req.Type) {
		return Request{}, fmt.Errorf("unknown leave type %q", req.Type)
	}
	if _, err := CalculateDays(req.StartDate, req.EndDate); err != nil {
		return Request{}, err
	}
	req.Status = StatusPending
	return s.Store.Create(ctx, req)
}

func (s *Service) Approve(ctx context.Context, requestID, approverUserID string) (Request, error) {
	return s.decide(ctx, requestID, approverUserID, StatusApproved)
}

func (s *Service) Reject(ctx context.Context, requestID, approverUserID string) (Request, error) {
	return s.decide(ctx, requestID, approverUserID, StatusRejected)
}

// Cancel is available to the requesting stylist as well as managers.
func (s *Service) Cancel(ctx context.Context, requestID, actorUserID string, actorStaffID string) (Request, error) {
	req, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if actorStaffID != "" && req.EmployeeID != actorStaffID {
		return Request{}, ErrForbidden
	}
	if err := Transition(req.Status, StatusCancelled); err != nil {
		return Request{}, err
	}
	if err := s.Store.UpdateStatus(ctx, requestID, StatusCancelled, actorUserID); err != nil {
		return Request{}, err
	}
	req.Status = StatusCancelled
	return req, nil
}

func (s *Service) decide(ctx context.Context, requestID, approverUserID, next string) (Request, error) {
	req, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if err := Transition(req.Status, next); err != nil {
		return Request{}, err
	}
	if err := s.Store.UpdateStatus(ctx, requestID, next, approverUserID); err != nil {
		return Request{}, err
	}
	req.Status = next
	req.DecidedBy = approverUserID

	if s.Notify != nil {
		if userID, err := s.Store.EmployeeUserID(ctx, req.EmployeeID); err == nil && userID != "" {
			title := fmt.Sprintf("Leave request %s", next)
			body := fmt.Sprintf("Your %s leave %s to %s was %s.", req.Type,
				req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"), next)
			s.Notify.Create(ctx, userID, "leave", title, body)
		}
	}
	return req, nil
}

// Calendar returns non-inert requests overlapping a window, for roster views.
func (s *Service) Calendar(ctx context.Context, branchID string, from, to time.Time) ([]Request, error) {
	return s.Store.Overlapping(ctx, branchID, from, to)
}
