package booking

import (
	"context"
	"fmt"
	"time"

	"salon/internal/domain/notifications"
	"salon/internal/domain/schedule"
)

type Service struct {
	Store    *Store
	Schedule *schedule.Service
	Notify   *notifications.Service
}

func NewService(store *Store, sched *schedule.Service, notify *notifications.Service) *Service {
	return &Service{Store: store, Schedule: sched, Notify: notify}
}

func (s *Service) DayList(ctx context.Context, branchID string, date time.Time) ([]Appointment, error) {
	return s.Store.ListForBranch(ctx, branchID, schedule.DayStart(date))
}

func (s *Service) StylistDay(ctx context.Context, stylistID string, date time.Time) ([]Appointment, error) {
	return s.Store.ForStylistOnDate(ctx, stylistID, schedule.DayStart(date))
}

// Create books an appointment after three checks: the window is ordered, the
// stylist is rostered and free per the schedule resolver, and no existing
// appointment for the stylist overlaps the window. The end time defaults to
// start plus the service duration when the caller leaves it empty.
func (s *Service) Create(ctx context.Context, a Appointment) (Appointment, error) {
	a.Date = schedule.DayStart(a.Date)

	if a.EndTime == "" {
		sv, err := s.Store.Service(ctx, a.ServiceID)
		if err != nil {
			return Appointment{}, fmt.Errorf("look up service: %w", err)
		}
		end, err := addMinutes(a.StartTime, sv.DurationMin)
		if err != nil {
			return Appointment{}, err
		}
		a.EndTime = end
	}

	if err := ValidateWindow(a.StartTime, a.EndTime); err != nil {
		return Appointment{}, err
	}
	if s.Schedule != nil {
		if err := s.Schedule.StylistAvailable(ctx, a.BranchID, a.StylistID, a.Date, a.StartTime, a.EndTime); err != nil {
			return Appointment{}, err
		}
	}

	existing, err := s.Store.ForStylistOnDate(ctx, a.StylistID, a.Date)
	if err != nil {
		return Appointment{}, err
	}
	if err := CheckConflicts(a.StartTime, a.EndTime, existing); err != nil {
		return Appointment{}, err
	}

	a.Status = StatusBooked
	return s.Store.Create(ctx, a)
}

func (s *Service) Complete(ctx context.Context, appointmentID string) (Appointment, error) {
	return s.setStatus(ctx, appointmentID, StatusCompleted)
}

func (s *Service) Cancel(ctx context.Context, appointmentID string) (Appointment, error) {
	a, err := s.setStatus(ctx, appointmentID, StatusCancelled)
	if err != nil {
		return Appointment{}, err
	}
	if s.Notify != nil {
		if userID, err := s.Store.ClientUserID(ctx, a.ClientID); err == nil && userID != "" {
			body := fmt.Sprintf("Your appointment on %s at %s was cancelled.",
				a.Date.Format("2006-01-02"), a.StartTime)
			s.Notify.Create(ctx, userID, "booking", "Appointment cancelled", body)
		}
	}
	return a, nil
}

func (s *Service) MarkNoShow(ctx context.Context, appointmentID string) (Appointment, error) {
	return s.setStatus(ctx, appointmentID, StatusNoShow)
}

func (s *Service) setStatus(ctx context.Context, appointmentID, next string) (Appointment, error) {
	a, err := s.Store.Get(ctx, appointmentID)
	if err != nil {
		return Appointment{}, err
	}
	if err := Transition(a.Status, next); err != nil {
		return Appointment{}, err
	}
	if err := s.Store.UpdateStatus(ctx, appointmentID, next); err != nil {
		return Appointment{}, err
	}
	a.Status = next
	return a, nil
}

func addMinutes(start string, minutes int) (string, error) {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return "", fmt.Errorf("parse start time %q: %w", start, err)
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format("15:04"), nil
}
