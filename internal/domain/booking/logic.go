package booking

import (
	"errors"
	"fmt"
)

var (
	ErrBadTimeOrder      = errors.New("end time must be after start time")
	ErrOverlap           = errors.New("stylist already booked in this window")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// TimesOverlap reports whether two HH:mm windows on the same day intersect.
// Touching windows (one ends exactly when the other starts) do not.
func TimesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// ValidateWindow checks the HH:mm ordering of a proposed appointment.
func ValidateWindow(start, end string) error {
	if end <= start {
		return fmt.Errorf("%w: %s to %s", ErrBadTimeOrder, start, end)
	}
	return nil
}

// CheckConflicts returns ErrOverlap when the proposed window intersects any
// existing non-cancelled appointment for the same stylist and date.
func CheckConflicts(start, end string, existing []Appointment) error {
	for _, other := range existing {
		if other.Status == StatusCancelled {
			continue
		}
		if TimesOverlap(start, end, other.StartTime, other.EndTime) {
			return fmt.Errorf("%w (%s to %s)", ErrOverlap, other.StartTime, other.EndTime)
		}
	}
	return nil
}

// Transition validates an appointment status change. Booked appointments can
// complete, cancel or no-show; all other states are final.
func Transition(current, next string) error {
	switch next {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		if current != StatusBooked {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, next)
		}
	default:
		return fmt.Errorf("%w: unknown status %s", ErrInvalidTransition, next)
	}
	return nil
}
