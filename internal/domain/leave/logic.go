package leave

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// CalculateDays returns the inclusive day count between start and end.
func CalculateDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// ValidType reports whether t is a known leave type.
func ValidType(t string) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Transition validates a status change. Pending requests can be approved,
// rejected or cancelled; approved requests can only be cancelled; decided
// requests are otherwise final.
func Transition(current, next string) error {
	switch next {
	case StatusApproved, StatusRejected:
		if current != StatusPending {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, next)
		}
	case StatusCancelled:
		if current != StatusPending && current != StatusApproved {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, next)
		}
	default:
		return fmt.Errorf("%w: unknown status %s", ErrInvalidTransition, next)
	}
	return nil
}
