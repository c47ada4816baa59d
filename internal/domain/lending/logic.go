package lending

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidWindow     = errors.New("end date before start date")
	ErrSameBranch        = errors.New("from and to branch are the same")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Validate checks a lending request before it is stored.
func Validate(l Lending) error {
	if l.EndDate.Before(l.StartDate) {
		return ErrInvalidWindow
	}
	if l.FromBranchID == l.ToBranchID {
		return ErrSameBranch
	}
	return nil
}

// Overlaps reports whether two date windows share at least one calendar day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// Transition mirrors the leave workflow: pending requests may be decided,
// pending or approved ones cancelled.
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
