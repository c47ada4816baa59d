package booking

import (
	"errors"
	"testing"
)

func TestTimesOverlap(t *testing.T) {
	if !TimesOverlap("09:00", "10:00", "09:30", "10:30") {
		t.Fatal("intersecting windows must overlap")
	}
	if TimesOverlap("09:00", "10:00", "10:00", "11:00") {
		t.Fatal("touching windows must not overlap")
	}
	if TimesOverlap("09:00", "10:00", "11:00", "12:00") {
		t.Fatal("disjoint windows must not overlap")
	}
}

func TestCheckConflicts(t *testing.T) {
	existing := []Appointment{
		{StartTime: "09:00", EndTime: "10:00", Status: StatusBooked},
		{StartTime: "10:00", EndTime: "11:00", Status: StatusCancelled},
	}

	if err := CheckConflicts("09:30", "10:30", existing); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected overlap with booked appointment, got %v", err)
	}
	if err := CheckConflicts("10:00", "11:00", existing); err != nil {
		t.Fatalf("cancelled appointments must not block, got %v", err)
	}
}

func TestTransition(t *testing.T) {
	for _, next := range []string{StatusCompleted, StatusCancelled, StatusNoShow} {
		if err := Transition(StatusBooked, next); err != nil {
			t.Fatalf("booked -> %s should pass: %v", next, err)
		}
	}
	if err := Transition(StatusCompleted, StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("completed appointments are final, got %v", err)
	}
}
