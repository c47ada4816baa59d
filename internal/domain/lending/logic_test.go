package lending

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	ok := Lending{StylistID: "s1", FromBranchID: "b1", ToBranchID: "b2", StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 5)}
	if err := Validate(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := ok
	bad.EndDate = day(2024, 2, 28)
	if err := Validate(bad); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}

	bad = ok
	bad.ToBranchID = "b1"
	if err := Validate(bad); !errors.Is(err, ErrSameBranch) {
		t.Fatalf("expected ErrSameBranch, got %v", err)
	}
}

func TestOverlaps(t *testing.T) {
	if !Overlaps(day(2024, 3, 1), day(2024, 3, 5), day(2024, 3, 5), day(2024, 3, 10)) {
		t.Fatal("touching windows share a day and must overlap")
	}
	if Overlaps(day(2024, 3, 1), day(2024, 3, 5), day(2024, 3, 6), day(2024, 3, 10)) {
		t.Fatal("disjoint windows must not overlap")
	}
}

func TestTransition(t *testing.T) {
	if err := Transition(StatusPending, StatusApproved); err != nil {
		t.Fatalf("pending -> approved should pass: %v", err)
	}
	if err := Transition(StatusRejected, StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("rejected -> cancelled should fail, got %v", err)
	}
}
