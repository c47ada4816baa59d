package schedule

import (
	"strings"
	"testing"
)

func TestGuardRejectsLeaveRegardlessOfConfiguration(t *testing.T) {
	ctx := GuardContext{
		Leaves: []LeaveInterval{{
			Start:  DayStart(date(2024, 2, 1)),
			End:    DayEnd(date(2024, 2, 3)),
			Status: LeaveStatusApproved,
			Type:   "vacation",
		}},
	}

	gerr := CheckAvailability(ctx, date(2024, 2, 3), ShiftTime{Start: "09:00", End: "17:00"})
	if gerr == nil || gerr.Reason != ReasonOnLeave {
		t.Fatalf("expected on_leave rejection, got %v", gerr)
	}

	if gerr := CheckAvailability(ctx, date(2024, 2, 4), ShiftTime{Start: "09:00", End: "17:00"}); gerr != nil {
		t.Fatalf("day after leave must pass, got %v", gerr)
	}
}

func TestGuardRejectsOutboundLendingNamingBranch(t *testing.T) {
	ctx := GuardContext{
		Outbound: []LendingInterval{{
			StylistID:    "staff-b",
			ToBranchID:   "branch-x",
			ToBranchName: "Branch X",
			Start:        DayStart(date(2024, 3, 1)),
			End:          DayEnd(date(2024, 3, 5)),
			Status:       "approved",
		}},
	}

	gerr := CheckAvailability(ctx, date(2024, 3, 3), ShiftTime{Start: "09:00", End: "17:00"})
	if gerr == nil || gerr.Reason != ReasonLentOut {
		t.Fatalf("expected lent_out rejection, got %v", gerr)
	}
	if !strings.Contains(gerr.Detail, "Branch X") {
		t.Fatalf("rejection must name the destination branch, got %q", gerr.Detail)
	}

	if gerr := CheckAvailability(ctx, date(2024, 3, 6), ShiftTime{Start: "09:00", End: "17:00"}); gerr != nil {
		t.Fatalf("2024-03-06 is after the lending window, got %v", gerr)
	}
}

func TestGuardBorrowedStaffOnlyInsideWindow(t *testing.T) {
	ctx := GuardContext{
		Borrowed: true,
		Inbound: []LendingInterval{{
			Start: DayStart(date(2024, 4, 10)),
			End:   DayEnd(date(2024, 4, 20)),
		}},
	}

	if gerr := CheckAvailability(ctx, date(2024, 4, 15), ShiftTime{Start: "09:00", End: "17:00"}); gerr != nil {
		t.Fatalf("inside lending window must pass, got %v", gerr)
	}
	gerr := CheckAvailability(ctx, date(2024, 4, 21), ShiftTime{Start: "09:00", End: "17:00"})
	if gerr == nil || gerr.Reason != ReasonOutsideLending {
		t.Fatalf("expected outside_lending_period, got %v", gerr)
	}
}

func TestGuardBranchHours(t *testing.T) {
	hours := map[string]DayHours{
		DayMonday: {Open: "09:00", Close: "18:00"},
		DaySunday: {Closed: true},
	}
	ctx := GuardContext{Hours: hours}

	// 2024-01-08 is a Monday, 2024-01-07 a Sunday.
	if gerr := CheckAvailability(ctx, date(2024, 1, 8), ShiftTime{Start: "09:00", End: "17:00"}); gerr != nil {
		t.Fatalf("shift inside opening hours must pass, got %v", gerr)
	}

	gerr := CheckAvailability(ctx, date(2024, 1, 8), ShiftTime{Start: "08:00", End: "17:00"})
	if gerr == nil || gerr.Reason != ReasonOutsideHours {
		t.Fatalf("expected outside_operating_hours for early start, got %v", gerr)
	}

	gerr = CheckAvailability(ctx, date(2024, 1, 8), ShiftTime{Start: "10:00", End: "19:00"})
	if gerr == nil || gerr.Reason != ReasonOutsideHours {
		t.Fatalf("expected outside_operating_hours for late end, got %v", gerr)
	}

	gerr = CheckAvailability(ctx, date(2024, 1, 7), ShiftTime{Start: "10:00", End: "12:00"})
	if gerr == nil || gerr.Reason != ReasonBranchClosed {
		t.Fatalf("expected branch_closed on Sunday, got %v", gerr)
	}

	gerr = CheckAvailability(ctx, date(2024, 1, 8), ShiftTime{Start: "12:00", End: "12:00"})
	if gerr == nil || gerr.Reason != ReasonBadTimeOrder {
		t.Fatalf("expected invalid_time_order for end <= start, got %v", gerr)
	}
}

func TestGuardNoHoursConfigured(t *testing.T) {
	if gerr := CheckAvailability(GuardContext{}, date(2024, 1, 8), ShiftTime{Start: "06:00", End: "23:00"}); gerr != nil {
		t.Fatalf("without branch hours only ordering is checked, got %v", gerr)
	}
}
