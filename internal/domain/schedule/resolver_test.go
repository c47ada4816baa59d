package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func config(id string, start time.Time, created time.Time, active bool, shifts map[string]ShiftWeek) Configuration {
	return Configuration{
		ID:        id,
		BranchID:  "branch-1",
		StartDate: start,
		Shifts:    shifts,
		IsActive:  active,
		CreatedAt: created,
	}
}

func TestResolveRoundTrip(t *testing.T) {
	configs := []Configuration{
		config("c1", date(2024, 1, 1), date(2023, 12, 20), true, map[string]ShiftWeek{
			"staff-a": {DayMonday: {Start: "09:00", End: "17:00"}},
		}),
	}

	resolved, ok := Resolve(StaffSchedule{StaffID: "staff-a"}, date(2024, 1, 8), configs, nil)
	if !ok {
		t.Fatal("expected a resolved shift for Monday 2024-01-08")
	}
	if resolved.Start != "09:00" || resolved.End != "17:00" {
		t.Fatalf("expected 09:00-17:00, got %s-%s", resolved.Start, resolved.End)
	}
	if !resolved.IsActive || !resolved.IsRecurring {
		t.Fatalf("expected active recurring shift, got %+v", resolved)
	}
}

func TestResolvePicksLatestStartDate(t *testing.T) {
	configs := []Configuration{
		config("c1", date(2024, 1, 1), date(2023, 12, 20), false, map[string]ShiftWeek{
			"staff-a": {DayMonday: {Start: "09:00", End: "17:00"}},
		}),
		config("c2", date(2024, 1, 15), date(2024, 1, 10), true, map[string]ShiftWeek{
			"staff-a": {DayMonday: {Start: "10:00", End: "18:00"}},
		}),
	}
	staff := StaffSchedule{StaffID: "staff-a"}

	resolved, ok := Resolve(staff, date(2024, 1, 8), configs, nil)
	if !ok || resolved.Start != "09:00" {
		t.Fatalf("Monday 2024-01-08 should resolve from c1, got %+v (ok=%v)", resolved, ok)
	}
	if resolved.ConfigID != "c1" {
		t.Fatalf("expected config c1, got %s", resolved.ConfigID)
	}

	resolved, ok = Resolve(staff, date(2024, 1, 22), configs, nil)
	if !ok || resolved.Start != "10:00" {
		t.Fatalf("Monday 2024-01-22 should resolve from c2, got %+v (ok=%v)", resolved, ok)
	}
	if resolved.ConfigID != "c2" {
		t.Fatalf("expected config c2, got %s", resolved.ConfigID)
	}
}

func TestResolveIndependentOfActiveFlag(t *testing.T) {
	shifts := map[string]ShiftWeek{
		"staff-a": {DayMonday: {Start: "09:00", End: "17:00"}},
	}
	newer := map[string]ShiftWeek{
		"staff-a": {DayMonday: {Start: "11:00", End: "19:00"}},
	}
	staff := StaffSchedule{StaffID: "staff-a"}
	target := date(2024, 1, 8)

	for _, futureActive := range []bool{true, false} {
		configs := []Configuration{
			config("c1", date(2024, 1, 1), date(2023, 12, 20), !futureActive, shifts),
			config("c2", date(2024, 2, 1), date(2024, 1, 25), futureActive, newer),
		}
		resolved, ok := Resolve(staff, target, configs, nil)
		if !ok || resolved.Start != "09:00" {
			t.Fatalf("active flag %v on future config changed resolution for %s: %+v", futureActive, target, resolved)
		}
		if !resolved.IsActive {
			t.Fatalf("resolved recurring shift must report isActive true, got %+v", resolved)
		}
	}
}

func TestResolveSameStartDateTieBreak(t *testing.T) {
	configs := []Configuration{
		config("older", date(2024, 1, 1), date(2024, 1, 1), false, map[string]ShiftWeek{
			"staff-a": {DayMonday: {Start: "08:00", End: "16:00"}},
		}),
		config("newer", date(2024, 1, 1), date(2024, 1, 2), true, map[string]ShiftWeek{
			"staff-a": {DayMonday: {Start: "09:30", End: "17:30"}},
		}),
	}

	for i := 0; i < 3; i++ {
		resolved, ok := Resolve(StaffSchedule{StaffID: "staff-a"}, date(2024, 1, 8), configs, nil)
		if !ok || resolved.ConfigID != "newer" {
			t.Fatalf("tie on startDate must pick latest createdAt, got %+v (ok=%v)", resolved, ok)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	configs := []Configuration{
		config("c1", date(2024, 1, 1), date(2023, 12, 20), true, map[string]ShiftWeek{
			"staff-a": {DayTuesday: {Start: "12:00", End: "20:00"}},
		}),
	}
	staff := StaffSchedule{StaffID: "staff-a"}
	target := date(2024, 1, 9)

	first, ok1 := Resolve(staff, target, configs, nil)
	second, ok2 := Resolve(staff, target, configs, nil)
	if ok1 != ok2 || first != second {
		t.Fatalf("resolution not idempotent: %+v vs %+v", first, second)
	}
}

func TestResolveOverrideBeatsConfiguration(t *testing.T) {
	configs := []Configuration{
		config("c1", date(2024, 1, 1), date(2023, 12, 20), true, map[string]ShiftWeek{
			"staff-a": {DayMonday: {Start: "09:00", End: "17:00"}},
		}),
	}
	staff := StaffSchedule{
		StaffID:   "staff-a",
		Overrides: map[string]ShiftTime{"2024-01-08": {Start: "13:00", End: "21:00"}},
	}

	resolved, ok := Resolve(staff, date(2024, 1, 8), configs, nil)
	if !ok || !resolved.IsDateSpecific {
		t.Fatalf("expected date-specific shift, got %+v (ok=%v)", resolved, ok)
	}
	if resolved.Start != "13:00" || resolved.End != "21:00" {
		t.Fatalf("override times lost: %+v", resolved)
	}

	resolved, ok = Resolve(staff, date(2024, 1, 15), configs, nil)
	if !ok || resolved.IsDateSpecific {
		t.Fatalf("next Monday must fall back to the configuration, got %+v (ok=%v)", resolved, ok)
	}
}

func TestResolveLendingBeatsEverything(t *testing.T) {
	configs := []Configuration{
		config("c1", date(2024, 1, 1), date(2023, 12, 20), true, map[string]ShiftWeek{
			"staff-b": {DayMonday: {Start: "09:00", End: "17:00"}},
		}),
	}
	staff := StaffSchedule{
		StaffID:   "staff-b",
		Overrides: map[string]ShiftTime{"2024-03-04": {Start: "10:00", End: "18:00"}},
	}
	outbound := []LendingInterval{{
		StylistID:    "staff-b",
		FromBranchID: "branch-1",
		ToBranchID:   "branch-x",
		ToBranchName: "Branch X",
		Start:        date(2024, 3, 1),
		End:          date(2024, 3, 5),
		Status:       "approved",
	}}

	resolved, ok := Resolve(staff, date(2024, 3, 4), configs, outbound)
	if !ok || !resolved.IsLending {
		t.Fatalf("expected lending state, got %+v (ok=%v)", resolved, ok)
	}
	if resolved.LendingBranch != "Branch X" {
		t.Fatalf("expected destination branch name, got %q", resolved.LendingBranch)
	}

	resolved, ok = Resolve(staff, date(2024, 3, 11), configs, outbound)
	if !ok || resolved.IsLending {
		t.Fatalf("Monday after the lending window must resolve normally, got %+v (ok=%v)", resolved, ok)
	}
}

func TestResolveLegacyFallback(t *testing.T) {
	staff := StaffSchedule{
		StaffID: "staff-a",
		Legacy:  ShiftWeek{DayFriday: {Start: "09:00", End: "15:00"}},
	}

	resolved, ok := Resolve(staff, date(2024, 1, 5), nil, nil)
	if !ok || resolved.Start != "09:00" {
		t.Fatalf("expected legacy fallback, got %+v (ok=%v)", resolved, ok)
	}

	staff.LegacyInactive = true
	if _, ok := Resolve(staff, date(2024, 1, 5), nil, nil); ok {
		t.Fatal("inactive legacy shift must resolve to nothing, not a stale entry")
	}
}

func TestOnLeaveBoundaries(t *testing.T) {
	leaves := []LeaveInterval{{
		Start:  DayStart(date(2024, 2, 1)),
		End:    DayEnd(date(2024, 2, 3)),
		Status: LeaveStatusApproved,
		Type:   "vacation",
	}}

	if _, ok := OnLeave(leaves, date(2024, 2, 3)); !ok {
		t.Fatal("2024-02-03 is inside the inclusive leave window")
	}
	if _, ok := OnLeave(leaves, date(2024, 2, 4)); ok {
		t.Fatal("2024-02-04 is outside the leave window")
	}
}

func TestOnLeaveIgnoresInertStatuses(t *testing.T) {
	for _, status := range []string{"rejected", "cancelled"} {
		leaves := []LeaveInterval{{
			Start:  DayStart(date(2024, 2, 1)),
			End:    DayEnd(date(2024, 2, 3)),
			Status: status,
		}}
		if _, ok := OnLeave(leaves, date(2024, 2, 2)); ok {
			t.Fatalf("%s leave must not affect scheduling", status)
		}
	}
}
