package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestEditorCommit(t *testing.T) {
	editor := NewEditor()
	if err := editor.Set("staff-a", DayMonday, ShiftTime{Start: "09:00", End: "17:00"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := editor.Set("staff-b", DayTuesday, ShiftTime{Start: "10:00", End: "18:00"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	editor.Clear("staff-b", DayTuesday)

	shifts, err := editor.Commit(date(2024, 1, 1), nil)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if len(shifts) != 1 {
		t.Fatalf("cleared entries must be stripped, got %d staff", len(shifts))
	}
	if shifts["staff-a"][DayMonday].Start != "09:00" {
		t.Fatalf("unexpected shift map: %+v", shifts)
	}

	if len(editor.WorkingSet()) != 0 {
		t.Fatal("working set must be cleared after a successful commit")
	}
}

func TestEditorCommitRequiresEffectiveDate(t *testing.T) {
	editor := NewEditor()
	_ = editor.Set("staff-a", DayMonday, ShiftTime{Start: "09:00", End: "17:00"})

	if _, err := editor.Commit(time.Time{}, nil); !errors.Is(err, ErrNoEffectiveDate) {
		t.Fatalf("expected ErrNoEffectiveDate, got %v", err)
	}
}

func TestEditorCommitRejectsEmptySet(t *testing.T) {
	editor := NewEditor()
	if _, err := editor.Commit(date(2024, 1, 1), nil); !errors.Is(err, ErrEmptyShiftSet) {
		t.Fatalf("expected ErrEmptyShiftSet, got %v", err)
	}
}

func TestEditorSetValidates(t *testing.T) {
	editor := NewEditor()
	if err := editor.Set("staff-a", DayMonday, ShiftTime{Start: "17:00", End: "09:00"}); err == nil {
		t.Fatal("expected error for end before start")
	}
	if err := editor.Set("staff-a", "funday", ShiftTime{Start: "09:00", End: "17:00"}); err == nil {
		t.Fatal("expected error for unknown weekday")
	}
	if err := editor.Set("staff-a", DayMonday, ShiftTime{Start: "9:00", End: "17:00"}); err == nil {
		t.Fatal("expected error for non zero-padded time")
	}
}

func TestEditorCommitRejectsWholeBatchOnViolation(t *testing.T) {
	editor := NewEditor()
	_ = editor.Set("staff-ok", DayMonday, ShiftTime{Start: "09:00", End: "17:00"})
	_ = editor.Set("staff-leave", DayWednesday, ShiftTime{Start: "09:00", End: "17:00"})

	// Week starting Monday 2024-01-01; Wednesday lands on 2024-01-03.
	start := date(2024, 1, 1)
	contexts := map[string]GuardContext{
		"staff-leave": {
			Leaves: []LeaveInterval{{
				Start:  DayStart(date(2024, 1, 3)),
				End:    DayEnd(date(2024, 1, 3)),
				Status: LeaveStatusApproved,
				Type:   "sick",
			}},
		},
	}

	_, err := editor.Commit(start, contexts)
	var commitErr *CommitError
	if !errors.As(err, &commitErr) {
		t.Fatalf("expected CommitError, got %v", err)
	}
	if len(commitErr.Violations) != 1 {
		t.Fatalf("expected exactly one violation, got %+v", commitErr.Violations)
	}
	v := commitErr.Violations[0]
	if v.StaffID != "staff-leave" || v.Day != DayWednesday || !v.Date.Equal(date(2024, 1, 3)) {
		t.Fatalf("violation must name staff, day and derived date: %+v", v)
	}
	if v.Reason != ReasonOnLeave {
		t.Fatalf("expected on_leave reason, got %s", v.Reason)
	}

	// The rejected commit must leave the working set intact for correction.
	if len(editor.WorkingSet()) != 2 {
		t.Fatal("rejected commit must not clear the working set")
	}
}

func TestEditorSeedSkipsEmptyCells(t *testing.T) {
	editor := NewEditor()
	editor.Seed("staff-a", ShiftWeek{
		DayMonday:  {Start: "09:00", End: "17:00"},
		DayTuesday: {},
	})
	set := editor.WorkingSet()
	if len(set["staff-a"]) != 1 {
		t.Fatalf("empty cells must not be seeded: %+v", set)
	}
}

func TestDateForWeekday(t *testing.T) {
	// 2024-01-01 is a Monday.
	start := date(2024, 1, 1)
	if got := DateForWeekday(start, DayMonday); !got.Equal(start) {
		t.Fatalf("same weekday must map to the start date, got %s", got)
	}
	if got := DateForWeekday(start, DaySunday); !got.Equal(date(2024, 1, 7)) {
		t.Fatalf("expected 2024-01-07 for Sunday, got %s", got)
	}
	if got := DateForWeekday(start, DayThursday); !got.Equal(date(2024, 1, 4)) {
		t.Fatalf("expected 2024-01-04 for Thursday, got %s", got)
	}
}
