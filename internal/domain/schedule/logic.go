package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrEmptyShiftSet = errors.New("configuration has no shifts")

	timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ValidTime reports whether s is a zero-padded 24-hour HH:mm string.
func ValidTime(s string) bool {
	return timeRe.MatchString(s)
}

// ValidateShift checks one shift entry: both ends present, well formed, and
// strictly ordered.
func ValidateShift(shift ShiftTime) error {
	if !ValidTime(shift.Start) {
		return fmt.Errorf("invalid start time %q", shift.Start)
	}
	if !ValidTime(shift.End) {
		return fmt.Errorf("invalid end time %q", shift.End)
	}
	if shift.End <= shift.Start {
		return fmt.Errorf("shift end %s must be after start %s", shift.End, shift.Start)
	}
	return nil
}

// ValidateShifts checks a full configuration shift map: every entry ordered,
// every weekday key known, and at least one non-empty entry overall.
func ValidateShifts(shifts map[string]ShiftWeek) error {
	nonEmpty := false
	for staffID, week := range shifts {
		for day, shift := range week {
			if !knownWeekday(day) {
				return fmt.Errorf("staff %s: unknown weekday %q", staffID, day)
			}
			if shift.IsZero() {
				continue
			}
			if err := ValidateShift(shift); err != nil {
				return fmt.Errorf("staff %s %s: %w", staffID, day, err)
			}
			nonEmpty = true
		}
	}
	if !nonEmpty {
		return ErrEmptyShiftSet
	}
	return nil
}

func knownWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// DateForWeekday returns the first occurrence of the weekday on or after
// start. Bulk commits use it to re-derive the actual calendar date each
// (staff, weekday) entry will first apply to.
func DateForWeekday(start time.Time, day string) time.Time {
	base := DayStart(start)
	target := weekdayIndex(day)
	offset := (target - int(base.Weekday()) + 7) % 7
	return base.AddDate(0, 0, offset)
}

func weekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return 0
}
