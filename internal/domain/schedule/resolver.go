package schedule

import (
	"sort"
	"time"
)

// Resolve determines the effective shift for one staff member on one calendar
// date. Precedence, stopping at the first match:
//
//  1. outbound lending covering the date
//  2. one-off override for exactly this date
//  3. the configuration with the latest startDate <= date (ties broken by
//     latest createdAt) that defines a shift for this staff and weekday
//  4. a legacy shift embedded on the staff record, unless flagged inactive
//
// The per-configuration isActive flag only marks the newest version; it never
// affects which configuration applies to a date, so resolved recurring shifts
// always report IsActive true. Leave is layered on top by the caller.
func Resolve(staff StaffSchedule, date time.Time, configs []Configuration, outbound []LendingInterval) (ResolvedShift, bool) {
	day := DayStart(date)

	for _, l := range outbound {
		if coversDay(l.Start, l.End, day) {
			branch := l.ToBranchName
			if branch == "" {
				branch = l.ToBranchID
			}
			return ResolvedShift{IsLending: true, LendingBranch: branch}, true
		}
	}

	if shift, ok := staff.Overrides[DateKey(day)]; ok && shift.Start != "" && shift.End != "" {
		return ResolvedShift{
			Start:          shift.Start,
			End:            shift.End,
			IsDateSpecific: true,
			IsActive:       true,
		}, true
	}

	if cfg, ok := effectiveConfiguration(configs, day); ok {
		if week, ok := cfg.Shifts[staff.StaffID]; ok {
			if shift, ok := week[WeekdayKey(day)]; ok && shift.Start != "" && shift.End != "" {
				return ResolvedShift{
					Start:       shift.Start,
					End:         shift.End,
					IsRecurring: true,
					IsActive:    true,
					ConfigID:    cfg.ID,
					StartDate:   cfg.StartDate,
				}, true
			}
		}
	}

	if !staff.LegacyInactive {
		if shift, ok := staff.Legacy[WeekdayKey(day)]; ok && shift.Start != "" && shift.End != "" {
			return ResolvedShift{
				Start:       shift.Start,
				End:         shift.End,
				IsRecurring: true,
				IsActive:    true,
			}, true
		}
	}

	return ResolvedShift{}, false
}

// effectiveConfiguration picks the version governing the given day: latest
// startDate not after the day, ties broken by latest createdAt so the rule is
// deterministic regardless of store result order.
func effectiveConfiguration(configs []Configuration, day time.Time) (Configuration, bool) {
	candidates := make([]Configuration, 0, len(configs))
	for _, c := range configs {
		if !DayStart(c.StartDate).After(day) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return Configuration{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := DayStart(candidates[i].StartDate), DayStart(candidates[j].StartDate)
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	return candidates[len(candidates)-1], true
}

// OnLeave reports whether any pending or approved interval covers the date.
func OnLeave(leaves []LeaveInterval, date time.Time) (LeaveInterval, bool) {
	day := DayStart(date)
	for _, l := range leaves {
		if l.Status != LeaveStatusPending && l.Status != LeaveStatusApproved {
			continue
		}
		if coversDay(l.Start, l.End, day) {
			return l, true
		}
	}
	return LeaveInterval{}, false
}

const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
)

func coversDay(start, end, day time.Time) bool {
	return !day.Before(DayStart(start)) && !day.After(DayStart(end))
}
