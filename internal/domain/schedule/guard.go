package schedule

import (
	"fmt"
	"time"
)

// Rejection reasons reported by the availability guard.
const (
	ReasonOnLeave        = "on_leave"
	ReasonLentOut        = "lent_out"
	ReasonOutsideLending = "outside_lending_period"
	ReasonBranchClosed   = "branch_closed"
	ReasonOutsideHours   = "outside_operating_hours"
	ReasonBadTimeOrder   = "invalid_time_order"
)

// GuardError explains why a shift may not be placed on a date.
type GuardError struct {
	Reason string
	Detail string
}

func (e *GuardError) Error() string {
	if e.Detail == "" {
		return e.Reason
	}
	return e.Reason + ": " + e.Detail
}

// GuardContext is everything known about one staff member that can block a
// shift: their leave windows, outbound lendings, and, for borrowed staff,
// the inbound lending that places them in this branch at all.
type GuardContext struct {
	Leaves   []LeaveInterval
	Outbound []LendingInterval
	// Borrowed marks staff present in the roster only via an inbound
	// lending; scheduling is permitted only inside one of the Inbound
	// windows.
	Borrowed bool
	Inbound  []LendingInterval
	// Hours is the branch operating-hours table keyed by weekday; nil
	// disables the branch-hours checks.
	Hours map[string]DayHours
}

// CheckAvailability validates placing shift on date for the staff member
// described by ctx. A nil return means the placement is allowed.
func CheckAvailability(ctx GuardContext, date time.Time, shift ShiftTime) *GuardError {
	day := DayStart(date)

	if leave, ok := OnLeave(ctx.Leaves, day); ok {
		return &GuardError{
			Reason: ReasonOnLeave,
			Detail: fmt.Sprintf("%s leave %s to %s", leave.Type, DateKey(leave.Start), DateKey(leave.End)),
		}
	}

	for _, l := range ctx.Outbound {
		if coversDay(l.Start, l.End, day) {
			branch := l.ToBranchName
			if branch == "" {
				branch = l.ToBranchID
			}
			return &GuardError{
				Reason: ReasonLentOut,
				Detail: fmt.Sprintf("lent to %s %s to %s", branch, DateKey(l.Start), DateKey(l.End)),
			}
		}
	}

	if ctx.Borrowed {
		inside := false
		for _, l := range ctx.Inbound {
			if coversDay(l.Start, l.End, day) {
				inside = true
				break
			}
		}
		if !inside {
			return &GuardError{
				Reason: ReasonOutsideLending,
				Detail: fmt.Sprintf("no lending covers %s", DateKey(day)),
			}
		}
	}

	if !shift.IsZero() {
		if shift.End <= shift.Start {
			return &GuardError{
				Reason: ReasonBadTimeOrder,
				Detail: fmt.Sprintf("end %s not after start %s", shift.End, shift.Start),
			}
		}
		if ctx.Hours != nil {
			if hours, ok := ctx.Hours[WeekdayKey(day)]; ok {
				if hours.Closed {
					return &GuardError{
						Reason: ReasonBranchClosed,
						Detail: fmt.Sprintf("branch closed on %s", WeekdayKey(day)),
					}
				}
				if (hours.Open != "" && shift.Start < hours.Open) || (hours.Close != "" && shift.End > hours.Close) {
					return &GuardError{
						Reason: ReasonOutsideHours,
						Detail: fmt.Sprintf("branch open %s to %s", hours.Open, hours.Close),
					}
				}
			}
		}
	}

	return nil
}
