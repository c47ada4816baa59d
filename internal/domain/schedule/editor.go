package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrNoEffectiveDate = errors.New("effective start date required")

// Violation is one availability failure found while validating a commit.
type Violation struct {
	StaffID string    `json:"staffId"`
	Day     string    `json:"day"`
	Date    time.Time `json:"date"`
	Reason  string    `json:"reason"`
	Detail  string    `json:"detail,omitempty"`
}

// CommitError rejects an entire bulk commit, reporting every violating
// (staff, day, date) combination.
type CommitError struct {
	Violations []Violation
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit rejected: %d availability violations", len(e.Violations))
}

// Editor accumulates shift edits across staff and weekdays and produces the
// shift map for a new configuration version on commit. It belongs to one
// editing session; concurrent sessions are not merged, the committer's
// snapshot wins.
type Editor struct {
	working map[string]ShiftWeek
}

func NewEditor() *Editor {
	return &Editor{working: make(map[string]ShiftWeek)}
}

// Seed loads the currently resolved week for one staff member. Lending and
// leave cells are not seeded; only concrete shifts carry over.
func (e *Editor) Seed(staffID string, week ShiftWeek) {
	if len(week) == 0 {
		return
	}
	copied := make(ShiftWeek, len(week))
	for day, shift := range week {
		if shift.IsZero() {
			continue
		}
		copied[day] = shift
	}
	if len(copied) > 0 {
		e.working[staffID] = copied
	}
}

// Set records one cell edit. The shift must be well formed; availability is
// checked by the caller before and again at commit.
func (e *Editor) Set(staffID, day string, shift ShiftTime) error {
	if !knownWeekday(day) {
		return fmt.Errorf("unknown weekday %q", day)
	}
	if err := ValidateShift(shift); err != nil {
		return err
	}
	if e.working[staffID] == nil {
		e.working[staffID] = make(ShiftWeek)
	}
	e.working[staffID][day] = shift
	return nil
}

// Clear removes one cell from the working set.
func (e *Editor) Clear(staffID, day string) {
	if week, ok := e.working[staffID]; ok {
		delete(week, day)
		if len(week) == 0 {
			delete(e.working, staffID)
		}
	}
}

// ClearAll empties the working set.
func (e *Editor) ClearAll() {
	e.working = make(map[string]ShiftWeek)
}

// WorkingSet returns a copy with empty entries stripped.
func (e *Editor) WorkingSet() map[string]ShiftWeek {
	out := make(map[string]ShiftWeek, len(e.working))
	for staffID, week := range e.working {
		copied := make(ShiftWeek, len(week))
		for day, shift := range week {
			if shift.IsZero() {
				continue
			}
			copied[day] = shift
		}
		if len(copied) > 0 {
			out[staffID] = copied
		}
	}
	return out
}

// Commit validates the whole working set against the availability guard
// using the chosen effective start date and returns the shift map for the
// new configuration. Every entry is re-checked because leave or lending
// records may have appeared after the cell was edited, and because moving
// the start date changes which calendar date each weekday entry lands on.
// Any violation rejects the commit as a whole.
func (e *Editor) Commit(start time.Time, contexts map[string]GuardContext) (map[string]ShiftWeek, error) {
	if start.IsZero() {
		return nil, ErrNoEffectiveDate
	}
	set := e.WorkingSet()
	if err := ValidateShifts(set); err != nil {
		return nil, err
	}

	var violations []Violation
	for _, staffID := range sortedKeys(set) {
		ctx := contexts[staffID]
		for _, day := range Weekdays {
			shift, ok := set[staffID][day]
			if !ok {
				continue
			}
			date := DateForWeekday(start, day)
			if gerr := CheckAvailability(ctx, date, shift); gerr != nil {
				violations = append(violations, Violation{
					StaffID: staffID,
					Day:     day,
					Date:    date,
					Reason:  gerr.Reason,
					Detail:  gerr.Detail,
				})
			}
		}
	}
	if len(violations) > 0 {
		return nil, &CommitError{Violations: violations}
	}

	e.working = make(map[string]ShiftWeek)
	return set, nil
}

func sortedKeys(set map[string]ShiftWeek) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
