package schedule

import "time"

// Weekday keys as stored inside configuration shift maps.
const (
	DaySunday    = "sunday"
	DayMonday    = "monday"
	DayTuesday   = "tuesday"
	DayWednesday = "wednesday"
	DayThursday  = "thursday"
	DayFriday    = "friday"
	DaySaturday  = "saturday"
)

var Weekdays = []string{DaySunday, DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday}

// WeekdayKey maps a calendar date to its shift-map key.
func WeekdayKey(t time.Time) string {
	return Weekdays[int(t.Weekday())]
}

// ShiftTime is a single working window, both ends zero-padded HH:mm.
type ShiftTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (s ShiftTime) IsZero() bool {
	return s.Start == "" && s.End == ""
}

// ShiftWeek maps weekday key to the shift worked that day.
type ShiftWeek map[string]ShiftTime

// Configuration is one version of a branch's recurring weekly roster.
// Versions are append-only: a newer configuration supersedes the previous
// active one by setting its endDate and isActive=false, never by mutating
// its shifts.
type Configuration struct {
	ID        string               `json:"id"`
	BranchID  string               `json:"branchId"`
	StartDate time.Time            `json:"startDate"`
	EndDate   *time.Time           `json:"endDate,omitempty"`
	Shifts    map[string]ShiftWeek `json:"shifts"`
	Notes     string               `json:"notes,omitempty"`
	IsActive  bool                 `json:"isActive"`
	CreatedAt time.Time            `json:"createdAt"`
}

// ResolvedShift is the effective state of one (staff, date) cell. Exactly one
// of the shift fields, IsLending or OnLeave is meaningful; absence of all
// three renders as a dash.
type ResolvedShift struct {
	Start          string    `json:"start,omitempty"`
	End            string    `json:"end,omitempty"`
	IsRecurring    bool      `json:"isRecurring,omitempty"`
	IsActive       bool      `json:"isActive,omitempty"`
	IsDateSpecific bool      `json:"isDateSpecific,omitempty"`
	ConfigID       string    `json:"configId,omitempty"`
	StartDate      time.Time `json:"configStartDate,omitzero"`

	IsLending     bool   `json:"isLending,omitempty"`
	LendingBranch string `json:"lendingBranch,omitempty"`

	OnLeave   bool   `json:"isOnLeave,omitempty"`
	LeaveType string `json:"leaveType,omitempty"`
}

// LeaveInterval is a normalized day-granular leave window. Start is floored
// to 00:00:00 and End ceiled to the end of its calendar day, both UTC.
type LeaveInterval struct {
	Start  time.Time `json:"startDate"`
	End    time.Time `json:"endDate"`
	Status string    `json:"status"`
	Type   string    `json:"type"`
}

// LendingInterval is a normalized stylist lending window between branches.
type LendingInterval struct {
	StylistID      string    `json:"stylistId"`
	FromBranchID   string    `json:"fromBranchId"`
	ToBranchID     string    `json:"toBranchId"`
	FromBranchName string    `json:"fromBranchName,omitempty"`
	ToBranchName   string    `json:"toBranchName,omitempty"`
	Start          time.Time `json:"startDate"`
	End            time.Time `json:"endDate"`
	Status         string    `json:"status"`
}

// DayHours is a branch's operating window for one weekday.
type DayHours struct {
	Closed bool   `json:"closed"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
}

// StaffSchedule carries the per-staff inputs the resolver needs beyond the
// shared configuration list.
type StaffSchedule struct {
	StaffID string
	// Overrides are one-off shifts keyed by YYYY-MM-DD.
	Overrides map[string]ShiftTime
	// Legacy is a shift week embedded directly on the staff record, used
	// only when no configuration resolves.
	Legacy         ShiftWeek
	LegacyInactive bool
}
