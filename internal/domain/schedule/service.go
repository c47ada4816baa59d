package schedule

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// RosterMember is one schedulable staff member for a branch: home staff plus
// stylists borrowed in via approved lendings.
type RosterMember struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Borrowed       bool      `json:"borrowed,omitempty"`
	Legacy         ShiftWeek `json:"-"`
	LegacyInactive bool      `json:"-"`
}

// BranchData is everything the resolver and guard need for one branch and
// window, fetched in one pass. DataError flags a leave/lending fetch that
// failed even after the unordered retry; the maps are then empty and the
// caller surfaces a single error indicator instead of failing the request.
type BranchData struct {
	Configs   []Configuration
	Overrides map[string]map[string]ShiftTime
	Leaves    map[string][]LeaveInterval
	Outbound  map[string][]LendingInterval
	Inbound   map[string][]LendingInterval
	Hours     map[string]DayHours
	DataError bool
}

func (s *Service) BranchData(ctx context.Context, branchID string, from, to time.Time) (BranchData, error) {
	data := BranchData{
		Leaves:   make(map[string][]LeaveInterval),
		Outbound: make(map[string][]LendingInterval),
		Inbound:  make(map[string][]LendingInterval),
	}

	configs, err := s.Store.ListConfigurations(ctx, branchID)
	if err != nil {
		return data, err
	}
	data.Configs = configs

	overrides, err := s.Store.Overrides(ctx, branchID, from, to)
	if err != nil {
		return data, err
	}
	data.Overrides = overrides

	hours, err := s.Store.BranchHours(ctx, branchID)
	if err != nil {
		return data, err
	}
	data.Hours = hours

	leaveRows, err := s.Store.LeaveRows(ctx, branchID, from, to)
	if err != nil {
		slog.Warn("leave fetch failed, continuing with empty windows", "branchId", branchID, "err", err)
		data.DataError = true
	} else {
		data.Leaves = BuildLeaveMap(leaveRows)
	}

	lendingRows, err := s.Store.LendingRows(ctx, branchID, from, to)
	if err != nil {
		slog.Warn("lending fetch failed, continuing with empty windows", "branchId", branchID, "err", err)
		data.DataError = true
	} else {
		data.Outbound, data.Inbound = BuildLendingMaps(branchID, lendingRows)
	}

	return data, nil
}

// GuardContextFor assembles the availability context for one staff member.
func (data BranchData) GuardContextFor(staffID string, borrowed bool) GuardContext {
	return GuardContext{
		Leaves:   data.Leaves[staffID],
		Outbound: data.Outbound[staffID],
		Borrowed: borrowed,
		Inbound:  data.Inbound[staffID],
		Hours:    data.Hours,
	}
}

// DayCell is one resolved (staff, date) cell in a week view.
type DayCell struct {
	Date     string         `json:"date"`
	Resolved *ResolvedShift `json:"shift,omitempty"`
}

// StaffWeek is one staff member's resolved week.
type StaffWeek struct {
	Staff RosterMember `json:"staff"`
	Days  []DayCell    `json:"days"`
}

// WeekScheduleResult is the full resolved week for a branch.
type WeekScheduleResult struct {
	WeekStart string      `json:"weekStart"`
	Rows      []StaffWeek `json:"rows"`
	DataError bool        `json:"dataError,omitempty"`
}

// WeekSchedule resolves seven days starting at weekStart for every roster
// member. Leave is layered over resolved shifts for display: a staff member
// on pending or approved leave shows the leave state even when a
// configuration defines a shift for that day.
func (s *Service) WeekSchedule(ctx context.Context, branchID string, weekStart time.Time) (WeekScheduleResult, error) {
	from := DayStart(weekStart)
	to := from.AddDate(0, 0, 6)

	data, err := s.BranchData(ctx, branchID, from, to)
	if err != nil {
		return WeekScheduleResult{}, err
	}
	roster, err := s.Roster(ctx, branchID, data)
	if err != nil {
		return WeekScheduleResult{}, err
	}

	result := WeekScheduleResult{WeekStart: DateKey(from), DataError: data.DataError}
	for _, member := range roster {
		staff := StaffSchedule{
			StaffID:        member.ID,
			Overrides:      data.Overrides[member.ID],
			Legacy:         member.Legacy,
			LegacyInactive: member.LegacyInactive,
		}
		row := StaffWeek{Staff: member, Days: make([]DayCell, 0, 7)}
		for i := 0; i < 7; i++ {
			date := from.AddDate(0, 0, i)
			cell := DayCell{Date: DateKey(date)}
			if leave, ok := OnLeave(data.Leaves[member.ID], date); ok {
				cell.Resolved = &ResolvedShift{OnLeave: true, LeaveType: leave.Type}
			} else if resolved, ok := Resolve(staff, date, data.Configs, data.Outbound[member.ID]); ok {
				cell.Resolved = &resolved
			}
			row.Days = append(row.Days, cell)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// Roster lists home staff for the branch plus stylists borrowed in through
// the inbound lending windows already present in data.
func (s *Service) Roster(ctx context.Context, branchID string, data BranchData) ([]RosterMember, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, first_name || ' ' || last_name, role, COALESCE(legacy_shifts, '{}'::jsonb), legacy_shifts_inactive
    FROM staff
    WHERE branch_id = $1 AND status = 'active'
    ORDER BY first_name, last_name
  `, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []RosterMember
	seen := make(map[string]bool)
	for rows.Next() {
		var m RosterMember
		var legacyRaw []byte
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &legacyRaw, &m.LegacyInactive); err != nil {
			return nil, err
		}
		m.Legacy = decodeLegacy(m.ID, legacyRaw)
		roster = append(roster, m)
		seen[m.ID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for stylistID := range data.Inbound {
		if seen[stylistID] {
			continue
		}
		var m RosterMember
		var legacyRaw []byte
		err := s.Store.DB.QueryRow(ctx, `
      SELECT id, first_name || ' ' || last_name, role, COALESCE(legacy_shifts, '{}'::jsonb), legacy_shifts_inactive
      FROM staff
      WHERE id = $1
    `, stylistID).Scan(&m.ID, &m.Name, &m.Role, &legacyRaw, &m.LegacyInactive)
		if err != nil {
			slog.Warn("borrowed stylist lookup failed", "stylistId", stylistID, "err", err)
			continue
		}
		m.Borrowed = true
		m.Legacy = decodeLegacy(m.ID, legacyRaw)
		roster = append(roster, m)
	}
	return roster, nil
}

// AddOverride places a one-off shift after the availability guard clears the
// date for that staff member.
func (s *Service) AddOverride(ctx context.Context, branchID, staffID string, date time.Time, shift ShiftTime, borrowed bool) error {
	if err := ValidateShift(shift); err != nil {
		return err
	}
	day := DayStart(date)
	data, err := s.BranchData(ctx, branchID, day, day)
	if err != nil {
		return err
	}
	if gerr := CheckAvailability(data.GuardContextFor(staffID, borrowed), day, shift); gerr != nil {
		return gerr
	}
	return s.Store.SetOverride(ctx, branchID, staffID, day, shift)
}

// CommitWorkingSet validates a bulk edit against the guard for every entry,
// using the chosen effective start date, and creates the new configuration
// version. A single violation rejects the whole commit.
func (s *Service) CommitWorkingSet(ctx context.Context, branchID string, start time.Time, set map[string]ShiftWeek, notes string) (Configuration, error) {
	if start.IsZero() {
		return Configuration{}, ErrNoEffectiveDate
	}
	from := DayStart(start)
	data, err := s.BranchData(ctx, branchID, from, from.AddDate(0, 0, 6))
	if err != nil {
		return Configuration{}, err
	}

	editor := NewEditor()
	for staffID, week := range set {
		for day, shift := range week {
			if shift.IsZero() {
				continue
			}
			if err := editor.Set(staffID, day, shift); err != nil {
				return Configuration{}, err
			}
		}
	}

	contexts := make(map[string]GuardContext, len(set))
	for staffID := range set {
		_, borrowed := data.Inbound[staffID]
		contexts[staffID] = data.GuardContextFor(staffID, borrowed)
	}

	shifts, err := editor.Commit(from, contexts)
	if err != nil {
		return Configuration{}, err
	}

	return s.Store.CreateConfiguration(ctx, CreateParams{
		BranchID:  branchID,
		StartDate: from,
		Shifts:    shifts,
		Notes:     notes,
	})
}

// StylistAvailable checks that a stylist is rostered for the window on the
// date: on shift, not on leave, not lent away, and inside the shift bounds.
// Bookings use this before accepting an appointment.
func (s *Service) StylistAvailable(ctx context.Context, branchID, staffID string, date time.Time, start, end string) error {
	day := DayStart(date)
	data, err := s.BranchData(ctx, branchID, day, day)
	if err != nil {
		return err
	}

	_, borrowed := data.Inbound[staffID]
	if gerr := CheckAvailability(data.GuardContextFor(staffID, borrowed), day, ShiftTime{Start: start, End: end}); gerr != nil {
		return gerr
	}

	roster, err := s.Roster(ctx, branchID, data)
	if err != nil {
		return err
	}
	for _, member := range roster {
		if member.ID != staffID {
			continue
		}
		staff := StaffSchedule{
			StaffID:        member.ID,
			Overrides:      data.Overrides[member.ID],
			Legacy:         member.Legacy,
			LegacyInactive: member.LegacyInactive,
		}
		resolved, ok := Resolve(staff, day, data.Configs, data.Outbound[member.ID])
		if !ok {
			return &GuardError{Reason: ReasonOutsideHours, Detail: "stylist has no shift on " + DateKey(day)}
		}
		if start < resolved.Start || end > resolved.End {
			return &GuardError{Reason: ReasonOutsideHours, Detail: "window falls outside the " + resolved.Start + " to " + resolved.End + " shift"}
		}
		return nil
	}
	return &GuardError{Reason: ReasonOutsideHours, Detail: "stylist is not on the branch roster"}
}

func decodeLegacy(staffID string, raw []byte) ShiftWeek {
	if len(raw) == 0 {
		return nil
	}
	var week ShiftWeek
	if err := json.Unmarshal(raw, &week); err != nil {
		slog.Warn("dropping unreadable legacy shifts", "staffId", staffID, "err", err)
		return nil
	}
	return week
}
