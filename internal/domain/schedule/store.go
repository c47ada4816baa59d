package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// ListConfigurations returns every configuration version for a branch,
// active and superseded, oldest first.
func (s *Store) ListConfigurations(ctx context.Context, branchID string) ([]Configuration, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, branch_id, start_date, end_date, shifts, notes, is_active, created_at
    FROM schedule_configurations
    WHERE branch_id = $1
    ORDER BY start_date, created_at
  `, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []Configuration
	for rows.Next() {
		var c Configuration
		var shiftsRaw []byte
		if err := rows.Scan(&c.ID, &c.BranchID, &c.StartDate, &c.EndDate, &shiftsRaw, &c.Notes, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(shiftsRaw, &c.Shifts); err != nil {
			slog.Warn("dropping configuration with unreadable shifts", "id", c.ID, "err", err)
			continue
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

type CreateParams struct {
	BranchID  string
	StartDate time.Time
	Shifts    map[string]ShiftWeek
	Notes     string
}

// CreateConfiguration validates the shift map, inserts the new version and
// supersedes the previously active one in a single transaction, so either
// both changes land or neither is visible.
func (s *Store) CreateConfiguration(ctx context.Context, params CreateParams) (Configuration, error) {
	if params.StartDate.IsZero() {
		return Configuration{}, ErrNoEffectiveDate
	}
	if err := ValidateShifts(params.Shifts); err != nil {
		return Configuration{}, err
	}

	shiftsRaw, err := json.Marshal(params.Shifts)
	if err != nil {
		return Configuration{}, err
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Configuration{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	startDay := DayStart(params.StartDate)
	if _, err := tx.Exec(ctx, `
    UPDATE schedule_configurations
    SET is_active = false, end_date = $1
    WHERE branch_id = $2 AND is_active = true
  `, startDay, params.BranchID); err != nil {
		return Configuration{}, err
	}

	out := Configuration{
		BranchID:  params.BranchID,
		StartDate: startDay,
		Shifts:    params.Shifts,
		Notes:     params.Notes,
		IsActive:  true,
	}
	if err := tx.QueryRow(ctx, `
    INSERT INTO schedule_configurations (branch_id, start_date, shifts, notes, is_active)
    VALUES ($1,$2,$3,$4,true)
    RETURNING id, created_at
  `, params.BranchID, startDay, shiftsRaw, params.Notes).Scan(&out.ID, &out.CreatedAt); err != nil {
		return Configuration{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Configuration{}, err
	}
	return out, nil
}

// DeactivateEntry removes a single recurring weekday entry from the active
// configuration. The configuration itself stays in place.
func (s *Store) DeactivateEntry(ctx context.Context, branchID, employeeID, day string) error {
	if !knownWeekday(day) {
		return fmt.Errorf("unknown weekday %q", day)
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE schedule_configurations
    SET shifts = shifts #- ARRAY[$1, $2]::text[]
    WHERE branch_id = $3 AND is_active = true
  `, employeeID, day, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// LeaveRows fetches pending and approved leave for a branch and window,
// ordered by start date. If the ordered query fails it is retried once
// without the ordering clause before the error propagates.
func (s *Store) LeaveRows(ctx context.Context, branchID string, from, to time.Time) ([]RawLeave, error) {
	const base = `
    SELECT employee_id, start_date, end_date, status, leave_type
    FROM leave_requests
    WHERE branch_id = $1 AND status IN ('pending','approved')
      AND start_date <= $3 AND end_date >= $2
  `
	rows, err := s.DB.Query(ctx, base+" ORDER BY start_date", branchID, from, to)
	if err != nil {
		slog.Warn("ordered leave query failed, retrying unordered", "branchId", branchID, "err", err)
		rows, err = s.DB.Query(ctx, base, branchID, from, to)
		if err != nil {
			return nil, err
		}
	}
	defer rows.Close()

	var out []RawLeave
	for rows.Next() {
		var r RawLeave
		var start, end time.Time
		if err := rows.Scan(&r.EmployeeID, &start, &end, &r.Status, &r.Type); err != nil {
			return nil, err
		}
		r.Start, r.End = start, end
		out = append(out, r)
	}
	return out, rows.Err()
}

// LendingRows fetches approved lendings touching the branch in either
// direction, with branch names joined in, using the same ordered-then-
// unordered retry as LeaveRows.
func (s *Store) LendingRows(ctx context.Context, branchID string, from, to time.Time) ([]RawLending, error) {
	const base = `
    SELECT l.stylist_id, l.from_branch_id, l.to_branch_id, fb.name, tb.name, l.start_date, l.end_date, l.status
    FROM lendings l
    JOIN branches fb ON l.from_branch_id = fb.id
    JOIN branches tb ON l.to_branch_id = tb.id
    WHERE (l.from_branch_id = $1 OR l.to_branch_id = $1) AND l.status = 'approved'
      AND l.start_date <= $3 AND l.end_date >= $2
  `
	rows, err := s.DB.Query(ctx, base+" ORDER BY l.start_date", branchID, from, to)
	if err != nil {
		slog.Warn("ordered lending query failed, retrying unordered", "branchId", branchID, "err", err)
		rows, err = s.DB.Query(ctx, base, branchID, from, to)
		if err != nil {
			return nil, err
		}
	}
	defer rows.Close()

	var out []RawLending
	for rows.Next() {
		var r RawLending
		var start, end time.Time
		if err := rows.Scan(&r.StylistID, &r.FromBranchID, &r.ToBranchID, &r.FromBranchName, &r.ToBranchName, &start, &end, &r.Status); err != nil {
			return nil, err
		}
		r.Start, r.End = start, end
		out = append(out, r)
	}
	return out, rows.Err()
}

// Overrides returns one-off shifts for a branch and window, keyed by
// employee then YYYY-MM-DD.
func (s *Store) Overrides(ctx context.Context, branchID string, from, to time.Time) (map[string]map[string]ShiftTime, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, shift_date, start_time, end_time
    FROM shift_overrides
    WHERE branch_id = $1 AND shift_date BETWEEN $2 AND $3
  `, branchID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]map[string]ShiftTime)
	for rows.Next() {
		var employeeID, start, end string
		var date time.Time
		if err := rows.Scan(&employeeID, &date, &start, &end); err != nil {
			return nil, err
		}
		if out[employeeID] == nil {
			out[employeeID] = make(map[string]ShiftTime)
		}
		out[employeeID][DateKey(date)] = ShiftTime{Start: start, End: end}
	}
	return out, rows.Err()
}

func (s *Store) SetOverride(ctx context.Context, branchID, employeeID string, date time.Time, shift ShiftTime) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO shift_overrides (branch_id, employee_id, shift_date, start_time, end_time)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (branch_id, employee_id, shift_date)
    DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time
  `, branchID, employeeID, DayStart(date), shift.Start, shift.End)
	return err
}

func (s *Store) DeleteOverride(ctx context.Context, branchID, employeeID string, date time.Time) error {
	_, err := s.DB.Exec(ctx, `
    DELETE FROM shift_overrides
    WHERE branch_id = $1 AND employee_id = $2 AND shift_date = $3
  `, branchID, employeeID, DayStart(date))
	return err
}

// BranchHours loads the operating-hours table for a branch keyed by weekday.
// An empty map means no hours are configured and the guard skips the check.
func (s *Store) BranchHours(ctx context.Context, branchID string) (map[string]DayHours, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT day_of_week, closed, open_time, close_time
    FROM branch_hours
    WHERE branch_id = $1
  `, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]DayHours)
	for rows.Next() {
		var day string
		var h DayHours
		if err := rows.Scan(&day, &h.Closed, &h.Open, &h.Close); err != nil {
			return nil, err
		}
		out[day] = h
	}
	return out, rows.Err()
}
