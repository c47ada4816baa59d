package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const requestColumns = `id, employee_id, branch_id, start_date, end_date, leave_type, reason, status, COALESCE(decided_by, ''), created_at`

func (s *Store) List(ctx context.Context, branchID, employeeID, status string, limit, offset int) ([]Request, error) {
	query := "SELECT " + requestColumns + " FROM leave_requests WHERE branch_id = $1"
	args := []any{branchID}
	if employeeID != "" {
		args = append(args, employeeID)
		query += " AND employee_id = $2"
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var r Request
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.BranchID, &r.StartDate, &r.EndDate, &r.Type, &r.Reason, &r.Status, &r.DecidedBy, &r.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func (s *Store) Get(ctx context.Context, requestID string) (Request, error) {
	var r Request
	err := s.DB.QueryRow(ctx,
		"SELECT "+requestColumns+" FROM leave_requests WHERE id = $1", requestID,
	).Scan(&r.ID, &r.EmployeeID, &r.BranchID, &r.StartDate, &r.EndDate, &r.Type, &r.Reason, &r.Status, &r.DecidedBy, &r.CreatedAt)
	return r, err
}

func (s *Store) Create(ctx context.Context, req Request) (Request, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, branch_id, start_date, end_date, leave_type, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, created_at
  `, req.EmployeeID, req.BranchID, req.StartDate, req.EndDate, req.Type, req.Reason, req.Status).Scan(&req.ID, &req.CreatedAt)
	return req, err
}

func (s *Store) UpdateStatus(ctx context.Context, requestID, status, decidedBy string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, decided_by = $2, decided_at = now()
    WHERE id = $3
  `, status, decidedBy, requestID)
	return err
}

func (s *Store) EmployeeUserID(ctx context.Context, employeeID string) (string, error) {
	var userID string
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(user_id, '') FROM staff WHERE id = $1", employeeID).Scan(&userID)
	return userID, err
}

func (s *Store) Overlapping(ctx context.Context, branchID string, from, to time.Time) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE branch_id = $1 AND status IN ($2,$3)
      AND start_date <= $5 AND end_date >= $4
    ORDER BY start_date
  `, branchID, StatusPending, StatusApproved, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var r Request
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.BranchID, &r.StartDate, &r.EndDate, &r.Type, &r.Reason, &r.Status, &r.DecidedBy, &r.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
