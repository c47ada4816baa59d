package core

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListBranches(ctx context.Context) ([]Branch, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, address, phone, is_active, created_at
    FROM branches
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []Branch
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

func (s *Store) CreateBranch(ctx context.Context, name, address, phone string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO branches (name, address, phone, is_active)
    VALUES ($1,$2,$3,true)
    RETURNING id
  `, name, address, phone).Scan(&id)
	return id, err
}

func (s *Store) BranchName(ctx context.Context, branchID string) (string, error) {
	var name string
	err := s.DB.QueryRow(ctx, "SELECT name FROM branches WHERE id = $1", branchID).Scan(&name)
	return name, err
}

func (s *Store) ListStaff(ctx context.Context, branchID string) ([]Staff, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, branch_id, COALESCE(user_id, ''), first_name, last_name, role, phone, status, created_at
    FROM staff
    WHERE branch_id = $1
    ORDER BY first_name, last_name
  `, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []Staff
	for rows.Next() {
		var m Staff
		if err := rows.Scan(&m.ID, &m.BranchID, &m.UserID, &m.FirstName, &m.LastName, &m.Role, &m.Phone, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		staff = append(staff, m)
	}
	return staff, rows.Err()
}

func (s *Store) CreateStaff(ctx context.Context, m Staff) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO staff (branch_id, first_name, last_name, role, phone, status)
    VALUES ($1,$2,$3,$4,$5,'active')
    RETURNING id
  `, m.BranchID, m.FirstName, m.LastName, m.Role, m.Phone).Scan(&id)
	return id, err
}

func (s *Store) StaffBranch(ctx context.Context, staffID string) (string, error) {
	var branchID string
	err := s.DB.QueryRow(ctx, "SELECT branch_id FROM staff WHERE id = $1", staffID).Scan(&branchID)
	return branchID, err
}

func (s *Store) ListClients(ctx context.Context, branchID string, limit, offset int) ([]Client, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, COALESCE(branch_id, ''), first_name, last_name, phone, email, notes, created_at
    FROM clients
    WHERE branch_id = $1 OR branch_id IS NULL
    ORDER BY first_name, last_name
    LIMIT $2 OFFSET $3
  `, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.BranchID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *Store) CreateClient(ctx context.Context, c Client) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO clients (branch_id, first_name, last_name, phone, email, notes)
    VALUES (NULLIF($1, ''),$2,$3,$4,$5,$6)
    RETURNING id
  `, c.BranchID, c.FirstName, c.LastName, c.Phone, c.Email, c.Notes).Scan(&id)
	return id, err
}

func (s *Store) BranchHours(ctx context.Context, branchID string) ([]BranchDayHours, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT day_of_week, closed, open_time, close_time
    FROM branch_hours
    WHERE branch_id = $1
  `, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hours []BranchDayHours
	for rows.Next() {
		var h BranchDayHours
		if err := rows.Scan(&h.DayOfWeek, &h.Closed, &h.Open, &h.Close); err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}
	return hours, rows.Err()
}

func (s *Store) SetBranchHours(ctx context.Context, branchID string, h BranchDayHours) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO branch_hours (branch_id, day_of_week, closed, open_time, close_time)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (branch_id, day_of_week)
    DO UPDATE SET closed = EXCLUDED.closed, open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time
  `, branchID, h.DayOfWeek, h.Closed, h.Open, h.Close)
	return err
}
