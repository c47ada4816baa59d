package lending

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const lendingColumns = `id, stylist_id, from_branch_id, to_branch_id, start_date, end_date, status, notes, COALESCE(decided_by, ''), created_at`

func (s *Store) Get(ctx context.Context, lendingID string) (Lending, error) {
	var l Lending
	err := s.DB.QueryRow(ctx,
		"SELECT "+lendingColumns+" FROM lendings WHERE id = $1", lendingID,
	).Scan(&l.ID, &l.StylistID, &l.FromBranchID, &l.ToBranchID, &l.StartDate, &l.EndDate, &l.Status, &l.Notes, &l.DecidedBy, &l.CreatedAt)
	return l, err
}

// ListForBranch returns lendings touching the branch in either direction.
func (s *Store) ListForBranch(ctx context.Context, branchID, status string) ([]Lending, error) {
	query := "SELECT " + lendingColumns + " FROM lendings WHERE (from_branch_id = $1 OR to_branch_id = $1)"
	args := []any{branchID}
	if status != "" {
		args = append(args, status)
		query += " AND status = $2"
	}
	query += " ORDER BY start_date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lendings []Lending
	for rows.Next() {
		var l Lending
		if err := rows.Scan(&l.ID, &l.StylistID, &l.FromBranchID, &l.ToBranchID, &l.StartDate, &l.EndDate, &l.Status, &l.Notes, &l.DecidedBy, &l.CreatedAt); err != nil {
			return nil, err
		}
		lendings = append(lendings, l)
	}
	return lendings, rows.Err()
}

// ActiveForStylist returns approved lendings overlapping the window, used to
// detect double-lending before a new request is stored.
func (s *Store) ActiveForStylist(ctx context.Context, stylistID string, from, to time.Time) ([]Lending, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+lendingColumns+`
    FROM lendings
    WHERE stylist_id = $1 AND status IN ($2,$3)
      AND start_date <= $5 AND end_date >= $4
  `, stylistID, StatusPending, StatusApproved, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lendings []Lending
	for rows.Next() {
		var l Lending
		if err := rows.Scan(&l.ID, &l.StylistID, &l.FromBranchID, &l.ToBranchID, &l.StartDate, &l.EndDate, &l.Status, &l.Notes, &l.DecidedBy, &l.CreatedAt); err != nil {
			return nil, err
		}
		lendings = append(lendings, l)
	}
	return lendings, rows.Err()
}

func (s *Store) Create(ctx context.Context, l Lending) (Lending, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO lendings (stylist_id, from_branch_id, to_branch_id, start_date, end_date, status, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, created_at
  `, l.StylistID, l.FromBranchID, l.ToBranchID, l.StartDate, l.EndDate, l.Status, l.Notes).Scan(&l.ID, &l.CreatedAt)
	return l, err
}

func (s *Store) UpdateStatus(ctx context.Context, lendingID, status, decidedBy string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE lendings
    SET status = $1, decided_by = $2, decided_at = now()
    WHERE id = $3
  `, status, decidedBy, lendingID)
	return err
}

func (s *Store) StylistUserID(ctx context.Context, stylistID string) (string, error) {
	var userID string
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(user_id, '') FROM staff WHERE id = $1", stylistID).Scan(&userID)
	return userID, err
}
