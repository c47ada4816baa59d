package booking

import (
	"context"
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

const appointmentColumns = `id, branch_id, client_id, stylist_id, service_id, date, start_time, end_time, status, COALESCE(notes, ''), created_at`

func (s *Store) Get(ctx context.Context, appointmentID string) (Appointment, error) {
	var a Appointment
	err := s.DB.QueryRow(ctx,
		"SELECT "+appointmentColumns+" FROM appointments WHERE id = $1", appointmentID,
	).Scan(&a.ID, &a.BranchID, &a.ClientID, &a.StylistID, &a.ServiceID, &a.Date, &a.StartTime, &a.EndTime, &a.Status, &a.Notes, &a.CreatedAt)
	return a, err
}

func (s *Store) ListForBranch(ctx context.Context, branchID string, date time.Time) ([]Appointment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+appointmentColumns+`
    FROM appointments
    WHERE branch_id = $1 AND date = $2
    ORDER BY start_time
  `, branchID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// ForStylistOnDate returns every appointment for the stylist on the date,
// cancelled ones included; the caller decides which block a new booking.
func (s *Store) ForStylistOnDate(ctx context.Context, stylistID string, date time.Time) ([]Appointment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+appointmentColumns+`
    FROM appointments
    WHERE stylist_id = $1 AND date = $2
    ORDER BY start_time
  `, stylistID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]Appointment, error) {
	var appts []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.BranchID, &a.ClientID, &a.StylistID, &a.ServiceID, &a.Date, &a.StartTime, &a.EndTime, &a.Status, &a.Notes, &a.CreatedAt); err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func (s *Store) Create(ctx context.Context, a Appointment) (Appointment, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO appointments (branch_id, client_id, stylist_id, service_id, date, start_time, end_time, status, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id, created_at
  `, a.BranchID, a.ClientID, a.StylistID, a.ServiceID, a.Date, a.StartTime, a.EndTime, a.Status, a.Notes).Scan(&a.ID, &a.CreatedAt)
	return a, err
}

func (s *Store) UpdateStatus(ctx context.Context, appointmentID, status string) error {
	_, err := s.DB.Exec(ctx,
		"UPDATE appointments SET status = $1 WHERE id = $2", status, appointmentID)
	return err
}

func (s *Store) ListServices(ctx context.Context, branchID string) ([]SalonService, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, branch_id, name, duration_minutes, price, is_active
    FROM services
    WHERE branch_id = $1 AND is_active = true
    ORDER BY name
  `, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []SalonService
	for rows.Next() {
		var sv SalonService
		if err := rows.Scan(&sv.ID, &sv.BranchID, &sv.Name, &sv.DurationMin, &sv.Price, &sv.IsActive); err != nil {
			return nil, err
		}
		services = append(services, sv)
	}
	return services, rows.Err()
}

func (s *Store) CreateService(ctx context.Context, sv SalonService) (SalonService, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO services (branch_id, name, duration_minutes, price, is_active)
    VALUES ($1,$2,$3,$4,true)
    RETURNING id, is_active
  `, sv.BranchID, sv.Name, sv.DurationMin, sv.Price).Scan(&sv.ID, &sv.IsActive)
	return sv, err
}

func (s *Store) Service(ctx context.Context, serviceID string) (SalonService, error) {
	var sv SalonService
	err := s.DB.QueryRow(ctx,
		"SELECT id, branch_id, name, duration_minutes, price, is_active FROM services WHERE id = $1", serviceID,
	).Scan(&sv.ID, &sv.BranchID, &sv.Name, &sv.DurationMin, &sv.Price, &sv.IsActive)
	return sv, err
}

func (s *Store) ClientUserID(ctx context.Context, clientID string) (string, error) {
	var userID string
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(user_id, '') FROM clients WHERE id = $1", clientID).Scan(&userID)
	return userID, err
}
