package billing

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

const billColumns = `b.id, b.branch_id, b.client_id, COALESCE(c.first_name || ' ' || c.last_name, ''),
  COALESCE(b.appointment_id::text, ''), b.subtotal, b.discount, b.tax_rate, b.tax, b.total,
  b.status, COALESCE(b.payment_method, ''), COALESCE(b.receipt_number, ''), b.created_at, b.paid_at`

const billFrom = ` FROM bills b LEFT JOIN clients c ON c.id = b.client_id `

func (s *Store) Get(ctx context.Context, billID string) (Bill, error) {
	var b Bill
	err := s.DB.QueryRow(ctx,
		"SELECT "+billColumns+billFrom+"WHERE b.id = $1", billID,
	).Scan(&b.ID, &b.BranchID, &b.ClientID, &b.ClientName, &b.AppointmentID,
		&b.Subtotal, &b.Discount, &b.TaxRate, &b.Tax, &b.Total,
		&b.Status, &b.PaymentMethod, &b.ReceiptNumber, &b.CreatedAt, &b.PaidAt)
	if err != nil {
		return Bill{}, err
	}
	items, err := s.items(ctx, b.ID)
	if err != nil {
		return Bill{}, err
	}
	b.Items = items
	return b, nil
}

func (s *Store) items(ctx context.Context, billID string) ([]BillItem, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT id, bill_id, description, quantity, unit_price FROM bill_items WHERE bill_id = $1 ORDER BY id", billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BillItem
	for rows.Next() {
		var item BillItem
		if err := rows.Scan(&item.ID, &item.BillID, &item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) ListForBranch(ctx context.Context, branchID, status string) ([]Bill, error) {
	query := "SELECT " + billColumns + billFrom + "WHERE b.branch_id = $1"
	args := []any{branchID}
	if status != "" {
		args = append(args, status)
		query += " AND b.status = $2"
	}
	query += " ORDER BY b.created_at DESC LIMIT 200"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		var b Bill
		if err := rows.Scan(&b.ID, &b.BranchID, &b.ClientID, &b.ClientName, &b.AppointmentID,
			&b.Subtotal, &b.Discount, &b.TaxRate, &b.Tax, &b.Total,
			&b.Status, &b.PaymentMethod, &b.ReceiptNumber, &b.CreatedAt, &b.PaidAt); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// Create stores the bill and its items in one transaction.
func (s *Store) Create(ctx context.Context, b Bill) (Bill, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Bill{}, err
	}
	defer tx.Rollback(ctx)

	var apptID any
	if b.AppointmentID != "" {
		apptID = b.AppointmentID
	}
	err = tx.QueryRow(ctx, `
    INSERT INTO bills (branch_id, client_id, appointment_id, subtotal, discount, tax_rate, tax, total, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id, created_at
  `, b.BranchID, b.ClientID, apptID, b.Subtotal, b.Discount, b.TaxRate, b.Tax, b.Total, b.Status).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return Bill{}, err
	}

	for i := range b.Items {
		item := &b.Items[i]
		item.BillID = b.ID
		err = tx.QueryRow(ctx, `
      INSERT INTO bill_items (bill_id, description, quantity, unit_price)
      VALUES ($1,$2,$3,$4)
      RETURNING id
    `, item.BillID, item.Description, item.Quantity, item.UnitPrice).Scan(&item.ID)
		if err != nil {
			return Bill{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Bill{}, err
	}
	return b, nil
}

func (s *Store) MarkPaid(ctx context.Context, billID, method, receiptNumber string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE bills
    SET status = $1, payment_method = $2, receipt_number = $3, paid_at = now()
    WHERE id = $4
  `, StatusPaid, method, receiptNumber, billID)
	return err
}

func (s *Store) UpdateStatus(ctx context.Context, billID, status string) error {
	_, err := s.DB.Exec(ctx, "UPDATE bills SET status = $1 WHERE id = $2", status, billID)
	return err
}

// ByReceiptNumbers fetches bills for the given receipt numbers, keyed by
// receipt number. Items are not loaded; reconciliation only needs totals.
func (s *Store) ByReceiptNumbers(ctx context.Context, branchID string, numbers []string) (map[string]Bill, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+billColumns+billFrom+"WHERE b.branch_id = $1 AND b.receipt_number = ANY($2)", branchID, numbers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]Bill)
	for rows.Next() {
		var b Bill
		if err := rows.Scan(&b.ID, &b.BranchID, &b.ClientID, &b.ClientName, &b.AppointmentID,
			&b.Subtotal, &b.Discount, &b.TaxRate, &b.Tax, &b.Total,
			&b.Status, &b.PaymentMethod, &b.ReceiptNumber, &b.CreatedAt, &b.PaidAt); err != nil {
			return nil, err
		}
		found[b.ReceiptNumber] = b
	}
	return found, rows.Err()
}

func (s *Store) BranchName(ctx context.Context, branchID string) (string, error) {
	var name string
	err := s.DB.QueryRow(ctx, "SELECT name FROM branches WHERE id = $1", branchID).Scan(&name)
	return name, err
}
