package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	Store         *Store
	ReceiptPrefix string
}

func NewService(store *Store, receiptPrefix string) *Service {
	return &Service{Store: store, ReceiptPrefix: receiptPrefix}
}

func (s *Service) List(ctx context.Context, branchID, status string) ([]Bill, error) {
	return s.Store.ListForBranch(ctx, branchID, status)
}

func (s *Service) Get(ctx context.Context, billID string) (Bill, error) {
	return s.Store.Get(ctx, billID)
}

// Create totalizes and stores an unpaid bill.
func (s *Service) Create(ctx context.Context, b Bill) (Bill, error) {
	if err := Totalize(&b); err != nil {
		return Bill{}, err
	}
	b.Status = StatusUnpaid
	return s.Store.Create(ctx, b)
}

// Pay settles an unpaid bill, assigns a receipt number and renders the
// receipt PDF. A failed render does not undo the payment; the receipt can be
// regenerated from the stored bill.
func (s *Service) Pay(ctx context.Context, billID, method string) (Bill, string, error) {
	if !ValidPaymentMethod(method) {
		return Bill{}, "", fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	b, err := s.Store.Get(ctx, billID)
	if err != nil {
		return Bill{}, "", err
	}
	if b.Status != StatusUnpaid {
		return Bill{}, "", ErrNotPayable
	}

	receipt := s.newReceiptNumber()
	if err := s.Store.MarkPaid(ctx, billID, method, receipt); err != nil {
		return Bill{}, "", err
	}
	b.Status = StatusPaid
	b.PaymentMethod = method
	b.ReceiptNumber = receipt

	branchName, err := s.Store.BranchName(ctx, b.BranchID)
	if err != nil {
		branchName = b.BranchID
	}
	pdfPath, err := ReceiptPDF(b, branchName)
	if err != nil {
		return b, "", fmt.Errorf("receipt pdf: %w", err)
	}
	return b, pdfPath, nil
}

func (s *Service) Void(ctx context.Context, billID string) (Bill, error) {
	b, err := s.Store.Get(ctx, billID)
	if err != nil {
		return Bill{}, err
	}
	if b.Status != StatusUnpaid {
		return Bill{}, ErrNotVoidable
	}
	if err := s.Store.UpdateStatus(ctx, billID, StatusVoided); err != nil {
		return Bill{}, err
	}
	b.Status = StatusVoided
	return b, nil
}

func (s *Service) Refund(ctx context.Context, billID string) (Bill, error) {
	b, err := s.Store.Get(ctx, billID)
	if err != nil {
		return Bill{}, err
	}
	if b.Status != StatusPaid {
		return Bill{}, ErrNotRefundable
	}
	if err := s.Store.UpdateStatus(ctx, billID, StatusRefunded); err != nil {
		return Bill{}, err
	}
	b.Status = StatusRefunded
	return b, nil
}

// CheckReceipts reconciles receipt numbers against stored bills and returns
// both the structured rows and the CSV export body.
func (s *Service) CheckReceipts(ctx context.Context, branchID string, numbers []string) ([]ReceiptCheckRow, string, error) {
	trimmed := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if n = strings.TrimSpace(n); n != "" {
			trimmed = append(trimmed, n)
		}
	}
	found := map[string]Bill{}
	if len(trimmed) > 0 {
		var err error
		found, err = s.Store.ByReceiptNumbers(ctx, branchID, trimmed)
		if err != nil {
			return nil, "", err
		}
	}
	rows := ReceiptCheck(trimmed, found)
	return rows, ReceiptCheckCSV(rows), nil
}

// newReceiptNumber derives a short receipt code from a fresh UUID, prefixed
// per deployment.
func (s *Service) newReceiptNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", s.ReceiptPrefix, id[:10])
}
