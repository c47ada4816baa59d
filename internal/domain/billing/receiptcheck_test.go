package billing

import (
	"strings"
	"testing"
	"time"
)

func TestReceiptCheck(t *testing.T) {
	paid := Bill{
		ID:            "b-1",
		ClientName:    "Ana Costa",
		Total:         120,
		Status:        StatusPaid,
		PaymentMethod: "card",
		ReceiptNumber: "SLN-0001",
		CreatedAt:     time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC),
	}
	rows := ReceiptCheck([]string{"SLN-0001", " SLN-0002 ", ""}, map[string]Bill{"SLN-0001": paid})

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (blank numbers dropped)", len(rows))
	}
	if !rows[0].Found || rows[0].Bill == nil {
		t.Fatal("SLN-0001 should reconcile")
	}
	if rows[1].Found || rows[1].ReceiptNumber != "SLN-0002" {
		t.Fatalf("SLN-0002 should be missing and trimmed, got %+v", rows[1])
	}
}

func TestReceiptCheckCSV(t *testing.T) {
	paid := Bill{
		ID:            "b-1",
		ClientName:    "Costa, Ana",
		Total:         120,
		Status:        StatusPaid,
		PaymentMethod: "card",
		CreatedAt:     time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC),
	}
	rows := ReceiptCheck([]string{"SLN-0001", "SLN-0002"}, map[string]Bill{"SLN-0001": paid})
	out := ReceiptCheckCSV(rows)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus two rows", len(lines))
	}
	if lines[0] != "Receipt Number,Status,Bill ID,Date,Client,Amount,Payment Method,Status" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "SLN-0001,found,b-1,2024-05-10,Costa  Ana,120.00,card,paid" {
		t.Fatalf("found row = %q", lines[1])
	}
	if lines[2] != "SLN-0002,missing,,,,,," {
		t.Fatalf("missing row = %q", lines[2])
	}
}
