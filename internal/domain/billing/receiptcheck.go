package billing

import (
	"fmt"
	"strings"
)

// ReceiptCheckRow is one reconciled receipt number.
type ReceiptCheckRow struct {
	ReceiptNumber string `json:"receiptNumber"`
	Found         bool   `json:"found"`
	Bill          *Bill  `json:"bill,omitempty"`
}

// receiptCheckHeader is the fixed export header. Status appears twice: the
// first column is the reconciliation result, the last the bill's own status.
const receiptCheckHeader = "Receipt Number,Status,Bill ID,Date,Client,Amount,Payment Method,Status"

// ReceiptCheck reconciles the requested receipt numbers against the bills
// found for them, in request order. Numbers with no bill come back as missing.
func ReceiptCheck(numbers []string, found map[string]Bill) []ReceiptCheckRow {
	rows := make([]ReceiptCheckRow, 0, len(numbers))
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if b, ok := found[n]; ok {
			bill := b
			rows = append(rows, ReceiptCheckRow{ReceiptNumber: n, Found: true, Bill: &bill})
		} else {
			rows = append(rows, ReceiptCheckRow{ReceiptNumber: n})
		}
	}
	return rows
}

// ReceiptCheckCSV renders the reconciliation as CSV. Fields are joined with
// commas and never quoted; free-text fields are sanitized by stripping commas
// instead.
func ReceiptCheckCSV(rows []ReceiptCheckRow) string {
	var sb strings.Builder
	sb.WriteString(receiptCheckHeader)
	sb.WriteString("\n")
	for _, row := range rows {
		if !row.Found || row.Bill == nil {
			sb.WriteString(strings.Join([]string{stripCommas(row.ReceiptNumber), "missing", "", "", "", "", "", ""}, ","))
			sb.WriteString("\n")
			continue
		}
		b := row.Bill
		sb.WriteString(strings.Join([]string{
			stripCommas(row.ReceiptNumber),
			"found",
			b.ID,
			b.CreatedAt.Format("2006-01-02"),
			stripCommas(b.ClientName),
			fmt.Sprintf("%.2f", b.Total),
			b.PaymentMethod,
			b.Status,
		}, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}
