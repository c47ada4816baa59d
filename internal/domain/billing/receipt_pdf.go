package billing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptPDF renders a paid bill as an A4 receipt under storage/receipts and
// returns the file path.
func ReceiptPDF(b Bill, branchName string) (string, error) {
	if err := os.MkdirAll("storage/receipts", 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join("storage/receipts", b.ReceiptNumber+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Receipt")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Receipt: %s", b.ReceiptNumber))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Branch: %s", branchName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Client: %s", b.ClientName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", b.CreatedAt.Format("2006-01-02")))
	pdf.Ln(10)

	for _, item := range b.Items {
		pdf.Cell(0, 8, fmt.Sprintf("%s  x%d  %.2f", item.Description, item.Quantity, float64(item.Quantity)*item.UnitPrice))
		pdf.Ln(7)
	}
	pdf.Ln(3)
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: %.2f", b.Subtotal))
	pdf.Ln(7)
	if b.Discount > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Discount: -%.2f", b.Discount))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Tax: %.2f", b.Tax))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f (%s)", b.Total, b.PaymentMethod))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
