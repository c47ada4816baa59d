package billing

import "time"

const (
	StatusUnpaid   = "unpaid"
	StatusPaid     = "paid"
	StatusVoided   = "voided"
	StatusRefunded = "refunded"
)

var PaymentMethods = []string{"cash", "card", "transfer"}

type BillItem struct {
	ID          string  `json:"id"`
	BillID      string  `json:"billId"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type Bill struct {
	ID            string     `json:"id"`
	BranchID      string     `json:"branchId"`
	ClientID      string     `json:"clientId"`
	ClientName    string     `json:"clientName,omitempty"`
	AppointmentID string     `json:"appointmentId,omitempty"`
	Items         []BillItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount"`
	TaxRate       float64    `json:"taxRate"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	ReceiptNumber string     `json:"receiptNumber,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}
