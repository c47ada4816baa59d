package inventory

import "time"

const (
	MovementReceived   = "received"
	MovementUsed       = "used"
	MovementSold       = "sold"
	MovementAdjustment = "adjustment"
)

const (
	OrderDraft     = "draft"
	OrderOrdered   = "ordered"
	OrderReceived  = "received"
	OrderCancelled = "cancelled"
)

type Product struct {
	ID           string    `json:"id"`
	BranchID     string    `json:"branchId"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	UnitPrice    float64   `json:"unitPrice"`
	Stock        int       `json:"stock"`
	ReorderLevel int       `json:"reorderLevel"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type StockMovement struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Kind      string    `json:"kind"`
	Quantity  int       `json:"quantity"`
	Reference string    `json:"reference,omitempty"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type PurchaseOrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"orderId"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unitCost"`
}

type PurchaseOrder struct {
	ID         string              `json:"id"`
	BranchID   string              `json:"branchId"`
	Supplier   string              `json:"supplier"`
	Status     string              `json:"status"`
	Items      []PurchaseOrderItem `json:"items"`
	CreatedBy  string              `json:"createdBy,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	ReceivedAt *time.Time          `json:"receivedAt,omitempty"`
}
