package inventory

import (
	"context"
	"fmt"

	"salon/internal/domain/notifications"
)

type Service struct {
	Store  *Store
	Notify *notifications.Service
}

func NewService(store *Store, notify *notifications.Service) *Service {
	return &Service{Store: store, Notify: notify}
}

func (s *Service) Products(ctx context.Context, branchID string) ([]Product, error) {
	return s.Store.ListProducts(ctx, branchID)
}

func (s *Service) LowStock(ctx context.Context, branchID string) ([]Product, error) {
	return s.Store.LowStock(ctx, branchID)
}

func (s *Service) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if p.Stock < 0 || p.UnitPrice < 0 {
		return Product{}, ErrBadQuantity
	}
	return s.Store.CreateProduct(ctx, p)
}

// Move applies a stock movement. The store enforces the never-below-zero
// invariant inside its transaction; this layer only adds the low-stock
// warning for whoever manages inventory.
func (s *Service) Move(ctx context.Context, m StockMovement, managerUserID string) (StockMovement, error) {
	recorded, next, err := s.Store.RecordMovement(ctx, m)
	if err != nil {
		return StockMovement{}, err
	}

	if s.Notify != nil && managerUserID != "" {
		p, err := s.Store.Product(ctx, m.ProductID)
		if err == nil && BelowReorder(p) {
			body := fmt.Sprintf("%s is down to %d (reorder at %d).", p.Name, next, p.ReorderLevel)
			s.Notify.Create(ctx, managerUserID, "inventory", "Low stock", body)
		}
	}
	return recorded, nil
}

func (s *Service) Movements(ctx context.Context, productID string, limit int) ([]StockMovement, error) {
	return s.Store.Movements(ctx, productID, limit)
}

func (s *Service) Orders(ctx context.Context, branchID, status string) ([]PurchaseOrder, error) {
	return s.Store.ListOrders(ctx, branchID, status)
}

func (s *Service) CreateOrder(ctx context.Context, po PurchaseOrder) (PurchaseOrder, error) {
	if len(po.Items) == 0 {
		return PurchaseOrder{}, ErrNoOrderItems
	}
	for _, item := range po.Items {
		if item.Quantity <= 0 || item.UnitCost < 0 {
			return PurchaseOrder{}, ErrBadQuantity
		}
	}
	po.Status = OrderDraft
	return s.Store.CreateOrder(ctx, po)
}

func (s *Service) PlaceOrder(ctx context.Context, orderID string) (PurchaseOrder, error) {
	return s.transition(ctx, orderID, OrderOrdered)
}

func (s *Service) CancelOrder(ctx context.Context, orderID string) (PurchaseOrder, error) {
	return s.transition(ctx, orderID, OrderCancelled)
}

// ReceiveOrder marks the order received and books a received movement for
// every line, which is what actually increments stock.
func (s *Service) ReceiveOrder(ctx context.Context, orderID, actorUserID string) (PurchaseOrder, error) {
	po, err := s.transition(ctx, orderID, OrderReceived)
	if err != nil {
		return PurchaseOrder{}, err
	}
	for _, item := range po.Items {
		_, _, err := s.Store.RecordMovement(ctx, StockMovement{
			ProductID: item.ProductID,
			Kind:      MovementReceived,
			Quantity:  item.Quantity,
			Reference: "po:" + po.ID,
			CreatedBy: actorUserID,
		})
		if err != nil {
			return PurchaseOrder{}, fmt.Errorf("book receipt for product %s: %w", item.ProductID, err)
		}
	}
	return po, nil
}

func (s *Service) transition(ctx context.Context, orderID, next string) (PurchaseOrder, error) {
	po, err := s.Store.Order(ctx, orderID)
	if err != nil {
		return PurchaseOrder{}, err
	}
	if err := OrderTransition(po.Status, next); err != nil {
		return PurchaseOrder{}, err
	}
	if err := s.Store.UpdateOrderStatus(ctx, orderID, next); err != nil {
		return PurchaseOrder{}, err
	}
	po.Status = next
	return po, nil
}
