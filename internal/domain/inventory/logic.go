package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrBadQuantity       = errors.New("quantity must be positive")
	ErrUnknownMovement   = errors.New("unknown movement kind")
	ErrInvalidTransition = errors.New("invalid order transition")
	ErrNoOrderItems      = errors.New("a purchase order needs at least one item")
)

// ApplyMovement returns the new stock level after the movement, refusing any
// change that would take stock below zero. Adjustments carry a signed
// quantity; every other kind is positive and the kind fixes the direction.
func ApplyMovement(stock int, kind string, quantity int) (int, error) {
	switch kind {
	case MovementReceived:
		if quantity <= 0 {
			return 0, ErrBadQuantity
		}
		return stock + quantity, nil
	case MovementUsed, MovementSold:
		if quantity <= 0 {
			return 0, ErrBadQuantity
		}
		if quantity > stock {
			return 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientStock, stock, quantity)
		}
		return stock - quantity, nil
	case MovementAdjustment:
		next := stock + quantity
		if next < 0 {
			return 0, fmt.Errorf("%w: adjustment of %d from %d", ErrInsufficientStock, quantity, stock)
		}
		return next, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownMovement, kind)
	}
}

// OrderTransition validates a purchase order status change: draft orders can
// be placed or cancelled, placed orders received or cancelled.
func OrderTransition(current, next string) error {
	allowed := map[string][]string{
		OrderDraft:   {OrderOrdered, OrderCancelled},
		OrderOrdered: {OrderReceived, OrderCancelled},
	}
	for _, n := range allowed[current] {
		if n == next {
			return nil
		}
	}
	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, next)
}

// BelowReorder reports whether the product needs restocking.
func BelowReorder(p Product) bool {
	return p.ReorderLevel > 0 && p.Stock <= p.ReorderLevel
}
