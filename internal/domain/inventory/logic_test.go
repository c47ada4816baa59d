package inventory

import (
	"errors"
	"testing"
)

func TestApplyMovement(t *testing.T) {
	next, err := ApplyMovement(10, MovementReceived, 5)
	if err != nil || next != 15 {
		t.Fatalf("receive: got %d, %v", next, err)
	}

	next, err = ApplyMovement(10, MovementSold, 10)
	if err != nil || next != 0 {
		t.Fatalf("sell to zero: got %d, %v", next, err)
	}

	if _, err := ApplyMovement(10, MovementUsed, 11); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("overdraw must fail, got %v", err)
	}
	if _, err := ApplyMovement(10, MovementSold, 0); !errors.Is(err, ErrBadQuantity) {
		t.Fatalf("zero quantity must fail, got %v", err)
	}
	if _, err := ApplyMovement(10, "teleported", 1); !errors.Is(err, ErrUnknownMovement) {
		t.Fatalf("unknown kind must fail, got %v", err)
	}
}

func TestApplyMovementAdjustment(t *testing.T) {
	next, err := ApplyMovement(10, MovementAdjustment, -4)
	if err != nil || next != 6 {
		t.Fatalf("negative adjustment: got %d, %v", next, err)
	}
	if _, err := ApplyMovement(3, MovementAdjustment, -4); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("adjustment below zero must fail, got %v", err)
	}
}

func TestOrderTransition(t *testing.T) {
	if err := OrderTransition(OrderDraft, OrderOrdered); err != nil {
		t.Fatalf("draft -> ordered: %v", err)
	}
	if err := OrderTransition(OrderOrdered, OrderReceived); err != nil {
		t.Fatalf("ordered -> received: %v", err)
	}
	if err := OrderTransition(OrderDraft, OrderReceived); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("draft cannot be received directly, got %v", err)
	}
	if err := OrderTransition(OrderReceived, OrderCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("received orders are final, got %v", err)
	}
}

func TestBelowReorder(t *testing.T) {
	if !BelowReorder(Product{Stock: 2, ReorderLevel: 5}) {
		t.Fatal("stock at or under reorder level should flag")
	}
	if BelowReorder(Product{Stock: 2, ReorderLevel: 0}) {
		t.Fatal("zero reorder level disables the flag")
	}
}
