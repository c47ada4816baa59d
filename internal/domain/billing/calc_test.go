package billing

import (
	"errors"
	"testing"
)

func TestTotalize(t *testing.T) {
	b := Bill{
		Items: []BillItem{
			{Description: "Cut & finish", Quantity: 1, UnitPrice: 45.00},
			{Description: "Colour treatment", Quantity: 2, UnitPrice: 30.50},
		},
		Discount: 6.00,
		TaxRate:  0.20,
	}
	if err := Totalize(&b); err != nil {
		t.Fatalf("totalize: %v", err)
	}
	if b.Subtotal != 106.00 {
		t.Fatalf("subtotal = %v, want 106.00", b.Subtotal)
	}
	if b.Tax != 20.00 {
		t.Fatalf("tax = %v, want 20.00", b.Tax)
	}
	if b.Total != 120.00 {
		t.Fatalf("total = %v, want 120.00", b.Total)
	}
}

func TestTotalizeRounding(t *testing.T) {
	b := Bill{
		Items:   []BillItem{{Description: "Fringe trim", Quantity: 3, UnitPrice: 3.33}},
		TaxRate: 0.15,
	}
	if err := Totalize(&b); err != nil {
		t.Fatalf("totalize: %v", err)
	}
	if b.Subtotal != 9.99 {
		t.Fatalf("subtotal = %v, want 9.99", b.Subtotal)
	}
	if b.Tax != 1.50 {
		t.Fatalf("tax = %v, want 1.50", b.Tax)
	}
	if b.Total != 11.49 {
		t.Fatalf("total = %v, want 11.49", b.Total)
	}
}

func TestTotalizeRejections(t *testing.T) {
	if err := Totalize(&Bill{}); !errors.Is(err, ErrNoItems) {
		t.Fatalf("empty bill: got %v", err)
	}

	b := Bill{Items: []BillItem{{Quantity: 1, UnitPrice: 10}}, Discount: 15}
	if err := Totalize(&b); !errors.Is(err, ErrExcessDiscount) {
		t.Fatalf("oversized discount: got %v", err)
	}

	b = Bill{Items: []BillItem{{Quantity: 0, UnitPrice: 10}}}
	if err := Totalize(&b); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("zero quantity: got %v", err)
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range PaymentMethods {
		if !ValidPaymentMethod(m) {
			t.Fatalf("%s should be valid", m)
		}
	}
	if ValidPaymentMethod("barter") {
		t.Fatal("barter should not be valid")
	}
}
