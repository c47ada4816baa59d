package billing

import (
	"errors"
	"math"
)

var (
	ErrNoItems        = errors.New("a bill needs at least one item")
	ErrNegativeAmount = errors.New("amounts must not be negative")
	ErrExcessDiscount = errors.New("discount exceeds the subtotal")
	ErrUnknownMethod  = errors.New("unknown payment method")
	ErrNotPayable     = errors.New("only unpaid bills can be paid")
	ErrNotVoidable    = errors.New("only unpaid bills can be voided")
	ErrNotRefundable  = errors.New("only paid bills can be refunded")
)

// Totalize fills Subtotal, Tax and Total from the items, discount and tax
// rate. The discount applies before tax; every amount is rounded to cents.
func Totalize(b *Bill) error {
	if len(b.Items) == 0 {
		return ErrNoItems
	}
	if b.Discount < 0 || b.TaxRate < 0 {
		return ErrNegativeAmount
	}

	subtotal := 0.0
	for _, item := range b.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return ErrNegativeAmount
		}
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	if b.Discount > subtotal {
		return ErrExcessDiscount
	}

	b.Subtotal = roundCents(subtotal)
	taxable := subtotal - b.Discount
	b.Tax = roundCents(taxable * b.TaxRate)
	b.Total = roundCents(taxable + b.Tax)
	return nil
}

func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
