// Package billing prices a stay: the product lines accumulated in a cart
// plus an hourly charge for the time between the start and end instants.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xspace-labs/xspace-backend/internal/model/cart"
)

// Quote breaks a charge into its addends so a receipt can show the time
// charge and the product subtotal separately.
type Quote struct {
	ProductSubtotal decimal.Decimal `json:"productSubtotal"`
	Hours           int64           `json:"hours"`
	TimeCharge      decimal.Decimal `json:"timeCharge"`
	Total           decimal.Decimal `json:"total"`
}

// BillableHours returns the number of hours charged between start and end.
// Partial hours round up: a zero-length stay is free, anything longer pays
// for at least one full hour. Callers must guarantee end is not before start.
func BillableHours(start, end time.Time) int64 {
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return 0
	}
	hours := int64(elapsed / time.Hour)
	if elapsed%time.Hour != 0 {
		hours++
	}
	return hours
}

// Compute prices a frozen set of cart lines against the [start, end) interval
// at the given hourly rate.
func Compute(lines []cart.Line, start, end time.Time, hourlyRate decimal.Decimal) Quote {
	subtotal := cart.Subtotal(lines)
	hours := BillableHours(start, end)
	timeCharge := hourlyRate.Mul(decimal.NewFromInt(hours))

	return Quote{
		ProductSubtotal: subtotal,
		Hours:           hours,
		TimeCharge:      timeCharge,
		Total:           subtotal.Add(timeCharge),
	}
}
