package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/xspace-labs/xspace-backend/internal/model/catalog"
)

// ErrInvalidQuantity rejects an add with a non-positive quantity. Relative
// adjustments clamp instead of failing; see Adjust.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Line is one product position in a cart. Name and unit price are copied from
// the catalog when the product is added, so later catalog edits or deletions
// never change what a recorded receipt says.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Cart accumulates product selections for one open visit or hall checkout.
// It is plain data; the owning service serializes access to it.
type Cart struct {
	lines []Line
}

// Add merges qty units of the product into the cart. A product already in the
// cart gets its quantity increased instead of a second line.
func (c *Cart) Add(p catalog.Product, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity += qty
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  qty,
	})
	return nil
}

// Adjust shifts a line's quantity by delta, never below 1. Unknown product
// ids are ignored.
func (c *Cart) Adjust(productID string, delta int) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			quantity := c.lines[i].Quantity + delta
			if quantity < 1 {
				quantity = 1
			}
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	copied := make([]Line, len(c.lines))
	copy(copied, c.lines)
	return copied
}

// Subtotal sums unit price times quantity over the current lines.
func (c *Cart) Subtotal() decimal.Decimal {
	return Subtotal(c.lines)
}

// Clear empties the cart for the next visit or checkout.
func (c *Cart) Clear() {
	c.lines = nil
}

// Subtotal sums unit price times quantity over the given lines. An empty set
// of lines is worth zero.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
