package visit

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xspace-labs/xspace-backend/internal/model/cart"
)

// Receipt holds everything that exists only once a visit is closed. Grouping
// the end instant and the computed charges in one optional value keeps a
// half-closed visit unrepresentable.
type Receipt struct {
	EndedAt         time.Time       `json:"endedAt"`
	Lines           []cart.Line     `json:"lines"`
	Hours           int64           `json:"hours"`
	ProductSubtotal decimal.Decimal `json:"productSubtotal"`
	TimeCharge      decimal.Decimal `json:"timeCharge"`
	Total           decimal.Decimal `json:"total"`
}

// Visit is one billed stay of a client. Receipt is nil while the visit is
// still open.
type Visit struct {
	ID         string    `json:"id"`
	ClientName string    `json:"clientName"`
	StartedAt  time.Time `json:"startedAt"`
	Receipt    *Receipt  `json:"receipt,omitempty"`
}

// Closed reports whether the visit has been billed.
func (v Visit) Closed() bool { return v.Receipt != nil }
