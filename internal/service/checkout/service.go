package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	cartmodel "github.com/xspace-labs/xspace-backend/internal/model/cart"
	"github.com/xspace-labs/xspace-backend/internal/model/catalog"
	"github.com/xspace-labs/xspace-backend/internal/service/billing"
)

var (
	ErrUnknownProduct   = errors.New("unknown product")
	ErrNoCheckout       = errors.New("no checkout in progress")
	ErrCheckoutActive   = errors.New("a checkout is already in progress")
	ErrCheckoutFinished = errors.New("checkout already finished")
	ErrEndBeforeStart   = errors.New("finish instant is before the checkout start")
)

// Checkout is the hall billing view: products accumulate in the shared cart,
// Start stamps the hall entry time, Finish prices the stay with the hall
// charge and the product subtotal reported separately.
type Checkout struct {
	StartedAt       time.Time        `json:"startedAt"`
	EndedAt         *time.Time       `json:"endedAt,omitempty"`
	Lines           []cartmodel.Line `json:"lines"`
	Hours           int64            `json:"hours"`
	HallCharge      decimal.Decimal  `json:"hallCharge"`
	ProductSubtotal decimal.Decimal  `json:"productSubtotal"`
	Total           decimal.Decimal  `json:"total"`
}

// Service runs the hall checkout flow from the products page. One checkout
// runs at a time; until it finishes, its lines are the live cart.
type Service struct {
	mu       sync.Mutex
	products catalog.Store
	rate     decimal.Decimal
	now      func() time.Time

	cart    cartmodel.Cart
	current *state
}

type state struct {
	startedAt time.Time
	done      *receipt
}

type receipt struct {
	endedAt time.Time
	lines   []cartmodel.Line
	quote   billing.Quote
}

// NewService bootstraps the in-memory checkout service. rate is the per-hour
// hall charge; now may be nil to use the wall clock.
func NewService(products catalog.Store, rate decimal.Decimal, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		products: products,
		rate:     rate,
		now:      now,
	}
}

// AddProduct puts one unit of a catalog product into the hall cart, merging
// with an existing line for the same product.
func (s *Service) AddProduct(_ context.Context, productID string) ([]cartmodel.Line, error) {
	product, ok := s.products.FindByID(productID)
	if !ok {
		return nil, ErrUnknownProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Add(product, 1); err != nil {
		return nil, err
	}
	return s.cart.Lines(), nil
}

// Cart returns the live hall cart and its product subtotal.
func (s *Service) Cart(_ context.Context) ([]cartmodel.Line, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines(), s.cart.Subtotal()
}

// Start begins a checkout at the current instant. Only one checkout runs at a
// time; a second Start while one is unfinished fails with ErrCheckoutActive.
func (s *Service) Start(_ context.Context) (Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.done == nil {
		return Checkout{}, ErrCheckoutActive
	}

	s.current = &state{startedAt: s.now().UTC()}
	return s.view(), nil
}

// Finish ends the running checkout: it captures the end instant, prices the
// cart and the elapsed hall time, freezes the receipt and clears the cart for
// the next checkout. Finishing twice fails with ErrCheckoutFinished.
func (s *Service) Finish(_ context.Context) (Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Checkout{}, ErrNoCheckout
	}
	if s.current.done != nil {
		return Checkout{}, ErrCheckoutFinished
	}

	end := s.now().UTC()
	if end.Before(s.current.startedAt) {
		return Checkout{}, ErrEndBeforeStart
	}

	lines := s.cart.Lines()
	s.current.done = &receipt{
		endedAt: end,
		lines:   lines,
		quote:   billing.Compute(lines, s.current.startedAt, end, s.rate),
	}
	s.cart.Clear()

	return s.view(), nil
}

// Current returns the running or last finished checkout, if any.
func (s *Service) Current(_ context.Context) (Checkout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Checkout{}, false
	}
	return s.view(), true
}

// view assembles the public checkout from the internal state. Until the
// checkout finishes its lines are the live cart and the total is the product
// subtotal alone, exactly what the console shows before the hall time is
// known. Callers must hold s.mu.
func (s *Service) view() Checkout {
	st := s.current
	if st.done == nil {
		subtotal := s.cart.Subtotal()
		return Checkout{
			StartedAt:       st.startedAt,
			Lines:           s.cart.Lines(),
			HallCharge:      decimal.Zero,
			ProductSubtotal: subtotal,
			Total:           subtotal,
		}
	}

	end := st.done.endedAt
	return Checkout{
		StartedAt:       st.startedAt,
		EndedAt:         &end,
		Lines:           append([]cartmodel.Line(nil), st.done.lines...),
		Hours:           st.done.quote.Hours,
		HallCharge:      st.done.quote.TimeCharge,
		ProductSubtotal: st.done.quote.ProductSubtotal,
		Total:           st.done.quote.Total,
	}
}
