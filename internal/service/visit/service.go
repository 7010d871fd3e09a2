package visit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartmodel "github.com/xspace-labs/xspace-backend/internal/model/cart"
	"github.com/xspace-labs/xspace-backend/internal/model/catalog"
	visitmodel "github.com/xspace-labs/xspace-backend/internal/model/visit"
	"github.com/xspace-labs/xspace-backend/internal/service/billing"
)

var (
	ErrClientNameRequired = errors.New("client name is required")
	ErrVisitNotFound      = errors.New("visit not found")
	ErrVisitClosed        = errors.New("visit already closed")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrEndBeforeStart     = errors.New("close instant is before the visit start")
)

// Service tracks every visit of the current process run. Each visit owns its
// cart, so the cart of one open visit can never be touched through another.
type Service struct {
	mu       sync.RWMutex
	products catalog.Store
	rate     decimal.Decimal
	now      func() time.Time

	visits   map[string]*record
	order    []string
	activeID string
}

type record struct {
	visit visitmodel.Visit
	cart  cartmodel.Cart
}

// NewService bootstraps the in-memory visit service. rate is the per-hour
// visit charge; now may be nil to use the wall clock, and is injected so
// billing tests stay deterministic.
func NewService(products catalog.Store, rate decimal.Decimal, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		products: products,
		rate:     rate,
		now:      now,
		visits:   make(map[string]*record),
	}
}

// Open starts a visit for the named client. The start instant is captured
// once, here, and never mutated afterward. The new visit becomes the active
// one the console is pointing at.
func (s *Service) Open(_ context.Context, clientName string) (visitmodel.Visit, error) {
	if clientName == "" {
		return visitmodel.Visit{}, ErrClientNameRequired
	}

	v := visitmodel.Visit{
		ID:         uuid.NewString(),
		ClientName: clientName,
		StartedAt:  s.now().UTC(),
	}

	s.mu.Lock()
	s.visits[v.ID] = &record{visit: v}
	s.order = append(s.order, v.ID)
	s.activeID = v.ID
	s.mu.Unlock()

	return v, nil
}

// AddProduct merges qty units of a catalog product into the visit's cart.
// The product's name and price are copied in, so deleting it from the catalog
// later cannot rewrite this visit's bill.
func (s *Service) AddProduct(_ context.Context, visitID, productID string, qty int) ([]cartmodel.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.visits[visitID]
	if !ok {
		return nil, ErrVisitNotFound
	}
	if rec.visit.Closed() {
		return nil, ErrVisitClosed
	}

	product, ok := s.products.FindByID(productID)
	if !ok {
		return nil, ErrUnknownProduct
	}

	if err := rec.cart.Add(product, qty); err != nil {
		return nil, err
	}
	return rec.cart.Lines(), nil
}

// AdjustQuantity shifts a cart line's quantity by delta, clamped at 1. A
// product with no line in the cart is silently ignored.
func (s *Service) AdjustQuantity(_ context.Context, visitID, productID string, delta int) ([]cartmodel.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.visits[visitID]
	if !ok {
		return nil, ErrVisitNotFound
	}
	if rec.visit.Closed() {
		return nil, ErrVisitClosed
	}

	rec.cart.Adjust(productID, delta)
	return rec.cart.Lines(), nil
}

// Close ends an open visit: it captures the end instant, prices the cart plus
// the elapsed time, freezes the result into the visit's receipt and clears
// the cart. A visit can be closed exactly once; closing it again fails with
// ErrVisitClosed and changes nothing.
func (s *Service) Close(_ context.Context, visitID string) (visitmodel.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.visits[visitID]
	if !ok {
		return visitmodel.Visit{}, ErrVisitNotFound
	}
	if rec.visit.Closed() {
		return visitmodel.Visit{}, ErrVisitClosed
	}

	end := s.now().UTC()
	if end.Before(rec.visit.StartedAt) {
		return visitmodel.Visit{}, ErrEndBeforeStart
	}

	lines := rec.cart.Lines()
	quote := billing.Compute(lines, rec.visit.StartedAt, end, s.rate)

	rec.visit.Receipt = &visitmodel.Receipt{
		EndedAt:         end,
		Lines:           lines,
		Hours:           quote.Hours,
		ProductSubtotal: quote.ProductSubtotal,
		TimeCharge:      quote.TimeCharge,
		Total:           quote.Total,
	}
	rec.cart.Clear()
	if s.activeID == visitID {
		s.activeID = ""
	}

	return rec.visit, nil
}

// Get retrieves a visit by identifier.
func (s *Service) Get(_ context.Context, visitID string) (visitmodel.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.visits[visitID]
	if !ok {
		return visitmodel.Visit{}, ErrVisitNotFound
	}
	return rec.visit, nil
}

// Lines returns the current cart contents of a visit. For a closed visit
// this is the frozen receipt snapshot.
func (s *Service) Lines(_ context.Context, visitID string) ([]cartmodel.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.visits[visitID]
	if !ok {
		return nil, ErrVisitNotFound
	}
	if rec.visit.Closed() {
		return append([]cartmodel.Line(nil), rec.visit.Receipt.Lines...), nil
	}
	return rec.cart.Lines(), nil
}

// List returns every visit of this process run in registration order.
func (s *Service) List(_ context.Context) []visitmodel.Visit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visits := make([]visitmodel.Visit, 0, len(s.order))
	for _, id := range s.order {
		visits = append(visits, s.visits[id].visit)
	}
	return visits
}

// Active returns the visit the console is currently pointing at, if any.
// Closing a visit resets the pointer.
func (s *Service) Active(_ context.Context) (visitmodel.Visit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeID == "" {
		return visitmodel.Visit{}, false
	}
	return s.visits[s.activeID].visit, true
}
