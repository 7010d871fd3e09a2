package visit_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xspace-labs/xspace-backend/internal/model/cart"
	"github.com/xspace-labs/xspace-backend/internal/model/catalog"
	"github.com/xspace-labs/xspace-backend/internal/service/visit"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func setup(t *testing.T, rate int64) (*visit.Service, *catalog.MemoryStore, *clock) {
	t.Helper()
	store := catalog.NewMemoryStore(catalog.Seed())
	clk := &clock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	return visit.NewService(store, decimal.NewFromInt(rate), clk.Now), store, clk
}

func TestOpenRequiresClientName(t *testing.T) {
	svc, _, _ := setup(t, 10)

	_, err := svc.Open(context.Background(), "")
	require.ErrorIs(t, err, visit.ErrClientNameRequired)
}

func TestOpenSetsStartAndActive(t *testing.T) {
	svc, _, clk := setup(t, 10)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)

	assert.Equal(t, clk.now, opened.StartedAt)
	assert.False(t, opened.Closed())

	active, ok := svc.Active(ctx)
	require.True(t, ok)
	assert.Equal(t, opened.ID, active.ID)
}

func TestAddProductUnknown(t *testing.T) {
	svc, _, _ := setup(t, 10)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, opened.ID, "missing", 1)
	require.ErrorIs(t, err, visit.ErrUnknownProduct)
}

func TestAddProductInvalidQuantity(t *testing.T) {
	svc, _, _ := setup(t, 10)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, opened.ID, "1", 0)
	require.ErrorIs(t, err, cart.ErrInvalidQuantity)

	lines, err := svc.Lines(ctx, opened.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAdjustQuantityClampsAtOne(t *testing.T) {
	svc, _, _ := setup(t, 10)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, opened.ID, "1", 2)
	require.NoError(t, err)

	lines, err := svc.AdjustQuantity(ctx, opened.ID, "1", -100)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestCloseComputesReceipt(t *testing.T) {
	svc, _, clk := setup(t, 10)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, opened.ID, "1", 2) // coffee, 5 each
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, opened.ID, "2", 1) // tea, 3
	require.NoError(t, err)

	clk.now = clk.now.Add(90 * time.Minute) // 09:00 -> 10:30

	closed, err := svc.Close(ctx, opened.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.Receipt)

	receipt := closed.Receipt
	assert.Equal(t, int64(2), receipt.Hours)
	assert.True(t, receipt.ProductSubtotal.Equal(decimal.NewFromInt(13)), "subtotal = %s", receipt.ProductSubtotal)
	assert.True(t, receipt.TimeCharge.Equal(decimal.NewFromInt(20)), "time charge = %s", receipt.TimeCharge)
	assert.True(t, receipt.Total.Equal(decimal.NewFromInt(33)), "total = %s", receipt.Total)
	assert.Len(t, receipt.Lines, 2)

	_, ok := svc.Active(ctx)
	assert.False(t, ok, "closing must reset the active visit")
}

func TestCloseIsSingleUse(t *testing.T) {
	svc, _, clk := setup(t, 10)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)

	clk.now = clk.now.Add(time.Hour)
	closed, err := svc.Close(ctx, opened.ID)
	require.NoError(t, err)

	clk.now = clk.now.Add(time.Hour)
	_, err = svc.Close(ctx, opened.ID)
	require.ErrorIs(t, err, visit.ErrVisitClosed)

	got, err := svc.Get(ctx, opened.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Receipt)
	assert.Equal(t, closed.Receipt.EndedAt, got.Receipt.EndedAt, "failed close must not touch the receipt")
	assert.True(t, closed.Receipt.Total.Equal(got.Receipt.Total))
}

func TestCloseRejectsEndBeforeStart(t *testing.T) {
	svc, _, clk := setup(t, 10)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)

	clk.now = clk.now.Add(-time.Minute)
	_, err = svc.Close(ctx, opened.ID)
	require.ErrorIs(t, err, visit.ErrEndBeforeStart)

	got, err := svc.Get(ctx, opened.ID)
	require.NoError(t, err)
	assert.False(t, got.Closed(), "rejected close must leave the visit open")

	clk.now = clk.now.Add(2 * time.Minute)
	_, err = svc.Close(ctx, opened.ID)
	require.NoError(t, err)
}

func TestZeroLengthVisitWithEmptyCart(t *testing.T) {
	svc, _, _ := setup(t, 50)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)

	closed, err := svc.Close(ctx, opened.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.Receipt)
	assert.True(t, closed.Receipt.Total.IsZero(), "total = %s", closed.Receipt.Total)
}

func TestCatalogDeleteKeepsClosedTotal(t *testing.T) {
	svc, store, clk := setup(t, 10)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, opened.ID, "1", 2)
	require.NoError(t, err)

	clk.now = clk.now.Add(30 * time.Minute)
	closed, err := svc.Close(ctx, opened.ID)
	require.NoError(t, err)
	want := closed.Receipt.Total

	require.True(t, store.Delete("1"))

	got, err := svc.Get(ctx, opened.ID)
	require.NoError(t, err)
	assert.True(t, got.Receipt.Total.Equal(want), "recorded total changed after catalog delete")
	assert.Equal(t, "Coffee", got.Receipt.Lines[0].Name)
}

func TestMutationsRejectedAfterClose(t *testing.T) {
	svc, _, _ := setup(t, 10)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)
	_, err = svc.Close(ctx, opened.ID)
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, opened.ID, "1", 1)
	require.ErrorIs(t, err, visit.ErrVisitClosed)

	_, err = svc.AdjustQuantity(ctx, opened.ID, "1", 1)
	require.ErrorIs(t, err, visit.ErrVisitClosed)
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	svc, _, _ := setup(t, 10)
	ctx := context.Background()

	first, err := svc.Open(ctx, "Ahmed")
	require.NoError(t, err)
	second, err := svc.Open(ctx, "Mona")
	require.NoError(t, err)

	visits := svc.List(ctx)
	require.Len(t, visits, 2)
	assert.Equal(t, first.ID, visits[0].ID)
	assert.Equal(t, second.ID, visits[1].ID)
}
