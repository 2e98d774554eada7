package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"oilshop/pos/domain"
	"oilshop/pos/internal/receipt"
)

// Recorder is the part of the gateway a checkout writes through.
type Recorder interface {
	InsertSale(ctx context.Context, total decimal.Decimal) (int64, error)
	InsertSaleItem(ctx context.Context, saleID, productID, quantity int64, price decimal.Decimal) error
}

// Result describes a committed sale.
type Result struct {
	SaleID  int64             `json:"sale_id"`
	Total   decimal.Decimal   `json:"total"`
	Lines   []domain.CartLine `json:"lines"`
	Receipt string            `json:"receipt"`
}

// Checkout persists sessions and renders their receipts.
type Checkout struct {
	recorder Recorder
	renderer receipt.Renderer
	now      func() time.Time
}

// NewCheckout constructs a Checkout.
func NewCheckout(recorder Recorder, renderer receipt.Renderer) *Checkout {
	return &Checkout{recorder: recorder, renderer: renderer, now: time.Now}
}

// WithClock replaces the clock stamped on receipts.
func (c *Checkout) WithClock(now func() time.Time) *Checkout {
	c.now = now
	return c
}

// Commit writes the sale header, then each line in cart order, then empties
// the session. Items are separate statements: if one fails, the header and any
// earlier items stay in the store and the session is kept for a retry.
func (c *Checkout) Commit(ctx context.Context, session *Session) (Result, error) {
	if session.Empty() {
		return Result{}, domain.ErrEmptyCart
	}

	lines := session.Lines()
	total := session.Total()

	saleID, err := c.recorder.InsertSale(ctx, total)
	if err != nil {
		return Result{}, fmt.Errorf("record sale: %w", err)
	}
	for i, line := range lines {
		if err := c.recorder.InsertSaleItem(ctx, saleID, line.ProductID, line.Quantity, line.Price); err != nil {
			return Result{SaleID: saleID}, fmt.Errorf("record item %d of sale %d: %w", i+1, saleID, err)
		}
	}

	text := c.renderer.Render(lines, total, c.now())
	session.Reset()

	return Result{SaleID: saleID, Total: total, Lines: lines, Receipt: text}, nil
}
