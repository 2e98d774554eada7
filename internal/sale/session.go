// Package sale holds the open cart of a terminal and turns it into stored sales.
package sale

import (
	"github.com/shopspring/decimal"

	"oilshop/pos/domain"
)

// Session is the cart being rung up. It belongs to a single terminal and is
// not safe for concurrent use.
type Session struct {
	lines []domain.CartLine
	total decimal.Decimal
}

// NewSession returns an empty cart.
func NewSession() *Session {
	return &Session{total: decimal.Zero}
}

// AddLine appends product to the cart. The running total grows by the unit
// price only; quantity is recorded on the line but does not scale the total.
// Every caller currently adds one unit at a time.
func (s *Session) AddLine(product domain.Product, quantity int64) domain.CartLine {
	if quantity < 1 {
		quantity = 1
	}
	line := domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  quantity,
		Price:     product.Price,
	}
	s.lines = append(s.lines, line)
	s.total = s.total.Add(product.Price)
	return line
}

// Reset empties the cart.
func (s *Session) Reset() {
	s.lines = nil
	s.total = decimal.Zero
}

// Lines returns a copy of the cart in scan order.
func (s *Session) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Session) Total() decimal.Decimal { return s.total }

func (s *Session) Len() int { return len(s.lines) }

func (s *Session) Empty() bool { return len(s.lines) == 0 }
