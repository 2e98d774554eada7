// Package report builds the monthly sales listing shown to the shop owner.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"oilshop/pos/domain"
)

// ErrNoData means no item was sold in the requested month.
var ErrNoData = errors.New("no sales recorded this month")

const monthLayout = "2006-01"

// Source is the query the report reads from.
type Source interface {
	QueryMonthlySales(ctx context.Context, yearMonth string) ([]domain.MonthlySaleRow, error)
}

// Report is a month of sold items. Total sums the row prices and is never stored.
type Report struct {
	Month    string                  `json:"month"`
	Title    string                  `json:"title"`
	Rows     []domain.MonthlySaleRow `json:"rows"`
	Total    decimal.Decimal         `json:"total"`
	Currency string                  `json:"currency"`
}

type Service struct {
	source   Source
	currency string
}

func NewService(source Source, currency string) *Service {
	return &Service{source: source, currency: currency}
}

// Monthly reports the calendar month containing now.
func (s *Service) Monthly(ctx context.Context, now time.Time) (*Report, error) {
	return s.MonthlyFor(ctx, now.Format(monthLayout))
}

// MonthlyFor reports a month given as YYYY-MM.
func (s *Service) MonthlyFor(ctx context.Context, yearMonth string) (*Report, error) {
	month, err := time.Parse(monthLayout, strings.TrimSpace(yearMonth))
	if err != nil {
		return nil, &domain.ValidationError{Field: "month", Value: yearMonth, Err: err}
	}
	key := month.Format(monthLayout)

	rows, err := s.source.QueryMonthlySales(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("monthly report %s: %w", key, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Price)
	}
	return &Report{
		Month:    key,
		Title:    month.Format("January 2006"),
		Rows:     rows,
		Total:    total,
		Currency: s.currency,
	}, nil
}

// Text renders the report the way the counter display shows it.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Monthly Report - %s\n\n", r.Title)
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "%s %s | %s (x%d) - %s %s\n", row.Date, row.Time, row.Name, row.Quantity, r.Currency, row.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal Sales: %s %s", r.Currency, r.Total.StringFixed(2))
	return b.String()
}
