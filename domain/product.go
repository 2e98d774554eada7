package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       int64           `db:"id" json:"id"`
	Name     string          `db:"name" json:"name"`
	Barcode  string          `db:"barcode" json:"barcode"`
	Price    decimal.Decimal `db:"price" json:"price"`
	Quantity int64           `db:"quantity" json:"quantity"`
}

// PriceScale is the number of decimal places a stored price may carry.
const PriceScale = 2

// ParsePrice reads a shelf price. Negative values and values with more than
// PriceScale significant decimals are rejected.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, &ValidationError{Field: "price", Value: raw, Err: err}
	}
	if price.IsNegative() {
		return decimal.Decimal{}, &ValidationError{Field: "price", Value: raw, Err: errors.New("must not be negative")}
	}
	if !price.Equal(price.Truncate(PriceScale)) {
		return decimal.Decimal{}, &ValidationError{Field: "price", Value: raw, Err: errors.New("at most 2 decimal places")}
	}
	return price, nil
}
