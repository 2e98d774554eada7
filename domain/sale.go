package domain

import "github.com/shopspring/decimal"

type Sale struct {
	ID    int64           `db:"id" json:"id"`
	Date  string          `db:"date" json:"date"`
	Time  string          `db:"time" json:"time"`
	Total decimal.Decimal `db:"total" json:"total"`
}

// SaleItem keeps the price charged at checkout, independent of later product edits.
type SaleItem struct {
	ID        int64           `db:"id" json:"id"`
	SaleID    int64           `db:"sale_id" json:"sale_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
}

// CartLine is a product held in an open sale session. It is never persisted.
type CartLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// MonthlySaleRow is one sold item joined with its sale and product.
type MonthlySaleRow struct {
	Date     string          `db:"date" json:"date"`
	Time     string          `db:"time" json:"time"`
	Name     string          `db:"name" json:"name"`
	Quantity int64           `db:"quantity" json:"quantity"`
	Price    decimal.Decimal `db:"price" json:"price"`
}
