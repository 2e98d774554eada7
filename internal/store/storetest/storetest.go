// Package storetest opens throwaway shop databases for tests.
package storetest

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"oilshop/pos/domain"
	"oilshop/pos/internal/database"
	"oilshop/pos/internal/migrations"
	"oilshop/pos/internal/store"
)

// Open returns a migrated SQLite store backed by a file in t.TempDir().
func Open(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "pos.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

// Seed inserts products and returns them with their generated ids.
func Seed(t *testing.T, s *store.Store, products ...domain.Product) []domain.Product {
	t.Helper()
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		err := s.DB().QueryRowx(s.DB().Rebind(`INSERT INTO products (name, barcode, price, quantity) VALUES (?, ?, ?, ?) RETURNING id`),
			p.Name, p.Barcode, p.Price, p.Quantity).Scan(&p.ID)
		if err != nil {
			t.Fatalf("seed %s: %v", p.Name, err)
		}
		out = append(out, p)
	}
	return out
}

// OliveOil is the product most tests scan.
func OliveOil() domain.Product {
	return domain.Product{Name: "Olive Oil 1L", Barcode: "123", Price: decimal.NewFromInt(500), Quantity: 10}
}
