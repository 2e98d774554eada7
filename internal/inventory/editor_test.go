package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"oilshop/pos/domain"
	"oilshop/pos/internal/store/storetest"
)

type recordingRepo struct {
	updates []domain.Product
}

func (r *recordingRepo) ListProducts(context.Context) ([]domain.Product, error) { return nil, nil }

func (r *recordingRepo) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	for i := len(r.updates) - 1; i >= 0; i-- {
		if r.updates[i].ID == id {
			return r.updates[i], nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (r *recordingRepo) UpdateProduct(_ context.Context, p domain.Product) error {
	r.updates = append(r.updates, p)
	return nil
}

func TestApplyEditRejectsBadInput(t *testing.T) {
	cases := []struct {
		name, rawName, price, qty, field string
	}{
		{"non-numeric price", "Olive Oil 1L", "invalid", "10", "price"},
		{"sub-cent price", "Olive Oil 1L", "0.005", "10", "price"},
		{"negative price", "Olive Oil 1L", "-1", "10", "price"},
		{"non-numeric quantity", "Olive Oil 1L", "500", "ten", "quantity"},
		{"fractional quantity", "Olive Oil 1L", "500", "1.5", "quantity"},
		{"blank name", "   ", "500", "10", "name"},
	}
	for _, tc := range cases {
		repo := &recordingRepo{}
		_, err := NewEditor(repo).ApplyEdit(context.Background(), 1, tc.rawName, "123", tc.price, tc.qty)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError got %v", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: expected field %q got %q", tc.name, tc.field, verr.Field)
		}
		if len(repo.updates) != 0 {
			t.Fatalf("%s: storage must not be written", tc.name)
		}
	}
}

func TestApplyEditTrimsFields(t *testing.T) {
	repo := &recordingRepo{}
	p, err := NewEditor(repo).ApplyEdit(context.Background(), 3, " Ghee 1kg ", " 789 ", " 900.50 ", " 4 ")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if p.Name != "Ghee 1kg" || p.Barcode != "789" || !p.Price.Equal(decimal.RequireFromString("900.5")) || p.Quantity != 4 || p.ID != 3 {
		t.Fatalf("unexpected product %+v", p)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("expected one update got %d", len(repo.updates))
	}
}

func TestApplyEditRoundTrip(t *testing.T) {
	st := storetest.Open(t)
	seeded := storetest.Seed(t, st,
		storetest.OliveOil(),
		domain.Product{Name: "Ghee 1kg", Barcode: "789", Price: decimal.NewFromInt(900), Quantity: 2},
	)
	editor := NewEditor(st)
	ctx := context.Background()

	if _, err := editor.ApplyEdit(ctx, seeded[0].ID, "Olive Oil 1L", "123", "invalid", "10"); err == nil {
		t.Fatal("expected validation error")
	}
	before, err := editor.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !before[0].Price.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("failed edit must not write, got %+v", before[0])
	}

	stored, err := editor.ApplyEdit(ctx, seeded[0].ID, "Olive Oil 1L Tin", "321", "525.75", "12")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if stored.ID != seeded[0].ID || !stored.Price.Equal(decimal.RequireFromString("525.75")) {
		t.Fatalf("edit must return the stored row: %+v", stored)
	}
	after, err := editor.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := after[0]
	if got.Name != "Olive Oil 1L Tin" || got.Barcode != "321" || !got.Price.Equal(decimal.RequireFromString("525.75")) || got.Quantity != 12 {
		t.Fatalf("edit not reflected: %+v", got)
	}
	if after[1].Name != "Ghee 1kg" || after[1].Barcode != "789" || after[1].Quantity != 2 || !after[1].Price.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("other rows must be unchanged: %+v", after[1])
	}

	if _, err := editor.ApplyEdit(ctx, 999, "Ghost", "0", "1", "1"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound got %v", err)
	}
}
