package sale

import (
	"testing"

	"github.com/shopspring/decimal"

	"oilshop/pos/domain"
)

func TestAddLineAccumulatesPrices(t *testing.T) {
	s := NewSession()
	prices := []string{"500", "180.50", "0.99", "1200"}
	want := decimal.Zero
	for i, p := range prices {
		price := decimal.RequireFromString(p)
		s.AddLine(domain.Product{ID: int64(i + 1), Name: "item", Price: price}, 1)
		want = want.Add(price)
		if s.Len() != i+1 {
			t.Fatalf("after %d adds got %d lines", i+1, s.Len())
		}
		if !s.Total().Equal(want) {
			t.Fatalf("after %d adds total %s want %s", i+1, s.Total(), want)
		}
	}
}

func TestAddLineTotalIgnoresQuantity(t *testing.T) {
	s := NewSession()
	line := s.AddLine(domain.Product{ID: 1, Name: "Olive Oil 1L", Price: decimal.NewFromInt(500)}, 3)
	if line.Quantity != 3 {
		t.Fatalf("quantity should be kept on the line, got %d", line.Quantity)
	}
	if !s.Total().Equal(decimal.NewFromInt(500)) {
		t.Fatalf("total must grow by unit price only, got %s", s.Total())
	}
}

func TestAddLineDefaultsQuantity(t *testing.T) {
	s := NewSession()
	if line := s.AddLine(domain.Product{ID: 1, Price: decimal.NewFromInt(1)}, 0); line.Quantity != 1 {
		t.Fatalf("expected quantity 1 got %d", line.Quantity)
	}
}

func TestResetAndLinesCopy(t *testing.T) {
	s := NewSession()
	s.AddLine(domain.Product{ID: 1, Name: "Olive Oil 1L", Price: decimal.NewFromInt(500)}, 1)

	lines := s.Lines()
	lines[0].Name = "changed"
	if s.Lines()[0].Name != "Olive Oil 1L" {
		t.Fatal("Lines must return a copy")
	}

	s.Reset()
	if !s.Empty() || !s.Total().IsZero() {
		t.Fatalf("reset left %d lines and total %s", s.Len(), s.Total())
	}
}
