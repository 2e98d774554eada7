package migrations

import (
	"path/filepath"
	"testing"

	"oilshop/pos/internal/database"
)

func TestRunIsIdempotent(t *testing.T) {
	db, err := database.Connect(filepath.Join(t.TempDir(), "pos.db"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := Run(db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO products (name, barcode, price, quantity) VALUES ('Olive Oil 1L', '123', 500, 10)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := Run(db); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("existing rows must survive a rerun, got %d", count)
	}
	for _, table := range []string{"sales", "sale_items", "users"} {
		if _, err := db.Exec(`SELECT COUNT(*) FROM ` + table); err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}
