// Package store is the persistence gateway of the shop. Each call acquires its
// own connection for the duration of one statement and releases it before
// returning; no transaction spans two calls.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"oilshop/pos/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Store bundles the database handle and the clock used to stamp sales.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// New constructs a Store.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// WithClock replaces the clock used by InsertSale.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// DB exposes the underlying handle for bootstrap code.
func (s *Store) DB() *sqlx.DB { return s.db }

// withConn runs fn on a dedicated connection and always releases it.
func (s *Store) withConn(ctx context.Context, op string, fn func(conn *sqlx.Conn) error) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return &domain.StorageError{Op: op, Err: err}
	}
	defer conn.Close()

	if err := fn(conn); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return &domain.StorageError{Op: op, Err: err}
	}
	return nil
}

// FindProductByBarcode returns the first product whose barcode matches exactly.
func (s *Store) FindProductByBarcode(ctx context.Context, barcode string) (domain.Product, error) {
	var product domain.Product
	err := s.withConn(ctx, "find product by barcode", func(conn *sqlx.Conn) error {
		err := conn.GetContext(ctx, &product, conn.Rebind(`SELECT id, name, barcode, price, quantity FROM products WHERE barcode = ? ORDER BY id LIMIT 1`), barcode)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return err
	})
	return product, err
}

// GetProduct loads a product by id.
func (s *Store) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	err := s.withConn(ctx, "get product", func(conn *sqlx.Conn) error {
		err := conn.GetContext(ctx, &product, conn.Rebind(`SELECT id, name, barcode, price, quantity FROM products WHERE id = ?`), id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return err
	})
	return product, err
}

// ListProducts returns every product in insertion order.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := s.withConn(ctx, "list products", func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &products, `SELECT id, name, barcode, price, quantity FROM products ORDER BY id`)
	})
	return products, err
}

// UpdateProduct overwrites every column of the product identified by p.ID.
func (s *Store) UpdateProduct(ctx context.Context, p domain.Product) error {
	return s.withConn(ctx, "update product", func(conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, conn.Rebind(`UPDATE products SET name = ?, barcode = ?, price = ?, quantity = ? WHERE id = ?`),
			p.Name, p.Barcode, p.Price, p.Quantity, p.ID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrProductNotFound
		}
		return nil
	})
}

// InsertSale records a sale header stamped with the store's local date and time.
func (s *Store) InsertSale(ctx context.Context, total decimal.Decimal) (int64, error) {
	now := s.now()
	var id int64
	err := s.withConn(ctx, "insert sale", func(conn *sqlx.Conn) error {
		return conn.QueryRowxContext(ctx, conn.Rebind(`INSERT INTO sales (date, time, total) VALUES (?, ?, ?) RETURNING id`),
			now.Format(dateLayout), now.Format(timeLayout), total).Scan(&id)
	})
	return id, err
}

// InsertSaleItem appends one line to an already committed sale.
func (s *Store) InsertSaleItem(ctx context.Context, saleID, productID, quantity int64, price decimal.Decimal) error {
	return s.withConn(ctx, "insert sale item", func(conn *sqlx.Conn) error {
		_, err := conn.ExecContext(ctx, conn.Rebind(`INSERT INTO sale_items (sale_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`),
			saleID, productID, quantity, price)
		return err
	})
}

// QueryMonthlySales lists sold items whose sale date falls in yearMonth (YYYY-MM).
func (s *Store) QueryMonthlySales(ctx context.Context, yearMonth string) ([]domain.MonthlySaleRow, error) {
	rows := []domain.MonthlySaleRow{}
	err := s.withConn(ctx, "query monthly sales", func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, conn.Rebind(`SELECT s.date, s.time, p.name, si.quantity, si.price
                FROM sale_items si
                JOIN sales s ON si.sale_id = s.id
                JOIN products p ON si.product_id = p.id
                WHERE substr(s.date, 1, 7) = ?
                ORDER BY s.date, s.time, si.id`), yearMonth)
	})
	return rows, err
}
