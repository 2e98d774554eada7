package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"oilshop/pos/domain"
)

// LoadProducts ingests a name,barcode,price,quantity CSV into the products
// table, skipping rows whose barcode is already stocked. It returns the number
// of rows inserted. A missing file is not an error.
func LoadProducts(db *sqlx.DB, csvPath string) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("no product catalog at %s, skipping seed", csvPath)
			return 0, nil
		}
		return 0, fmt.Errorf("open product catalog: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	// Skip header
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("read product header: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("start product seed: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.Preparex(tx.Rebind(`SELECT COUNT(*) FROM products WHERE barcode = ?`))
	if err != nil {
		return 0, fmt.Errorf("prepare product lookup: %w", err)
	}
	defer exists.Close()
	insert, err := tx.Preparex(tx.Rebind(`INSERT INTO products (name, barcode, price, quantity) VALUES (?, ?, ?, ?)`))
	if err != nil {
		return 0, fmt.Errorf("prepare product insert: %w", err)
	}
	defer insert.Close()

	rows := 0
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read product row %d: %v", line, err)
			continue
		}
		if len(record) < 4 {
			log.Printf("skipping product row %d: expected 4 fields, got %d", line, len(record))
			continue
		}
		name := strings.TrimSpace(record[0])
		barcode := strings.TrimSpace(record[1])
		if name == "" || barcode == "" {
			continue
		}
		price, err := domain.ParsePrice(record[2])
		if err != nil {
			log.Printf("skipping product %s: %v", name, err)
			continue
		}
		quantity, err := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
		if err != nil {
			log.Printf("skipping product %s: invalid quantity %q", name, record[3])
			continue
		}

		var count int
		if err := exists.Get(&count, barcode); err != nil {
			return 0, fmt.Errorf("look up barcode %s: %w", barcode, err)
		}
		if count > 0 {
			continue
		}
		if _, err := insert.Exec(name, barcode, price, quantity); err != nil {
			log.Printf("unable to insert product %s: %v", name, err)
			continue
		}
		rows++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit product seed: %w", err)
	}
	log.Printf("seeded product catalog with %d rows", rows)
	return rows, nil
}

// UserStore is what EnsureOwner needs from the gateway.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (domain.User, error)
	CreateUser(ctx context.Context, username, passwordHash, role string) (int64, error)
}

// EnsureOwner creates the owner account on first start. An existing account
// keeps its password.
func EnsureOwner(ctx context.Context, users UserStore, username, password string) error {
	_, err := users.FindUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash owner password: %w", err)
	}
	if _, err := users.CreateUser(ctx, username, string(hashed), domain.RoleOwner); err != nil {
		return err
	}
	log.Printf("created owner account %q", username)
	return nil
}
