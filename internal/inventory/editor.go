// Package inventory applies operator edits to product records.
package inventory

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"oilshop/pos/domain"
)

// Repository is the slice of the gateway the editor needs.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) error
}

type Editor struct {
	repo Repository
}

func NewEditor(repo Repository) *Editor {
	return &Editor{repo: repo}
}

// List returns every product for the inventory table.
func (e *Editor) List(ctx context.Context) ([]domain.Product, error) {
	return e.repo.ListProducts(ctx)
}

// ApplyEdit parses the raw form fields and overwrites product id. Nothing is
// written unless every field parses. The returned product is read back from
// storage; callers re-list to refresh their view.
func (e *Editor) ApplyEdit(ctx context.Context, id int64, rawName, rawBarcode, rawPrice, rawQuantity string) (domain.Product, error) {
	product, err := Parse(id, rawName, rawBarcode, rawPrice, rawQuantity)
	if err != nil {
		return domain.Product{}, err
	}
	if err := e.repo.UpdateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return e.repo.GetProduct(ctx, id)
}

// Parse validates raw form values into a product.
func Parse(id int64, rawName, rawBarcode, rawPrice, rawQuantity string) (domain.Product, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return domain.Product{}, &domain.ValidationError{Field: "name", Value: rawName, Err: errors.New("must not be empty")}
	}
	price, err := domain.ParsePrice(rawPrice)
	if err != nil {
		return domain.Product{}, err
	}
	quantity, err := strconv.ParseInt(strings.TrimSpace(rawQuantity), 10, 64)
	if err != nil {
		return domain.Product{}, &domain.ValidationError{Field: "quantity", Value: rawQuantity, Err: err}
	}
	return domain.Product{
		ID:       id,
		Name:     name,
		Barcode:  strings.TrimSpace(rawBarcode),
		Price:    price,
		Quantity: quantity,
	}, nil
}
