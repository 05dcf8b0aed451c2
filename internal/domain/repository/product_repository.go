package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/entity"
)

// ErrProductNotFound is returned when no product matches the lookup.
var ErrProductNotFound = errors.New("product not found")

// ListOptions selects one page of products ordered by ascending id.
type ListOptions struct {
	Offset int
	Limit  int
}

// ProductRepository defines product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error

	List(ctx context.Context, opts ListOptions) ([]*entity.Product, error)

	FindByID(ctx context.Context, id int64) (*entity.Product, error)

	// FindByIDForUpdate locks the row for the rest of the enclosing transaction.
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error)

	// UpdateQuantity sets the quantity and returns ErrProductNotFound when no row changed.
	UpdateQuantity(ctx context.Context, id int64, quantity int64) error
}
