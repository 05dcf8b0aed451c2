package usecase

import (
	"context"

	"inventory/internal/domain/entity"
)

// CreateProductInput carries an already decoded product. Quantity and Price
// are nil when the client omitted them or sent a non-numeric value.
type CreateProductInput struct {
	Name        string
	Type        string
	SKU         string
	ImageURL    string
	Description string
	Quantity    *int64
	Price       *float64
}

// ListProductsInput selects a 1-based page.
type ListProductsInput struct {
	Page int
}

// UpdateQuantityInput sets the absolute stock level of one product.
type UpdateQuantityInput struct {
	ProductID int64
	Quantity  int64
}

// ProductUsecase defines product operations available to authenticated callers.
type ProductUsecase interface {
	Create(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	List(ctx context.Context, input *ListProductsInput) ([]*entity.Product, error)
	UpdateQuantity(ctx context.Context, input *UpdateQuantityInput) (*entity.Product, error)
	// Label renders the product's QR label as PNG.
	Label(ctx context.Context, productID int64) ([]byte, error)
}
