package entity

import "time"

// Product is a single stock-keeping unit tracked by the inventory.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	SKU         string    `json:"sku"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
