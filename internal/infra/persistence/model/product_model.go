package model

import "time"

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(255);not null"`
	Type        string  `gorm:"type:varchar(100);not null"`
	SKU         string  `gorm:"column:sku;type:varchar(100);uniqueIndex;not null"`
	ImageURL    string  `gorm:"column:image_url;type:text;not null"`
	Description string  `gorm:"type:text;not null"`
	Quantity    int64   `gorm:"not null;default:0;check:quantity >= 0"`
	Price       float64 `gorm:"type:numeric(12,2);not null;check:price >= 0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// All returns every model managed by this service, in creation order.
func All() []any {
	return []any{
		&UserModel{},
		&ProductModel{},
	}
}
