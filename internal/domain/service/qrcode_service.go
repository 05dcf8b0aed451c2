package service

// QRCodeService renders and parses product label codes.
type QRCodeService interface {
	// GenerateProductLabel returns a PNG QR code identifying the product.
	GenerateProductLabel(productID int64, sku string) ([]byte, error)

	// ParseProductLabel decodes label content back to the product id and SKU.
	ParseProductLabel(qrData string) (productID int64, sku string, err error)
}
