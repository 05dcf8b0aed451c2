package qrcode

import (
	"encoding/json"
	"log/slog"

	"inventory/config"
	"inventory/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize = 256
	labelType   = "product_label"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// LabelData is the JSON payload encoded in a product label.
type LabelData struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Type      string `json:"type"`
}

// NewQRCodeServiceFromConfig builds the service from the qrcode config section.
func NewQRCodeServiceFromConfig(cfg *config.Config, logger *slog.Logger) service.QRCodeService {
	if cfg == nil || cfg.QRCode == nil {
		logger.Info("QR code config not set, using defaults", slog.Int("size", defaultSize))

		return NewQRCodeService(defaultSize, "M")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	if size <= 0 {
		size = defaultSize
	}

	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateProductLabel renders the product's label payload as a PNG.
func (s *qrcodeService) GenerateProductLabel(productID int64, sku string) ([]byte, error) {
	jsonData, err := json.Marshal(LabelData{
		ProductID: productID,
		SKU:       sku,
		Type:      labelType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal label data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseProductLabel decodes a scanned label payload.
func (s *qrcodeService) ParseProductLabel(qrData string) (int64, string, error) {
	var data LabelData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return 0, "", errors.Wrap(err, "failed to unmarshal label data")
	}

	if data.Type != labelType {
		return 0, "", errors.Errorf("invalid label type: %s", data.Type)
	}
	if data.ProductID <= 0 {
		return 0, "", errors.Errorf("invalid product id: %d", data.ProductID)
	}

	return data.ProductID, data.SKU, nil
}
