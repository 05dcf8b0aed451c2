package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"inventory/internal/delivery/http/response"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxSafeInteger is the largest integer a JSON number decoded as float64 holds exactly.
const maxSafeInteger = 1<<53 - 1

// ProductHandler serves the authenticated product endpoints.
type ProductHandler struct {
	uc usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// CreateProductRequest accepts quantity and price either as JSON numbers or
// as numeric strings.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	SKU         string `json:"sku" validate:"required"`
	ImageURL    string `json:"image_url" validate:"required"`
	Description string `json:"description" validate:"required"`
	Quantity    any    `json:"quantity"`
	Price       any    `json:"price"`
}

// UpdateQuantityRequest requires quantity to be a JSON number.
type UpdateQuantityRequest struct {
	Quantity any `json:"quantity"`
}

// ProductResponse wraps a single product with an acknowledgement.
type ProductResponse struct {
	Message   string          `json:"message"`
	Product   *entity.Product `json:"product"`
	ProductID int64           `json:"product_id,omitempty"`
}

// Create handles POST /products.
func (h *ProductHandler) Create(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrValidationFailed
	}

	product, err := h.uc.Create(c.Request().Context(), &usecase.CreateProductInput{
		Name:        req.Name,
		Type:        req.Type,
		SKU:         req.SKU,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Quantity:    parseIntField(req.Quantity),
		Price:       parseFloatField(req.Price),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, ProductResponse{
		Message:   "Product added successfully",
		Product:   product,
		ProductID: product.ID,
	})
}

// List handles GET /products?page=N. An unparsable page means the first page.
func (h *ProductHandler) List(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}

	products, err := h.uc.List(c.Request().Context(), &usecase.ListProductsInput{Page: page})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, products)
}

// UpdateQuantity handles PUT /products/:id/quantity.
func (h *ProductHandler) UpdateQuantity(c echo.Context) error {
	productID, err := parseProductID(c)
	if err != nil {
		return err
	}

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidQuantity
	}

	quantity, ok := req.Quantity.(float64)
	if !ok || quantity < 0 || quantity != math.Trunc(quantity) || quantity > maxSafeInteger {
		return domainerrors.ErrInvalidQuantity
	}

	product, err := h.uc.UpdateQuantity(c.Request().Context(), &usecase.UpdateQuantityInput{
		ProductID: productID,
		Quantity:  int64(quantity),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, ProductResponse{
		Message: "Product quantity updated successfully",
		Product: product,
	})
}

// Label handles GET /products/:id/label and returns a PNG QR code.
func (h *ProductHandler) Label(c echo.Context) error {
	productID, err := parseProductID(c)
	if err != nil {
		return err
	}

	png, err := h.uc.Label(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

func parseProductID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrInvalidProductID
	}

	return id, nil
}

// parseIntField reads a JSON number or numeric string, dropping any fraction.
// It returns nil for anything else.
func parseIntField(v any) *int64 {
	var f float64
	switch value := v.(type) {
	case float64:
		f = value
	case string:
		s := strings.TrimSpace(value)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &n
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxSafeInteger {
		return nil
	}
	n := int64(f)

	return &n
}

// parseFloatField reads a JSON number or numeric string.
func parseFloatField(v any) *float64 {
	switch value := v.(type) {
	case float64:
		return &value
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil
		}

		return &f
	default:
		return nil
	}
}
