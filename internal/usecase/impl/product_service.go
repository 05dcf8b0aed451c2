package impl

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"inventory/config"
	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/lifecycle"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	"inventory/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultPageSize = 10

type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	publisher   service.EventPublisher
	qrcode      service.QRCodeService
	pageSize    int
	now         func() time.Time
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Publisher   service.EventPublisher
	QRCode      service.QRCodeService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	pageSize := defaultPageSize
	if params.Config != nil && params.Config.Pagination != nil && params.Config.Pagination.PageSize > 0 {
		pageSize = params.Config.Pagination.PageSize
	}

	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		publisher:   params.Publisher,
		qrcode:      params.QRCode,
		pageSize:    pageSize,
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create validates and stores a new product.
func (srv *productService) Create(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        input.Name,
		Type:        input.Type,
		SKU:         input.SKU,
		ImageURL:    input.ImageURL,
		Description: input.Description,
		Quantity:    *input.Quantity,
		Price:       *input.Price,
	}
	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created",
		slog.Int64("product_id", product.ID),
		slog.String("sku", product.SKU),
	)
	srv.publish(ctx, service.EventProductCreated, product)

	return product, nil
}

func validateCreateInput(input *usecase.CreateProductInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed
	}

	for _, field := range []string{input.Name, input.Type, input.SKU, input.ImageURL, input.Description} {
		if strings.TrimSpace(field) == "" {
			return domainerrors.ErrValidationFailed
		}
	}

	if input.Quantity == nil || *input.Quantity < 0 {
		return domainerrors.ErrValidationFailed
	}
	if input.Price == nil || *input.Price < 0 || math.IsNaN(*input.Price) || math.IsInf(*input.Price, 0) {
		return domainerrors.ErrValidationFailed
	}

	return nil
}

// List returns one page of products in ascending id order. Pages below 1 are
// treated as the first page.
func (srv *productService) List(ctx context.Context, input *usecase.ListProductsInput) ([]*entity.Product, error) {
	page := 1
	if input != nil && input.Page > 1 {
		page = input.Page
	}

	// Offsets past this point cannot hold rows and would overflow int arithmetic.
	if page-1 > math.MaxInt32/srv.pageSize {
		return []*entity.Product{}, nil
	}

	products, err := srv.productRepo.List(ctx, repository.ListOptions{
		Offset: (page - 1) * srv.pageSize,
		Limit:  srv.pageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	if products == nil {
		products = []*entity.Product{}
	}

	return products, nil
}

// UpdateQuantity locks the product row, sets the new quantity and returns the
// updated product.
func (srv *productService) UpdateQuantity(ctx context.Context, input *usecase.UpdateQuantityInput) (*entity.Product, error) {
	if input == nil || input.ProductID <= 0 {
		return nil, domainerrors.ErrInvalidProductID
	}
	if input.Quantity < 0 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	var updated *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		if _, err := productRepo.FindByIDForUpdate(ctx, input.ProductID); err != nil {
			return mapProductLookupError(err)
		}

		if err := productRepo.UpdateQuantity(ctx, input.ProductID, input.Quantity); err != nil {
			return mapProductLookupError(err)
		}

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return mapProductLookupError(err)
		}
		updated = product

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product quantity")
	}

	srv.log(ctx).Info("Product quantity updated",
		slog.Int64("product_id", updated.ID),
		slog.Int64("quantity", updated.Quantity),
	)
	srv.publish(ctx, service.EventProductQuantityUpdated, updated)

	return updated, nil
}

// Label renders the QR label of an existing product.
func (srv *productService) Label(ctx context.Context, productID int64) ([]byte, error) {
	if productID <= 0 {
		return nil, domainerrors.ErrInvalidProductID
	}

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(mapProductLookupError(err), "failed to load product for label")
	}

	png, err := srv.qrcode.GenerateProductLabel(product.ID, product.SKU)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate product label")
	}

	return png, nil
}

func mapProductLookupError(err error) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return domainerrors.ErrProductNotFound
	}

	return err
}

// publish sends a stock event after the change is committed. A failed publish
// is logged and never fails the request.
func (srv *productService) publish(ctx context.Context, eventType string, product *entity.Product) {
	event := &service.StockEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventType:  eventType,
		ProductID:  product.ID,
		SKU:        product.SKU,
		Quantity:   product.Quantity,
		OccurredAt: srv.now().UTC(),
	}

	// Detached from the request so a client disconnect does not cancel the publish.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
	defer cancel()

	if err := srv.publisher.PublishStockEvent(publishCtx, event); err != nil {
		srv.log(ctx).Error("Failed to publish stock event",
			slog.String("event_type", eventType),
			slog.Int64("product_id", product.ID),
			slog.Any("error", err),
		)
	}
}
