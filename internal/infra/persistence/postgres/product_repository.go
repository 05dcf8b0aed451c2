package postgres

import (
	"context"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return domainerrors.ErrSKUAlreadyExists.WrapMessage("sku already exists")
		case isCheckConstraintViolation(err), isNotNullConstraintViolation(err):
			return domainerrors.ErrValidationFailed.WrapMessage("product violates table constraints")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	*product = *toProductDomain(productM)

	return nil
}

// List returns one page ordered by ascending id. It never returns a nil slice.
func (repo *productRepository) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Product, error) {
	var models []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Order("id ASC").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&models).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(models))
	for _, m := range models {
		products = append(products, toProductDomain(m))
	}

	return products, nil
}

func (repo *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	return repo.findByID(repo.db.WithContext(ctx), id)
}

func (repo *productRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return repo.findByID(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (repo *productRepository) findByID(db *gorm.DB, id int64) (*entity.Product, error) {
	var productM model.ProductModel
	if err := db.Where("id = ?", id).First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find product")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if err := result.Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidQuantity.WrapMessage("quantity violates check constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update product quantity")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Type:        data.Type,
		SKU:         data.SKU,
		ImageURL:    data.ImageURL,
		Description: data.Description,
		Quantity:    data.Quantity,
		Price:       data.Price,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Type:        data.Type,
		SKU:         data.SKU,
		ImageURL:    data.ImageURL,
		Description: data.Description,
		Quantity:    data.Quantity,
		Price:       data.Price,
	}
}
