package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"machinity-be/internal/entity"
	"machinity-be/internal/repository/contract"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) contract.IProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Normalize()
	}
	return products, nil
}

func (r *productRepository) FindById(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	product.Normalize()
	return &product, nil
}
