package contract

import (
	"context"

	"machinity-be/internal/entity"
)

// IProductRepository abstracts the product store. FindById returns
// (nil, nil) when the id does not exist; errors mean the store itself
// failed.
type IProductRepository interface {
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindById(ctx context.Context, id string) (*entity.Product, error)
}
