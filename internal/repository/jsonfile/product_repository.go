package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"

	"machinity-be/internal/entity"
	"machinity-be/internal/repository/contract"
)

const snapshotKey = "products"

// productRepository serves the catalog from a JSON file on disk. The
// decoded snapshot is cached so the file is re-read at most once per TTL,
// which also picks up edits to the file without a restart.
type productRepository struct {
	filePath string
	cache    *cache.Cache
	validate *validator.Validate
}

func NewProductRepository(filePath string, ttl time.Duration) contract.IProductRepository {
	return &productRepository{
		filePath: filePath,
		cache:    cache.New(ttl, 2*ttl),
		validate: validator.New(),
	}
}

func (r *productRepository) load() ([]entity.Product, error) {
	if cached, found := r.cache.Get(snapshotKey); found {
		return cached.([]entity.Product), nil
	}

	raw, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("read products file: %w", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode products file: %w", err)
	}

	for i := range products {
		if err := r.validate.Struct(&products[i]); err != nil {
			return nil, fmt.Errorf("invalid product at index %d: %w", i, err)
		}
		products[i].Normalize()
	}

	r.cache.Set(snapshotKey, products, cache.DefaultExpiration)
	return products, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.load()
}

func (r *productRepository) FindById(ctx context.Context, id string) (*entity.Product, error) {
	products, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Id == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, nil
}
