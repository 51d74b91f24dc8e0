package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"machinity-be/internal/constant"
	"machinity-be/internal/dto"
	"machinity-be/internal/entity"
	"machinity-be/internal/pkg/logger"
	"machinity-be/internal/pkg/serverutils"
	"machinity-be/internal/repository/contract"
	"machinity-be/pkg/catalog"
)

const (
	defaultPage     = 1
	defaultPageSize = 12
	maxPageSize     = 100
)

type ICatalogService interface {
	List(ctx context.Context, query *dto.ProductListQuery) (*dto.ProductListResponse, error)
	GetById(ctx context.Context, id string) (*entity.Product, error)
	Stats(ctx context.Context) (*catalog.ProductStats, error)
}

type catalogService struct {
	repo   contract.IProductRepository
	cmp    catalog.NameComparator
	logger logger.ILogger
}

func NewCatalogService(repo contract.IProductRepository, cmp catalog.NameComparator, log logger.ILogger) ICatalogService {
	return &catalogService{
		repo:   repo,
		cmp:    cmp,
		logger: log,
	}
}

// List resolves a raw listing query: coerce and validate every parameter
// first, then fetch, filter, sort and paginate. Validation rejects the
// request before the repository is ever touched.
func (s *catalogService) List(ctx context.Context, query *dto.ProductListQuery) (*dto.ProductListResponse, error) {
	criteria, err := s.buildCriteria(query)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("catalog_service", "failed to load products", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.InternalError("Products could not be loaded", err)
	}

	refs := toRefs(products)
	filtered := catalog.FilterProducts(refs, criteria)
	sorted := catalog.SortProducts(filtered, criteria.Sort, s.cmp)

	total := len(sorted)
	start := (criteria.Page - 1) * criteria.PageSize
	end := start + criteria.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]entity.Product, 0, end-start)
	for _, p := range sorted[start:end] {
		items = append(items, *p)
	}

	return &dto.ProductListResponse{
		Items:       items,
		Total:       total,
		Page:        criteria.Page,
		PageSize:    criteria.PageSize,
		HasNextPage: end < total,
	}, nil
}

func (s *catalogService) GetById(ctx context.Context, id string) (*entity.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, serverutils.ValidationError("Product id is required")
	}
	product, err := s.repo.FindById(ctx, id)
	if err != nil {
		s.logger.Error("catalog_service", "failed to load product", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, serverutils.InternalError("Products could not be loaded", err)
	}
	if product == nil {
		return nil, serverutils.NotFoundError("Product not found")
	}
	return product, nil
}

func (s *catalogService) Stats(ctx context.Context) (*catalog.ProductStats, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("catalog_service", "failed to load products for stats", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.InternalError("Products could not be loaded", err)
	}
	return catalog.ComputeStats(toRefs(products), s.cmp), nil
}

// buildCriteria coerces the raw query into FilterCriteria. Every rejection
// here is a validation error; nothing has touched the store yet.
func (s *catalogService) buildCriteria(query *dto.ProductListQuery) (*catalog.FilterCriteria, error) {
	fc := &catalog.FilterCriteria{
		Categories: cleanList(query.Categories),
		Brands:     cleanList(query.Brands),
		Cpus:       cleanList(query.Cpus),
		Sort:       constant.SortAlphabetical,
		Page:       defaultPage,
		PageSize:   defaultPageSize,
	}

	var err error
	if fc.Rams, err = parseIntList(query.Rams, "ram"); err != nil {
		return nil, err
	}
	if fc.Storages, err = parseIntList(query.Storages, "storage"); err != nil {
		return nil, err
	}

	bounds := []struct {
		raw  string
		name string
		dst  **float64
	}{
		{query.MinPrice, "minPrice", &fc.PriceMin},
		{query.MaxPrice, "maxPrice", &fc.PriceMax},
		{query.ScreenMin, "screenMin", &fc.ScreenMin},
		{query.ScreenMax, "screenMax", &fc.ScreenMax},
		{query.BatteryMin, "batteryMin", &fc.BatteryMin},
		{query.BatteryMax, "batteryMax", &fc.BatteryMax},
		{query.WeightMin, "weightMin", &fc.WeightMin},
		{query.WeightMax, "weightMax", &fc.WeightMax},
	}
	for _, b := range bounds {
		if *b.dst, err = parseBound(b.raw, b.name); err != nil {
			return nil, err
		}
	}

	pairs := []struct {
		name     string
		min, max *float64
	}{
		{"price", fc.PriceMin, fc.PriceMax},
		{"screen", fc.ScreenMin, fc.ScreenMax},
		{"battery", fc.BatteryMin, fc.BatteryMax},
		{"weight", fc.WeightMin, fc.WeightMax},
	}
	for _, p := range pairs {
		if p.min != nil && p.max != nil && *p.min > *p.max {
			return nil, serverutils.ValidationError(fmt.Sprintf("Invalid %s range: min is greater than max", p.name))
		}
	}

	if query.Sort != "" {
		opt := constant.SortOption(query.Sort)
		if !constant.ValidSortOption(opt) {
			return nil, serverutils.ValidationError("Invalid sort option: " + query.Sort)
		}
		fc.Sort = opt
	}

	if query.Page != "" {
		page, convErr := strconv.Atoi(query.Page)
		if convErr != nil || page < 1 {
			return nil, serverutils.ValidationError("Invalid page: must be an integer >= 1")
		}
		fc.Page = page
	}
	if query.PageSize != "" {
		size, convErr := strconv.Atoi(query.PageSize)
		if convErr != nil || size < 1 || size > maxPageSize {
			return nil, serverutils.ValidationError(fmt.Sprintf("Invalid pageSize: must be an integer in [1,%d]", maxPageSize))
		}
		fc.PageSize = size
	}

	return fc, nil
}

func toRefs(products []entity.Product) []*entity.Product {
	refs := make([]*entity.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	return refs
}

func cleanList(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseIntList(vals []string, name string) ([]int, error) {
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		t := strings.TrimSpace(v)
		if t == "" {
			continue
		}
		n, err := strconv.Atoi(t)
		if err != nil {
			return nil, serverutils.ValidationError(fmt.Sprintf("Invalid %s value: %q is not an integer", name, v))
		}
		out = append(out, n)
	}
	return out, nil
}

func parseBound(raw, name string) (*float64, error) {
	t := strings.TrimSpace(raw)
	if t == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, serverutils.ValidationError(fmt.Sprintf("Invalid %s value: %q is not a non-negative number", name, raw))
	}
	return &v, nil
}
