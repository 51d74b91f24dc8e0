package dto

import "machinity-be/internal/entity"

// ProductListQuery carries the raw query-string values of GET /products.
// Everything stays a string until the service coerces it, so a malformed
// value can be rejected with a clear message instead of silently dropping
// to a zero value.
type ProductListQuery struct {
	Categories []string
	Brands     []string
	Rams       []string
	Storages   []string
	Cpus       []string

	MinPrice   string
	MaxPrice   string
	ScreenMin  string
	ScreenMax  string
	BatteryMin string
	BatteryMax string
	WeightMin  string
	WeightMax  string

	Sort     string
	Page     string
	PageSize string
}

type ProductListResponse struct {
	Items       []entity.Product `json:"items"`
	Total       int              `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"pageSize"`
	HasNextPage bool             `json:"hasNextPage"`
}
