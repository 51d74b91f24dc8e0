package catalog

import (
	"strings"

	"machinity-be/internal/constant"
	"machinity-be/internal/entity"
)

// FilterCriteria is the request-scoped filter state. Empty slices and nil
// bounds mean "no constraint on that dimension". Bounds are assumed
// consistent (min <= max); the query pipeline rejects inconsistent caller
// input before building one of these, and AI-derived ranges are repaired
// before they land here.
type FilterCriteria struct {
	Categories []string
	Brands     []string

	Rams     []int
	Storages []int
	Cpus     []string

	PriceMin *float64
	PriceMax *float64

	ScreenMin  *float64
	ScreenMax  *float64
	BatteryMin *float64
	BatteryMax *float64
	WeightMin  *float64
	WeightMax  *float64

	Sort     constant.SortOption
	Page     int
	PageSize int
}

// FavoriteSelection carries the client-persisted favorites partition.
// Passed explicitly, never read from ambient state. Hydrated guards against
// filtering on a favorites list that has not been loaded yet.
type FavoriteSelection struct {
	Mode      constant.FavoriteFilter
	Favorites []string
	Hydrated  bool
}

func inRange(v *float64, min, max *float64) bool {
	val, ok := entity.Finite(v)
	if !ok {
		return false
	}
	if min != nil && val < *min {
		return false
	}
	if max != nil && val > *max {
		return false
	}
	return true
}

// FilterProducts keeps the products satisfying every active constraint:
// AND across dimensions, OR within a discrete set. A product missing a value
// on a dimension fails that dimension whenever it is constrained.
func FilterProducts(list []*entity.Product, fc *FilterCriteria) []*entity.Product {
	items := list

	if len(fc.Categories) > 0 {
		set := toSet(fc.Categories)
		items = keep(items, func(p *entity.Product) bool { return set[p.Category] })
	}
	if len(fc.Brands) > 0 {
		set := toSet(fc.Brands)
		items = keep(items, func(p *entity.Product) bool { return set[p.Brand] })
	}

	if fc.PriceMin != nil || fc.PriceMax != nil {
		items = keep(items, func(p *entity.Product) bool {
			return inRange(&p.Price, fc.PriceMin, fc.PriceMax)
		})
	}

	if len(fc.Rams) > 0 {
		set := toIntSet(fc.Rams)
		items = keep(items, func(p *entity.Product) bool {
			return p.RamGb != nil && set[*p.RamGb]
		})
	}
	if len(fc.Storages) > 0 {
		set := toIntSet(fc.Storages)
		items = keep(items, func(p *entity.Product) bool {
			return p.StorageGb != nil && set[*p.StorageGb]
		})
	}

	if len(fc.Cpus) > 0 {
		set := make(map[string]bool, len(fc.Cpus))
		for _, c := range fc.Cpus {
			set[strings.ToLower(strings.TrimSpace(c))] = true
		}
		items = keep(items, func(p *entity.Product) bool {
			cpu, ok := p.CpuValue()
			return ok && set[strings.ToLower(cpu)]
		})
	}

	if fc.ScreenMin != nil || fc.ScreenMax != nil {
		items = keep(items, func(p *entity.Product) bool {
			return inRange(p.ScreenInch, fc.ScreenMin, fc.ScreenMax)
		})
	}
	if fc.BatteryMin != nil || fc.BatteryMax != nil {
		items = keep(items, func(p *entity.Product) bool {
			return inRange(p.BatteryWh, fc.BatteryMin, fc.BatteryMax)
		})
	}
	if fc.WeightMin != nil || fc.WeightMax != nil {
		items = keep(items, func(p *entity.Product) bool {
			return inRange(p.WeightKg, fc.WeightMin, fc.WeightMax)
		})
	}

	return items
}

// ApplyFavorites partitions list against the favorites set. A no-op until
// the selection is hydrated, so results never flash wrong while client
// storage is still loading.
func ApplyFavorites(list []*entity.Product, sel FavoriteSelection) []*entity.Product {
	if !sel.Hydrated || sel.Mode == constant.FavoriteAll || sel.Mode == "" {
		return list
	}
	set := toSet(sel.Favorites)
	switch sel.Mode {
	case constant.FavoriteOnly:
		return keep(list, func(p *entity.Product) bool { return set[p.Id] })
	case constant.FavoriteNon:
		return keep(list, func(p *entity.Product) bool { return !set[p.Id] })
	}
	return list
}

func keep(list []*entity.Product, pred func(*entity.Product) bool) []*entity.Product {
	out := make([]*entity.Product, 0, len(list))
	for _, p := range list {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func toSet(vals []string) map[string]bool {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

func toIntSet(vals []int) map[int]bool {
	set := make(map[int]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}
