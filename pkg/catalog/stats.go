package catalog

import (
	"sort"

	"machinity-be/internal/entity"
)

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProductStats summarizes the whole collection: UI bounds for the filter
// panel and the whitelist the AI translator reconciles against. Recomputed
// from the store on every call, never persisted.
type ProductStats struct {
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`

	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`

	RamValues     []int `json:"ramValues"`
	StorageValues []int `json:"storageValues"`

	Screen  Range `json:"screen"`
	Battery Range `json:"battery"`
	Weight  Range `json:"weight"`

	CpuValues []string `json:"cpuValues"`
}

// ComputeStats derives ProductStats from the full collection. String lists
// are unique and sorted with the injected comparator; the CPU placeholder
// never makes it into CpuValues.
func ComputeStats(list []*entity.Product, cmp NameComparator) *ProductStats {
	stats := &ProductStats{
		Categories:    []string{},
		Brands:        []string{},
		RamValues:     []int{},
		StorageValues: []int{},
		CpuValues:     []string{},
	}

	var prices []float64
	var screens, batteries, weights []float64
	catSet := map[string]bool{}
	brandSet := map[string]bool{}
	ramSet := map[int]bool{}
	storageSet := map[int]bool{}
	cpuSet := map[string]bool{}

	for _, p := range list {
		if v, ok := entity.Finite(&p.Price); ok {
			prices = append(prices, v)
		}
		catSet[p.Category] = true
		brandSet[p.Brand] = true

		if p.RamGb != nil {
			ramSet[*p.RamGb] = true
		}
		if p.StorageGb != nil {
			storageSet[*p.StorageGb] = true
		}
		if v, ok := entity.Finite(p.ScreenInch); ok {
			screens = append(screens, v)
		}
		if v, ok := entity.Finite(p.BatteryWh); ok {
			batteries = append(batteries, v)
		}
		if v, ok := entity.Finite(p.WeightKg); ok {
			weights = append(weights, v)
		}
		if cpu, ok := p.CpuValue(); ok {
			cpuSet[cpu] = true
		}
	}

	stats.MinPrice, stats.MaxPrice = minMax(prices)
	stats.Screen = rangeOf(screens)
	stats.Battery = rangeOf(batteries)
	stats.Weight = rangeOf(weights)

	stats.Categories = sortedStrings(catSet, cmp)
	stats.Brands = sortedStrings(brandSet, cmp)
	stats.CpuValues = sortedStrings(cpuSet, cmp)
	stats.RamValues = sortedInts(ramSet)
	stats.StorageValues = sortedInts(storageSet)

	return stats
}

func minMax(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func rangeOf(vals []float64) Range {
	min, max := minMax(vals)
	return Range{Min: min, Max: max}
}

func sortedStrings(set map[string]bool, cmp NameComparator) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return cmp(out[i], out[j]) < 0 })
	return out
}

func sortedInts(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
