package catalog

import (
	"sort"

	"machinity-be/internal/constant"
	"machinity-be/internal/entity"
)

// NameComparator orders display names; the Turkish collator in production,
// anything deterministic in tests.
type NameComparator func(a, b string) int

// SortProducts returns a sorted copy of list. Numeric sorts break ties on
// name; products without a usable numeric value go after the ones that have
// one regardless of direction, and among themselves order by name. A rating
// of 0 counts as a value.
func SortProducts(list []*entity.Product, opt constant.SortOption, cmp NameComparator) []*entity.Product {
	arr := make([]*entity.Product, len(list))
	copy(arr, list)

	byName := func(a, b *entity.Product) bool {
		return cmp(a.Name, b.Name) < 0
	}

	sortByNum := func(get func(*entity.Product) (float64, bool), asc bool) {
		sort.SliceStable(arr, func(i, j int) bool {
			av, aok := get(arr[i])
			bv, bok := get(arr[j])

			if !aok && !bok {
				return byName(arr[i], arr[j])
			}
			if !aok {
				return false
			}
			if !bok {
				return true
			}
			if av != bv {
				if asc {
					return av < bv
				}
				return av > bv
			}
			return byName(arr[i], arr[j])
		})
	}

	price := func(p *entity.Product) (float64, bool) { return entity.Finite(&p.Price) }
	rating := func(p *entity.Product) (float64, bool) { return entity.Finite(p.Rating) }

	switch opt {
	case constant.SortPriceAsc:
		sortByNum(price, true)
	case constant.SortPriceDesc:
		sortByNum(price, false)
	case constant.SortRatingAsc:
		sortByNum(rating, true)
	case constant.SortRatingDesc:
		sortByNum(rating, false)
	default:
		sort.SliceStable(arr, func(i, j int) bool { return byName(arr[i], arr[j]) })
	}

	return arr
}
