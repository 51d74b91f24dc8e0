package constant

// SortOption selects the ordering of a product listing.
type SortOption string

const (
	SortAlphabetical SortOption = "alphabetical"
	SortPriceAsc     SortOption = "price-asc"
	SortPriceDesc    SortOption = "price-desc"
	SortRatingAsc    SortOption = "rating-asc"
	SortRatingDesc   SortOption = "rating-desc"
)

// ValidSortOption reports whether s is one of the five supported options.
func ValidSortOption(s SortOption) bool {
	switch s {
	case SortAlphabetical, SortPriceAsc, SortPriceDesc, SortRatingAsc, SortRatingDesc:
		return true
	}
	return false
}

// FavoriteFilter partitions a result set against a client-persisted
// favorites list.
type FavoriteFilter string

const (
	FavoriteAll  FavoriteFilter = "all"
	FavoriteOnly FavoriteFilter = "only"
	FavoriteNon  FavoriteFilter = "non"
)

// CpuUnknownPlaceholder is the literal the source data uses for an unknown
// CPU. It must be treated as absent everywhere: filtering, stats, AI prompts.
const CpuUnknownPlaceholder = "—"
