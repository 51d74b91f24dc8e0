package dto

import "machinity-be/pkg/catalog"

// ParseFiltersRequest is the natural-language filter translation input.
type ParseFiltersRequest struct {
	Text string `json:"text"`
}

// AIRequestBody is shared by the summarize and compare endpoints; the
// cardinality rules (exactly one / exactly two ids) are enforced in the
// service so the error message can say which endpoint was misused.
type AIRequestBody struct {
	ProductIds []string `json:"productIds"`
}

// AIParsedFilters is the JSON contract the model must produce for the
// filter translation endpoint. Sort uses underscore variants here; the
// service maps them onto the catalog sort options when a listing is built
// from the parsed result.
type AIParsedFilters struct {
	Categories []string          `json:"categories"`
	Brands     []string          `json:"brands"`
	Price      catalog.RangeSpec `json:"price"`
	RamGb      catalog.RangeSpec `json:"ram_gb"`
	StorageGb  catalog.RangeSpec `json:"storage_gb"`
	ScreenInch catalog.RangeSpec `json:"screen_inch"`
	BatteryWh  catalog.RangeSpec `json:"battery_wh"`
	WeightKg   catalog.RangeSpec `json:"weight_kg"`
	Cpus       []string          `json:"cpus"`
	Sort       string            `json:"sort"`
}

// DefaultAIParsedFilters is the neutral result used when the model reply
// cannot be parsed. Arrays are non-nil so the JSON stays `[]`, not `null`.
func DefaultAIParsedFilters() AIParsedFilters {
	return AIParsedFilters{
		Categories: []string{},
		Brands:     []string{},
		Cpus:       []string{},
		Sort:       "alphabetical",
	}
}

// ValidAISort reports whether s is one of the sort variants the model is
// allowed to emit.
func ValidAISort(s string) bool {
	switch s {
	case "alphabetical", "price_asc", "price_desc", "rating_asc", "rating_desc":
		return true
	}
	return false
}

// LlmProduct is the trimmed product view sent to the model. Name is
// display-only; the prompts forbid evaluating by it. Pointers serialize as
// explicit nulls so the model sees which fields are unknown.
type LlmProduct struct {
	Id         string   `json:"id"`
	Name       string   `json:"name"`
	Price      *float64 `json:"price"`
	Cpu        *string  `json:"cpu"`
	RamGb      *int     `json:"ram_gb"`
	StorageGb  *int     `json:"storage_gb"`
	ScreenInch *float64 `json:"screen_inch"`
	BatteryWh  *float64 `json:"battery_wh"`
	Rating     *float64 `json:"rating"`
}

// ProductSummaryItem is one evaluated product inside a summary or compare
// response: the LlmProduct fields echoed back plus the pros/cons lists.
type ProductSummaryItem struct {
	Id         string   `json:"id"`
	Name       string   `json:"name"`
	Price      *float64 `json:"price"`
	Cpu        *string  `json:"cpu"`
	RamGb      *float64 `json:"ram_gb"`
	StorageGb  *float64 `json:"storage_gb"`
	ScreenInch *float64 `json:"screen_inch"`
	BatteryWh  *float64 `json:"battery_wh"`
	Rating     *float64 `json:"rating"`
	Pros       []string `json:"pros"`
	Cons       []string `json:"cons"`
}

// SummaryVerdict is the shared summary block of both AI endpoints.
type SummaryVerdict struct {
	Tldr          string `json:"tldr"`
	ValueForMoney string `json:"value_for_money"`
}

// AISummaryPayload is the strict JSON shape the model must return for the
// summarize endpoint.
type AISummaryPayload struct {
	Item    ProductSummaryItem `json:"item"`
	Summary SummaryVerdict     `json:"summary"`
}

// AIComparePayload is the strict JSON shape the model must return for the
// compare endpoint.
type AIComparePayload struct {
	Comparison []ProductSummaryItem `json:"comparison"`
	Summary    SummaryVerdict       `json:"summary"`
}

type SummaryResponse struct {
	RequestId string             `json:"request_id"`
	Item      ProductSummaryItem `json:"item"`
	Summary   SummaryVerdict     `json:"summary"`
}

type CompareResponse struct {
	RequestId  string               `json:"request_id"`
	Comparison []ProductSummaryItem `json:"comparison"`
	Summary    SummaryVerdict       `json:"summary"`
}
