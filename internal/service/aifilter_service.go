package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"machinity-be/internal/dto"
	"machinity-be/internal/pkg/logger"
	"machinity-be/internal/pkg/serverutils"
	"machinity-be/internal/repository/contract"
	"machinity-be/pkg/aijson"
	"machinity-be/pkg/catalog"
	"machinity-be/pkg/llm"
	"machinity-be/pkg/textnorm"
)

const (
	filterCachePrefix = "nlfilter:"
	filterCacheTTL    = time.Hour
)

const filterSystemPrompt = `Sadece GEÇERLİ JSON üret (markdown blokları, açıklama ekleme).
Görev: Kullanıcının Türkçe isteğini aşağıdaki şemaya göre filtre JSON'una çevir.

Şema:
{
  "categories": string[],
  "brands": string[],
  "price":       { "min"?: number | null, "max"?: number | null, "exact"?: number | null },
  "ram_gb":      { "min"?: number | null, "max"?: number | null, "exact"?: number | null },
  "storage_gb":  { "min"?: number | null, "max"?: number | null, "exact"?: number | null },
  "screen_inch": { "min"?: number | null, "max"?: number | null, "exact"?: number | null },
  "battery_wh":  { "min"?: number | null, "max"?: number | null, "exact"?: number | null },
  "weight_kg":   { "min"?: number | null, "max"?: number | null, "exact"?: number | null },
  "cpus":        string[],
  "sort": "alphabetical" | "price_asc" | "price_desc" | "rating_desc" | "rating_asc"
}

Kurallar:
- Para ve GB/inç/kg/Wh birimlerini sayıya çevir (örn. "30 bin"→30000, "16gb"→16, "15.6 inç"→15.6, "2 kg"→2, "60 wh"→60).
- "altında", "en fazla", "≤" => ilgili alanda sadece "max" kullan.
- "üstünde", "en az", "≥"  => ilgili alanda sadece "min" kullan.
- "tam", "aynen", "="      => "exact" kullan (ve min=max=exact anlamına gelir).
- Kritik: "mAh" kapasitesini Wh'a çevirmeye çalışma; voltaj bilinmiyor → "battery_wh" alanını boş bırak.
- Sadece whitelist'teki kategori/marka/CPU değerlerini kullan; emin değilsen ilgili alanı boş array bırak.
- Bir sınır belirtilmediyse o alanı null bırak. KEYFİ TAHMİN YAPMA.
- JSON dışında hiçbir şey yazma.`

const filterFewShots = `ÖRNEKLER:
1) "30 bin altı 16 GB ve üstü RAM'li laptoplar"
{
  "categories": ["laptop"],
  "brands": [],
  "price": { "min": null, "max": 30000, "exact": null },
  "ram_gb": { "min": 16, "max": null, "exact": null },
  "storage_gb": { "min": null, "max": null, "exact": null },
  "screen_inch": { "min": null, "max": null, "exact": null },
  "battery_wh": { "min": null, "max": null, "exact": null },
  "weight_kg": { "min": null, "max": null, "exact": null },
  "cpus": [],
  "sort": "price_asc"
}

2) "15.6 inç tam, 1.8 kg altı, 60 Wh üstü"
{
  "categories": [],
  "brands": [],
  "price": { "min": null, "max": null, "exact": null },
  "ram_gb": { "min": null, "max": null, "exact": null },
  "storage_gb": { "min": null, "max": null, "exact": null },
  "screen_inch": { "min": null, "max": null, "exact": 15.6 },
  "battery_wh": { "min": 60, "max": null, "exact": null },
  "weight_kg": { "min": null, "max": 1.8, "exact": null },
  "cpus": [],
  "sort": "price_asc"
}

3) "512 GB depolama ve 16 GB ram"
{
  "categories": [],
  "brands": [],
  "price": { "min": null, "max": null, "exact": null },
  "ram_gb": { "min": null, "max": null, "exact": 16 },
  "storage_gb": { "min": null, "max": null, "exact": 512 },
  "screen_inch": { "min": null, "max": null, "exact": null },
  "battery_wh": { "min": null, "max": null, "exact": null },
  "weight_kg": { "min": null, "max": null, "exact": null },
  "cpus": [],
  "sort": "price_asc"
}

4) "Fiyat önemli değil, en yüksek puanlıları göster"
{
  "categories": [],
  "brands": [],
  "price": { "min": null, "max": null, "exact": null },
  "ram_gb": { "min": null, "max": null, "exact": null },
  "storage_gb": { "min": null, "max": null, "exact": null },
  "screen_inch": { "min": null, "max": null, "exact": null },
  "battery_wh": { "min": null, "max": null, "exact": null },
  "weight_kg": { "min": null, "max": null, "exact": null },
  "cpus": [],
  "sort": "rating_desc"
}

5) "puanı düşükten yükseğe sırala"
{
  "categories": [],
  "brands": [],
  "price": { "min": null, "max": null, "exact": null },
  "ram_gb": { "min": null, "max": null, "exact": null },
  "storage_gb": { "min": null, "max": null, "exact": null },
  "screen_inch": { "min": null, "max": null, "exact": null },
  "battery_wh": { "min": null, "max": null, "exact": null },
  "weight_kg": { "min": null, "max": null, "exact": null },
  "cpus": [],
  "sort": "rating_asc"
}

6) "alfabetik sırala"
{
  "categories": [],
  "brands": [],
  "price": { "min": null, "max": null, "exact": null },
  "ram_gb": { "min": null, "max": null, "exact": null },
  "storage_gb": { "min": null, "max": null, "exact": null },
  "screen_inch": { "min": null, "max": null, "exact": null },
  "battery_wh": { "min": null, "max": null, "exact": null },
  "weight_kg": { "min": null, "max": null, "exact": null },
  "cpus": [],
  "sort": "alphabetical"
}

7) "intel i7 ya da ryzen 7 olsun"
{
  "categories": [],
  "brands": [],
  "price": { "min": null, "max": null, "exact": null },
  "ram_gb": { "min": null, "max": null, "exact": null },
  "storage_gb": { "min": null, "max": null, "exact": null },
  "screen_inch": { "min": null, "max": null, "exact": null },
  "battery_wh": { "min": null, "max": null, "exact": null },
  "weight_kg": { "min": null, "max": null, "exact": null },
  "cpus": ["<whitelist'te nasıl geçiyorsa o şekilde>"],
  "sort": "alphabetical"
}`

type IAIFilterService interface {
	Translate(ctx context.Context, text string) (*dto.AIParsedFilters, error)
}

type aiFilterService struct {
	repo     contract.IProductRepository
	provider llm.LLMProvider
	cmp      catalog.NameComparator
	cache    *redis.Client // optional; nil disables caching
	logger   logger.ILogger
}

func NewAIFilterService(
	repo contract.IProductRepository,
	provider llm.LLMProvider,
	cmp catalog.NameComparator,
	cache *redis.Client,
	log logger.ILogger,
) IAIFilterService {
	return &aiFilterService{
		repo:     repo,
		provider: provider,
		cmp:      cmp,
		cache:    cache,
		logger:   log,
	}
}

// Translate turns free-form Turkish text into a filter object. The only
// error a caller can see is missing text; every model or parse failure
// degrades to the default (empty) filter so the UI keeps working.
func (s *aiFilterService) Translate(ctx context.Context, text string) (*dto.AIParsedFilters, error) {
	if strings.TrimSpace(text) == "" {
		return nil, serverutils.ValidationError("The 'text' field is required")
	}

	cleaned := textnorm.Normalize(text)

	if cached := s.cacheGet(ctx, cleaned); cached != nil {
		return cached, nil
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("aifilter_service", "failed to load whitelist products", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.InternalError("Products could not be loaded", err)
	}
	stats := catalog.ComputeStats(toRefs(products), s.cmp)

	userPrompt := buildFilterUserPrompt(stats, cleaned)

	reply, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: filterSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, llm.WithTemperature(0.1))
	if err != nil {
		s.logger.Warn("aifilter_service", "model call failed, returning default filters", map[string]interface{}{"error": err.Error()})
		result := dto.DefaultAIParsedFilters()
		return &result, nil
	}

	result := s.parseReply(reply)
	reconcile(&result, stats)
	repairRanges(&result)

	s.cacheSet(ctx, cleaned, &result)
	return &result, nil
}

func buildFilterUserPrompt(stats *catalog.ProductStats, cleaned string) string {
	var b strings.Builder
	b.WriteString("Kullanılabilir kategoriler: ")
	b.WriteString(strings.Join(stats.Categories, ", "))
	b.WriteString("\nKullanılabilir markalar: ")
	b.WriteString(strings.Join(stats.Brands, ", "))
	b.WriteString("\nKullanılabilir CPU'lar: ")
	b.WriteString(strings.Join(stats.CpuValues, ", "))
	b.WriteString("\n\n")
	b.WriteString(filterFewShots)
	b.WriteString("\n\nMetin: \"\"\"")
	b.WriteString(cleaned)
	b.WriteString("\"\"\"\nYalnızca şema ile UYUMLU, GEÇERLİ JSON üret:")
	return b.String()
}

// parseReply extracts and decodes the model output, degrading to the
// default filter object on any failure.
func (s *aiFilterService) parseReply(reply string) dto.AIParsedFilters {
	result := dto.DefaultAIParsedFilters()

	jsonStr := aijson.Extract(reply)
	var parsed dto.AIParsedFilters
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		s.logger.Warn("aifilter_service", "could not parse JSON from model reply", map[string]interface{}{"error": err.Error()})
		return result
	}

	result = parsed
	if result.Categories == nil {
		result.Categories = []string{}
	}
	if result.Brands == nil {
		result.Brands = []string{}
	}
	if result.Cpus == nil {
		result.Cpus = []string{}
	}
	if !dto.ValidAISort(result.Sort) {
		result.Sort = "alphabetical"
	}
	return result
}

// reconcile drops every value the live whitelist does not contain.
// Categories and brands match exactly; CPUs are canonicalized
// case-insensitively to the spelling the catalog uses.
func reconcile(f *dto.AIParsedFilters, stats *catalog.ProductStats) {
	f.Categories = intersect(f.Categories, stats.Categories)
	f.Brands = intersect(f.Brands, stats.Brands)

	canon := make(map[string]string, len(stats.CpuValues))
	for _, c := range stats.CpuValues {
		canon[strings.ToLower(c)] = c
	}
	seen := make(map[string]bool, len(f.Cpus))
	cpus := make([]string, 0, len(f.Cpus))
	for _, c := range f.Cpus {
		t := strings.TrimSpace(c)
		if t == "" {
			continue
		}
		if canonical, ok := canon[strings.ToLower(t)]; ok && !seen[canonical] {
			seen[canonical] = true
			cpus = append(cpus, canonical)
		}
	}
	f.Cpus = cpus
}

func repairRanges(f *dto.AIParsedFilters) {
	f.Price = f.Price.Repair()
	f.RamGb = f.RamGb.Repair()
	f.StorageGb = f.StorageGb.Repair()
	f.ScreenInch = f.ScreenInch.Repair()
	f.BatteryWh = f.BatteryWh.Repair()
	f.WeightKg = f.WeightKg.Repair()
}

func intersect(vals, allowed []string) []string {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}

func (s *aiFilterService) cacheGet(ctx context.Context, cleaned string) *dto.AIParsedFilters {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, filterCachePrefix+cleaned).Result()
	if err != nil {
		return nil
	}
	var cached dto.AIParsedFilters
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil
	}
	return &cached
}

func (s *aiFilterService) cacheSet(ctx context.Context, cleaned string, f *dto.AIParsedFilters) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, filterCachePrefix+cleaned, raw, filterCacheTTL).Err(); err != nil {
		s.logger.Warn("aifilter_service", "failed to cache parsed filters", map[string]interface{}{"error": err.Error()})
	}
}
