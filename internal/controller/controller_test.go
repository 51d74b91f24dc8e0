package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"machinity-be/internal/dto"
	"machinity-be/internal/pkg/serverutils"
	"machinity-be/internal/repository/jsonfile"
	"machinity-be/internal/service"
	"machinity-be/pkg/catalog"
	"machinity-be/pkg/llm"
)

const testProductsJSON = `[
	{"id": "l1", "name": "Laptop Alpha", "category": "laptop", "brand": "Asus", "price": 20000, "rating": 4.3, "ram_gb": 16, "storage_gb": 512, "screen_inch": 15.6, "cpu": "Intel Core i5"},
	{"id": "l2", "name": "Laptop Beta", "category": "laptop", "brand": "Lenovo", "price": 30000, "rating": 4.6, "ram_gb": 32, "storage_gb": 1000, "screen_inch": 16, "cpu": "AMD Ryzen 7"},
	{"id": "p1", "name": "Phone Gamma", "category": "phone", "brand": "Samsung", "price": 15000, "ram_gb": 8, "storage_gb": 128, "screen_inch": 6.4, "cpu": "—"}
]`

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }

func newTestApp(t *testing.T, model llm.LLMProvider) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	file := filepath.Join(dir, "products.json")
	if err := os.WriteFile(file, []byte(testProductsJSON), 0644); err != nil {
		t.Fatalf("write products file: %v", err)
	}

	repo := jsonfile.NewProductRepository(file, time.Minute)
	log := quietLogger{}

	catalogService := service.NewCatalogService(repo, strings.Compare, log)
	filterService := service.NewAIFilterService(repo, model, strings.Compare, nil, log)
	summaryService := service.NewAISummaryService(repo, model, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewProductController(catalogService).RegisterRoutes(api)
	NewAIController(filterService, summaryService).RegisterRoutes(api)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestListProductsEnvelope(t *testing.T) {
	app := newTestApp(t, &stubLLM{})

	resp, raw := doJSON(t, app, "GET", "/api/products?category=laptop&sort=price-asc", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ProductListResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 12, body.PageSize)
	assert.False(t, body.HasNextPage)
	assert.Equal(t, "l1", body.Items[0].Id)
	assert.Equal(t, "l2", body.Items[1].Id)
}

func TestListProductsRepeatedParams(t *testing.T) {
	app := newTestApp(t, &stubLLM{})

	resp, raw := doJSON(t, app, "GET", "/api/products?brand=Asus&brand=Samsung", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ProductListResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 2, body.Total)
}

func TestListProductsValidationError(t *testing.T) {
	app := newTestApp(t, &stubLLM{})

	resp, raw := doJSON(t, app, "GET", "/api/products?minPrice=5000&maxPrice=3000", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body, "error")
}

func TestProductStatsEndpoint(t *testing.T) {
	app := newTestApp(t, &stubLLM{})

	resp, raw := doJSON(t, app, "GET", "/api/products/stats", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats catalog.ProductStats
	assert.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, 15000.0, stats.MinPrice)
	assert.Equal(t, 30000.0, stats.MaxPrice)
	assert.ElementsMatch(t, []string{"laptop", "phone"}, stats.Categories)
	// "—" cpu never enters the whitelist
	assert.ElementsMatch(t, []string{"Intel Core i5", "AMD Ryzen 7"}, stats.CpuValues)
}

func TestShowProduct(t *testing.T) {
	app := newTestApp(t, &stubLLM{})

	resp, raw := doJSON(t, app, "GET", "/api/products/l1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Laptop Alpha", body["name"])

	resp, _ = doJSON(t, app, "GET", "/api/products/ghost", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestParseFiltersEndpoint(t *testing.T) {
	model := &stubLLM{reply: `{"categories": ["laptop"], "brands": [], "cpus": [], "sort": "price_asc"}`}
	app := newTestApp(t, model)

	resp, raw := doJSON(t, app, "POST", "/api/ai/parse-filters", `{"text": "ucuz laptop"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.AIParsedFilters
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, []string{"laptop"}, body.Categories)
	assert.Equal(t, "price_asc", body.Sort)
}

func TestParseFiltersRequiresText(t *testing.T) {
	app := newTestApp(t, &stubLLM{})

	resp, _ := doJSON(t, app, "POST", "/api/ai/parse-filters", `{"text": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseFiltersModelFailureStill200(t *testing.T) {
	model := &stubLLM{reply: "no json here"}
	app := newTestApp(t, model)

	resp, raw := doJSON(t, app, "POST", "/api/ai/parse-filters", `{"text": "bir laptop"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.AIParsedFilters
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "alphabetical", body.Sort)
	assert.NotNil(t, body.Categories)
}

func TestSummarizeEndpoint(t *testing.T) {
	model := &stubLLM{reply: `{
		"item": {"id": "l1", "name": "Laptop Alpha", "pros": ["cheap"], "cons": [], "price": 20000, "cpu": "Intel Core i5", "ram_gb": 16, "storage_gb": 512, "screen_inch": 15.6, "battery_wh": null, "rating": 4.3},
		"summary": {"tldr": "Fine machine.", "value_for_money": "good"}
	}`}
	app := newTestApp(t, model)

	resp, raw := doJSON(t, app, "POST", "/api/ai/summarize", `{"productIds": ["l1"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.SummaryResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.NotEmpty(t, body.RequestId)
	assert.Equal(t, "Laptop Alpha", body.Item.Name)
}

func TestSummarizeErrorTaxonomy(t *testing.T) {
	model := &stubLLM{reply: "not json"}
	app := newTestApp(t, model)

	// wrong cardinality
	resp, raw := doJSON(t, app, "POST", "/api/ai/summarize", `{"productIds": ["l1", "l2"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body, "request_id")

	// unknown product
	resp, _ = doJSON(t, app, "POST", "/api/ai/summarize", `{"productIds": ["ghost"]}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// model returned garbage
	resp, _ = doJSON(t, app, "POST", "/api/ai/summarize", `{"productIds": ["l1"]}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestCompareEndpoint(t *testing.T) {
	model := &stubLLM{reply: `{
		"comparison": [
			{"id": "l1", "name": "Laptop Alpha", "pros": ["cheaper"], "cons": [], "price": 20000, "cpu": "Intel Core i5", "ram_gb": 16, "storage_gb": 512, "screen_inch": 15.6, "battery_wh": null, "rating": 4.3},
			{"id": "l2", "name": "Laptop Beta", "pros": ["more ram"], "cons": ["pricier"], "price": 30000, "cpu": "AMD Ryzen 7", "ram_gb": 32, "storage_gb": 1000, "screen_inch": 16, "battery_wh": null, "rating": 4.6}
		],
		"summary": {"tldr": "Beta wins on specs, Alpha on price.", "value_for_money": "average"}
	}`}
	app := newTestApp(t, model)

	resp, raw := doJSON(t, app, "POST", "/api/ai/compare", `{"productIds": ["l1", "l2"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.CompareResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Len(t, body.Comparison, 2)
	assert.NotEmpty(t, body.RequestId)
}
