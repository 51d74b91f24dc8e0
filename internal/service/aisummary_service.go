package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"machinity-be/internal/dto"
	"machinity-be/internal/entity"
	"machinity-be/internal/pkg/logger"
	"machinity-be/internal/pkg/serverutils"
	"machinity-be/internal/repository/contract"
	"machinity-be/pkg/llm"
)

const summarizeSystemPrompt = `You are a JSON-only generator.

STRICT RULES:
- Output MUST be a single valid JSON object that matches the provided schema.
- No prose, no natural language, no markdown, no explanations.
- If you cannot produce valid JSON, return "{}".
- Do not add any commentary before or after the JSON.

Task:
Given ONE product's structured fields, create a concise technical summary.
Evaluate ONLY using numeric/text fields (price/ram/storage/cpu/screen_inch/battery_wh/rating).
NEVER base the evaluation on the product "name" (it's display-only).`

const compareSystemPrompt = `You are a JSON-only generator.

STRICT RULES:
- Output MUST be a single valid JSON object that matches the provided schema.
- No prose, no natural language, no markdown, no explanations.
- If you cannot produce valid JSON, return "{}".
- Do not add any commentary before or after the JSON.

Task:
Given TWO products' structured fields, produce a concise comparison:
- Return a "comparison" array with two items (one per product) including short pros/cons.
- Return a "summary.tldr" that highlights key trade-offs in max 280 chars.
- Evaluate ONLY using numeric/text fields (price/ram/storage/cpu/screen_inch/battery_wh/rating).
- NEVER base evaluation on the product "name" (display-only).
- IMPORTANT: Always include "name" for each item in "comparison". Set it exactly to the provided product.name. Never leave it empty.`

const (
	summaryMaxLine = 120
	summaryMaxTldr = 280
	compareMaxLine = 200
	compareMaxTldr = 400
	maxProsCons    = 5
)

type IAISummaryService interface {
	Summarize(ctx context.Context, productIds []string) (*dto.SummaryResponse, error)
	Compare(ctx context.Context, productIds []string) (*dto.CompareResponse, error)
}

type aiSummaryService struct {
	repo     contract.IProductRepository
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewAISummaryService(repo contract.IProductRepository, provider llm.LLMProvider, log logger.ILogger) IAISummaryService {
	return &aiSummaryService{
		repo:     repo,
		provider: provider,
		logger:   log,
	}
}

// Summarize produces a structured technical summary of exactly one product.
func (s *aiSummaryService) Summarize(ctx context.Context, productIds []string) (*dto.SummaryResponse, error) {
	requestId := uuid.NewString()

	if len(productIds) != 1 {
		return nil, withRequestId(serverutils.ValidationError("This endpoint summarizes a single product; send exactly 1 id"), requestId)
	}

	product, err := s.lookup(ctx, productIds[0], requestId)
	if err != nil {
		return nil, err
	}

	compact := pickForLLM(product)
	userPrompt := buildSummaryUserPrompt(compact)

	reply, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: summarizeSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, llm.WithTemperature(0.1), llm.WithMaxTokens(600))
	if err != nil {
		s.logger.Error("aisummary_service", "summarize model call failed", map[string]interface{}{"request_id": requestId, "error": err.Error()})
		return nil, withRequestId(serverutils.InternalError("Model call failed", err), requestId)
	}

	var payload dto.AISummaryPayload
	if err := json.Unmarshal([]byte(reply), &payload); err != nil {
		s.logger.Warn("aisummary_service", "model returned invalid JSON", map[string]interface{}{"request_id": requestId, "raw": reply})
		return nil, withRequestId(serverutils.UpstreamError("Model returned invalid JSON"), requestId)
	}

	if !validateItem(&payload.Item, summaryMaxLine) || !validateVerdict(&payload.Summary, summaryMaxTldr) {
		return nil, withRequestId(serverutils.UpstreamError("Model output failed schema validation"), requestId)
	}

	return &dto.SummaryResponse{
		RequestId: requestId,
		Item:      payload.Item,
		Summary:   payload.Summary,
	}, nil
}

// Compare evaluates exactly two products side by side. The two lookups run
// concurrently; both must resolve before the model is called.
func (s *aiSummaryService) Compare(ctx context.Context, productIds []string) (*dto.CompareResponse, error) {
	requestId := uuid.NewString()

	if len(productIds) != 2 {
		return nil, withRequestId(serverutils.ValidationError("This endpoint compares two products; send exactly 2 ids"), requestId)
	}

	type lookupResult struct {
		product *entity.Product
		err     error
	}
	results := make([]lookupResult, 2)
	done := make(chan int, 2)
	for i, id := range productIds {
		go func(i int, id string) {
			p, err := s.repo.FindById(ctx, id)
			results[i] = lookupResult{product: p, err: err}
			done <- i
		}(i, id)
	}
	<-done
	<-done

	for _, r := range results {
		if r.err != nil {
			s.logger.Error("aisummary_service", "product lookup failed", map[string]interface{}{"request_id": requestId, "error": r.err.Error()})
			return nil, withRequestId(serverutils.InternalError("Products could not be loaded", r.err), requestId)
		}
		if r.product == nil {
			return nil, withRequestId(serverutils.NotFoundError("Product(s) not found"), requestId)
		}
	}

	a := pickForLLM(results[0].product)
	b := pickForLLM(results[1].product)
	userPrompt := buildCompareUserPrompt(a, b)

	reply, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: compareSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, llm.WithTemperature(0.1), llm.WithMaxTokens(800))
	if err != nil {
		s.logger.Error("aisummary_service", "compare model call failed", map[string]interface{}{"request_id": requestId, "error": err.Error()})
		return nil, withRequestId(serverutils.InternalError("Model call failed", err), requestId)
	}

	var payload dto.AIComparePayload
	if err := json.Unmarshal([]byte(reply), &payload); err != nil {
		s.logger.Warn("aisummary_service", "model returned invalid JSON", map[string]interface{}{"request_id": requestId, "raw": reply})
		return nil, withRequestId(serverutils.UpstreamError("Model returned invalid JSON"), requestId)
	}

	if len(payload.Comparison) != 2 || !validateVerdict(&payload.Summary, compareMaxTldr) {
		return nil, withRequestId(serverutils.UpstreamError("Model output failed schema validation"), requestId)
	}
	for i := range payload.Comparison {
		if !validateItem(&payload.Comparison[i], compareMaxLine) {
			return nil, withRequestId(serverutils.UpstreamError("Model output failed schema validation"), requestId)
		}
	}

	return &dto.CompareResponse{
		RequestId:  requestId,
		Comparison: payload.Comparison,
		Summary:    payload.Summary,
	}, nil
}

func (s *aiSummaryService) lookup(ctx context.Context, id, requestId string) (*entity.Product, error) {
	product, err := s.repo.FindById(ctx, id)
	if err != nil {
		s.logger.Error("aisummary_service", "product lookup failed", map[string]interface{}{"request_id": requestId, "id": id, "error": err.Error()})
		return nil, withRequestId(serverutils.InternalError("Products could not be loaded", err), requestId)
	}
	if product == nil {
		return nil, withRequestId(serverutils.NotFoundError("Product not found"), requestId)
	}
	return product, nil
}

// pickForLLM projects a product onto the fixed field subset the model is
// allowed to see. Name goes along for display only.
func pickForLLM(p *entity.Product) dto.LlmProduct {
	price := p.Price
	item := dto.LlmProduct{
		Id:         p.Id,
		Name:       p.Name,
		Price:      &price,
		RamGb:      p.RamGb,
		StorageGb:  p.StorageGb,
		ScreenInch: p.ScreenInch,
		BatteryWh:  p.BatteryWh,
		Rating:     p.Rating,
	}
	if cpu, ok := p.CpuValue(); ok {
		item.Cpu = &cpu
	}
	return item
}

func buildSummaryUserPrompt(item dto.LlmProduct) string {
	schemaHint := `{
  "item": {
    "id": "string",
    "name": "string",
    "price": "number|null",
    "cpu": "string|null",
    "ram_gb": "number|null",
    "storage_gb": "number|null",
    "screen_inch": "number|null",
    "battery_wh": "number|null",
    "rating": "number|null",
    "pros": ["short point (<=120 chars)", "... up to 5"],
    "cons": ["short point (<=120 chars)", "... up to 5"]
  },
  "summary": {
    "tldr": "max 280 chars",
    "value_for_money": "poor|average|good|excellent"
  }
}`

	raw, _ := json.MarshalIndent(item, "", "  ")
	return "Produce a single JSON object exactly matching this schema (no extra fields):\n\n" +
		schemaHint +
		"\n\nNotes:\n" +
		"- Evaluate using ONLY technical fields; ignore \"name\" for evaluation logic.\n" +
		"- Keep pros/cons factual and short (no fluff, 3-5 total across each list if possible).\n\n" +
		"Product:\n" + string(raw)
}

func buildCompareUserPrompt(a, b dto.LlmProduct) string {
	schemaHint := `{
  "comparison": [
    {
      "id": "string",
      "name": "string (MUST be the provided product.name)",
      "price": "number|null",
      "cpu": "string|null",
      "ram_gb": "number|null",
      "storage_gb": "number|null",
      "screen_inch": "number|null",
      "battery_wh": "number|null",
      "rating": "number|null",
      "pros": ["short point (<=120 chars)", "... up to 5"],
      "cons": ["short point (<=120 chars)", "... up to 5"]
    },
    {
      "...": "second product: same shape"
    }
  ],
  "summary": {
    "tldr": "max 280 chars",
    "value_for_money": "poor|average|good|excellent"
  }
}`

	raw, _ := json.MarshalIndent(map[string]dto.LlmProduct{"a": a, "b": b}, "", "  ")
	return "Produce a single JSON object exactly matching this schema (no extra fields):\n\n" +
		schemaHint +
		"\n\nNotes:\n" +
		"- Evaluate using ONLY technical fields; ignore \"name\" for evaluation logic.\n" +
		"- For each comparison item, set \"name\" EXACTLY to the given product.name (do not infer, do not omit).\n" +
		"- Keep pros/cons factual and short (3-5 items if possible).\n\n" +
		"Products:\n" + string(raw)
}

// validateItem enforces the shape limits the model was asked for. Missing
// pros/cons default to empty lists rather than failing.
func validateItem(item *dto.ProductSummaryItem, maxLine int) bool {
	if item.Id == "" || item.Name == "" {
		return false
	}
	if item.Pros == nil {
		item.Pros = []string{}
	}
	if item.Cons == nil {
		item.Cons = []string{}
	}
	if len(item.Pros) > maxProsCons || len(item.Cons) > maxProsCons {
		return false
	}
	for _, p := range item.Pros {
		if len([]rune(p)) > maxLine {
			return false
		}
	}
	for _, c := range item.Cons {
		if len([]rune(c)) > maxLine {
			return false
		}
	}
	return true
}

func validateVerdict(v *dto.SummaryVerdict, maxTldr int) bool {
	if len([]rune(v.Tldr)) > maxTldr {
		return false
	}
	switch v.ValueForMoney {
	case "poor", "average", "good", "excellent":
	default:
		v.ValueForMoney = "average"
	}
	return true
}

func withRequestId(err *serverutils.AppError, requestId string) *serverutils.AppError {
	err.RequestId = requestId
	return err
}
