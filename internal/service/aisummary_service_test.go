package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"machinity-be/internal/entity"
	"machinity-be/internal/pkg/serverutils"
)

func summaryTestProducts() []entity.Product {
	return []entity.Product{
		{Id: "p1", Name: "Laptop One", Category: "laptop", Brand: "Asus", Price: 20000, Rating: fptr(4.3), RamGb: iptr(16), Cpu: sptr("Intel Core i5")},
		{Id: "p2", Name: "Laptop Two", Category: "laptop", Brand: "Lenovo", Price: 30000, Rating: fptr(4.6), RamGb: iptr(32), Cpu: sptr("—")},
	}
}

const validSummaryReply = `{
	"item": {
		"id": "p1", "name": "Laptop One", "price": 20000, "cpu": "Intel Core i5",
		"ram_gb": 16, "storage_gb": null, "screen_inch": null, "battery_wh": null, "rating": 4.3,
		"pros": ["good price", "solid cpu"],
		"cons": ["average battery"]
	},
	"summary": {"tldr": "A balanced mid-range laptop.", "value_for_money": "good"}
}`

const validCompareReply = `{
	"comparison": [
		{"id": "p1", "name": "Laptop One", "price": 20000, "cpu": "Intel Core i5", "ram_gb": 16, "storage_gb": null, "screen_inch": null, "battery_wh": null, "rating": 4.3, "pros": ["cheaper"], "cons": ["less ram"]},
		{"id": "p2", "name": "Laptop Two", "price": 30000, "cpu": null, "ram_gb": 32, "storage_gb": null, "screen_inch": null, "battery_wh": null, "rating": 4.6, "pros": ["more ram"], "cons": ["pricier"]}
	],
	"summary": {"tldr": "Two beats One on specs, One on price.", "value_for_money": "average"}
}`

func newTestSummaryService(repo *fakeProductRepo, model *fakeLLM) IAISummaryService {
	return NewAISummaryService(repo, model, nopLogger{})
}

func assertKind(t *testing.T, err error, kind serverutils.Kind) *serverutils.AppError {
	t.Helper()
	var appErr *serverutils.AppError
	if !assert.ErrorAs(t, err, &appErr) {
		return nil
	}
	assert.Equal(t, kind, appErr.Kind)
	assert.NotEmpty(t, appErr.RequestId, "AI errors must carry a request id")
	return appErr
}

func TestSummarizeCardinality(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}
	model := &fakeLLM{reply: validSummaryReply}
	svc := newTestSummaryService(repo, model)

	for _, ids := range [][]string{nil, {}, {"p1", "p2"}} {
		_, err := svc.Summarize(context.Background(), ids)
		assertKind(t, err, serverutils.KindValidation)
	}
	assert.Equal(t, 0, model.calls, "no model call on invalid input")
	assert.Equal(t, 0, repo.findByIdN)
}

func TestSummarizeNotFoundBeforeModelCall(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}
	model := &fakeLLM{reply: validSummaryReply}
	svc := newTestSummaryService(repo, model)

	_, err := svc.Summarize(context.Background(), []string{"ghost"})
	assertKind(t, err, serverutils.KindNotFound)
	assert.Equal(t, 0, model.calls)
}

func TestSummarizeSuccess(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}
	model := &fakeLLM{reply: validSummaryReply}
	svc := newTestSummaryService(repo, model)

	res, err := svc.Summarize(context.Background(), []string{"p1"})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.RequestId)
	assert.Equal(t, "Laptop One", res.Item.Name)
	assert.Len(t, res.Item.Pros, 2)
	assert.Equal(t, "good", res.Summary.ValueForMoney)
}

func TestSummarizeInvalidJsonIsUpstream(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}
	model := &fakeLLM{reply: "I think this laptop is pretty good!"}
	svc := newTestSummaryService(repo, model)

	_, err := svc.Summarize(context.Background(), []string{"p1"})
	assertKind(t, err, serverutils.KindUpstream)
}

func TestSummarizeSchemaViolationIsUpstream(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}

	longTldr := strings.Repeat("x", 300)
	cases := []string{
		// tldr over limit
		`{"item": {"id": "p1", "name": "Laptop One", "pros": [], "cons": []}, "summary": {"tldr": "` + longTldr + `", "value_for_money": "good"}}`,
		// too many pros
		`{"item": {"id": "p1", "name": "Laptop One", "pros": ["a","b","c","d","e","f"], "cons": []}, "summary": {"tldr": "ok", "value_for_money": "good"}}`,
		// missing name
		`{"item": {"id": "p1", "name": "", "pros": [], "cons": []}, "summary": {"tldr": "ok", "value_for_money": "good"}}`,
	}
	for _, reply := range cases {
		svc := newTestSummaryService(repo, &fakeLLM{reply: reply})
		_, err := svc.Summarize(context.Background(), []string{"p1"})
		assertKind(t, err, serverutils.KindUpstream)
	}
}

func TestSummarizeUnknownValueForMoneyDefaultsToAverage(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}
	reply := `{"item": {"id": "p1", "name": "Laptop One", "pros": [], "cons": []}, "summary": {"tldr": "ok", "value_for_money": "amazing"}}`
	svc := newTestSummaryService(repo, &fakeLLM{reply: reply})

	res, err := svc.Summarize(context.Background(), []string{"p1"})
	assert.NoError(t, err)
	assert.Equal(t, "average", res.Summary.ValueForMoney)
}

func TestSummarizePromptOmitsPlaceholderCpu(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}
	model := &fakeLLM{reply: validSummaryReply}
	svc := newTestSummaryService(repo, model)

	// p2 carries the "—" placeholder; the model payload must say null
	_, err := svc.Summarize(context.Background(), []string{"p2"})
	assert.NoError(t, err)
	user := model.lastMsgs[1].Content
	assert.Contains(t, user, `"cpu": null`)
	assert.NotContains(t, user, "—")
}

func TestCompareCardinality(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}
	model := &fakeLLM{reply: validCompareReply}
	svc := newTestSummaryService(repo, model)

	for _, ids := range [][]string{nil, {"p1"}, {"p1", "p2", "p1"}} {
		_, err := svc.Compare(context.Background(), ids)
		assertKind(t, err, serverutils.KindValidation)
	}
	assert.Equal(t, 0, model.calls)
}

func TestCompareNotFound(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}
	model := &fakeLLM{reply: validCompareReply}
	svc := newTestSummaryService(repo, model)

	_, err := svc.Compare(context.Background(), []string{"p1", "ghost"})
	assertKind(t, err, serverutils.KindNotFound)
	assert.Equal(t, 0, model.calls)
}

func TestCompareSuccess(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}
	model := &fakeLLM{reply: validCompareReply}
	svc := newTestSummaryService(repo, model)

	res, err := svc.Compare(context.Background(), []string{"p1", "p2"})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.RequestId)
	assert.Len(t, res.Comparison, 2)
	assert.Equal(t, "Laptop One", res.Comparison[0].Name)
	assert.Equal(t, "Laptop Two", res.Comparison[1].Name)
}

func TestCompareWrongArityFromModelIsUpstream(t *testing.T) {
	repo := &fakeProductRepo{products: summaryTestProducts()}
	reply := `{
		"comparison": [
			{"id": "p1", "name": "Laptop One", "pros": [], "cons": []}
		],
		"summary": {"tldr": "only one came back", "value_for_money": "average"}
	}`
	svc := newTestSummaryService(repo, &fakeLLM{reply: reply})

	_, err := svc.Compare(context.Background(), []string{"p1", "p2"})
	assertKind(t, err, serverutils.KindUpstream)
}
