// Package audit keeps a JSONL trail of every model invocation. Events flow
// through an in-process watermill bus so recording never blocks or fails a
// user request; a subscriber appends them to per-day files.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"machinity-be/pkg/llm"
)

// TopicAIInvocation carries request/response events for model calls.
const TopicAIInvocation = "ai.invocation"

type Event struct {
	Ts          time.Time     `json:"ts"`
	Kind        string        `json:"kind"` // "request" or "response"
	Model       string        `json:"model,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"maxTokens,omitempty"`
	Messages    []llm.Message `json:"messages,omitempty"`
	Reply       string        `json:"reply,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// Provider decorates an llm.LLMProvider, publishing one request event before
// and one response event after each call. Publish failures are swallowed:
// the audit trail must never take a user request down with it.
type Provider struct {
	inner llm.LLMProvider
	pub   message.Publisher
}

var _ llm.LLMProvider = &Provider{}

func NewProvider(inner llm.LLMProvider, pub message.Publisher) *Provider {
	return &Provider{inner: inner, pub: pub}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{}, opts...)

	p.publish(Event{
		Ts:          time.Now(),
		Kind:        "request",
		Model:       options.Model,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		Messages:    history,
	})

	reply, err := p.inner.Chat(ctx, history, opts...)

	ev := Event{
		Ts:    time.Now(),
		Kind:  "response",
		Model: options.Model,
		Reply: reply,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	p.publish(ev)

	return reply, err
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *Provider) publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_ = p.pub.Publish(TopicAIInvocation, message.NewMessage(watermill.NewUUID(), payload))
}
