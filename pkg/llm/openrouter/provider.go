package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"machinity-be/pkg/llm"
)

// OpenRouterProvider talks to the OpenRouter chat-completions endpoint.
// Referer and Title are optional attribution headers OpenRouter recommends.
type OpenRouterProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Referer   string
	Title     string
	Client    *http.Client
}

var _ llm.LLMProvider = &OpenRouterProvider{}

func NewOpenRouterProvider(baseURL, apiKey, modelName, referer, title string) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &OpenRouterProvider{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Referer:   referer,
		Title:     title,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (o *OpenRouterProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if o.APIKey == "" {
		return "", fmt.Errorf("openrouter: API key is not configured")
	}

	options := llm.Apply(llm.Options{Temperature: 0.2}, opts...)

	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = chatMessage{Role: role, Content: msg.Content}
	}

	payload, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.BaseURL+"/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if o.Referer != "" {
		req.Header.Set("HTTP-Referer", o.Referer)
	}
	if o.Title != "" {
		req.Header.Set("X-Title", o.Title)
	}

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openrouter error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openrouter: empty choices in response")
	}

	return parsed.Choices[0].Message.Content, nil
}

func (o *OpenRouterProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return o.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
