package factory

import (
	"fmt"

	"machinity-be/pkg/llm"
	"machinity-be/pkg/llm/ollama"
	"machinity-be/pkg/llm/openrouter"
)

// Settings carries provider-specific wiring from config.
type Settings struct {
	ModelName string

	OpenRouterBaseURL string
	OpenRouterAPIKey  string
	Referer           string
	Title             string

	OllamaBaseURL string
}

func NewLLMProvider(providerType string, s Settings) (llm.LLMProvider, error) {
	switch providerType {
	case "openrouter":
		return openrouter.NewOpenRouterProvider(
			s.OpenRouterBaseURL,
			s.OpenRouterAPIKey,
			s.ModelName,
			s.Referer,
			s.Title,
		), nil
	case "ollama":
		baseURL := s.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.ModelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
