package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	Ai    AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type StoreConfig struct {
	Backend      string // "json" or "postgres"
	Connection   string
	ProductsFile string
}

type AIConfig struct {
	LLMProvider       string // "openrouter" or "ollama"
	LLMModel          string
	OpenRouterBaseURL string
	OpenRouterAPIKey  string
	OllamaBaseURL     string
	AuditLogDir       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Store: StoreConfig{
			Backend:      getEnv("STORE_BACKEND", "json"),
			Connection:   getEnv("DB_CONNECTION_STRING", ""),
			ProductsFile: getEnv("PRODUCTS_FILE", "data/products.json"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openrouter"),
			LLMModel:          getEnv("LLM_MODEL", "deepseek/deepseek-chat-v3-0324:free"),
			OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			AuditLogDir:       getEnv("AI_AUDIT_LOG_DIR", "ai-logs"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
