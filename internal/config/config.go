package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Ops      OperationConfig
	Search   SearchConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI      string
	Gemini      string
	Jina        string
	HuggingFace string
	EmbedTopic  string // Chunk embedding topic
}

type AIConfig struct {
	EmbeddingProvider string // "ollama", "openai", "gemini", "jina"
	EmbeddingModel    string
	EmbeddingDim      int
	OllamaBaseURL     string
	OpenAIBaseURL     string
	LLMProvider       string // "ollama", "openai", "huggingface"
	LLMModel          string // e.g. "llama3", "qwen2.5"
}

type OperationConfig struct {
	TTLMinutes int // staged operation lifetime, also the undo window
}

type SearchConfig struct {
	TopK            int
	MaxResults      int
	SimilarityFloor float64
	MMRLambda       float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI:      getEnv("OPENAI_API_KEY", ""),
			Gemini:      getEnv("GEMINI_API_KEY", ""),
			Jina:        getEnv("JINA_API_KEY", ""),
			HuggingFace: getEnv("HF_API_KEY", ""),
			EmbedTopic:  getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT_CONTENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingDim:      getEnvAsInt("EMBEDDING_DIM", 768),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
		},
		Ops: OperationConfig{
			TTLMinutes: getEnvAsInt("OPERATION_TTL_MINUTES", 10),
		},
		Search: SearchConfig{
			TopK:            getEnvAsInt("SEARCH_TOP_K", 20),
			MaxResults:      getEnvAsInt("SEARCH_MAX_RESULTS", 5),
			SimilarityFloor: getEnvAsFloat("SEARCH_SIMILARITY_FLOOR", 0.4),
			MMRLambda:       getEnvAsFloat("SEARCH_MMR_LAMBDA", 0.9),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
