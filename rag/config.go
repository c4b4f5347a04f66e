// Package rag holds the process-level configuration for the retrieval
// pipeline and the HTTP service.
package rag

import (
	"os"
	"strconv"
)

// Config collects every recognized option. Values come from environment
// variables (a .env file is loaded by the entrypoints via godotenv) with
// working defaults for local use.
type Config struct {
	// HTTP server
	Addr string

	// Corpus and index
	DocsDir      string
	IndexPath    string
	ChunkSize    int
	ChunkOverlap int
	TopK         int

	// Embedding model (OpenAI-compatible endpoint)
	EmbeddingModel   string
	EmbeddingAPIKey  string
	EmbeddingBaseURL string
	EmbeddingDim     int

	// Generation model
	Provider     string // "openai" (any OpenAI-compatible endpoint) or "gemini"
	Model        string
	APIKey       string
	BaseURL      string
	GeminiAPIKey string
	GeminiModel  string

	// Session store
	SessionBackend string // "memory" or "redis"
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Addr: getEnvString("ADDR", ":8000"),

		DocsDir:      getEnvString("DOCS_DIR", "docs"),
		IndexPath:    getEnvString("INDEX_PATH", "data/index.json"),
		ChunkSize:    getEnvInt("CHUNK_SIZE", 800),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 100),
		TopK:         getEnvInt("TOP_K", 3),

		EmbeddingModel:   getEnvString("EMBEDDING_MODEL", "embedding-3"),
		EmbeddingAPIKey:  os.Getenv("EMBEDDING_MODEL_API_KEY"),
		EmbeddingBaseURL: os.Getenv("EMBEDDING_MODEL_BASE_URL"),
		EmbeddingDim:     getEnvInt("EMBEDDING_DIM", 0),

		Provider:     getEnvString("MODEL_PROVIDER", "openai"),
		Model:        os.Getenv("MODEL"),
		APIKey:       os.Getenv("API_KEY"),
		BaseURL:      os.Getenv("BASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),

		SessionBackend: getEnvString("SESSION_BACKEND", "memory"),
		RedisAddr:      getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
	}
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
