package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Keys     APIKeys
	Ai       AIConfig
	Store    StoreConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LLMTraceLogPath    string
	AuditLogPath       string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	ThreadCleanupTopic string
	ChatTimeoutSeconds int
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret            string
	SessionTokenTTLHours int
}

type APIKeys struct {
	OpenAI       string
	Groq         string
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider          string // "ollama", "openai", "groq", "gemini"
	LLMModel             string
	LLMBaseURL           string
	LLMTemperature       float64
	LLMStrictSchema      bool
	EmbeddingProvider    string // "ollama" or "gemini"
	OllamaBaseURL        string
	OllamaEmbeddingModel string
	GeminiEmbeddingModel string
	RetrievalTopK        int
}

type StoreConfig struct {
	Backend           string // "postgres", "redis" or "memory"
	StateTTLHours     int
	IdleThreadHours   int
	SweepIntervalMins int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMTraceLogPath:    getEnv("LLM_TRACE_LOG_PATH", "logs/llm_trace.log"),
			AuditLogPath:       getEnv("AUDIT_LOG_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ThreadCleanupTopic: getEnv("THREAD_CLEANUP_TOPIC", "THREAD_CLEANUP"),
			ChatTimeoutSeconds: getEnvAsInt("CHAT_TIMEOUT_SECONDS", 120),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:            getEnv("JWT_SECRET", ""),
			SessionTokenTTLHours: getEnvAsInt("SESSION_TOKEN_TTL_HOURS", 24),
		},
		Keys: APIKeys{
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			Groq:         getEnv("GROQ_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:          strings.ToLower(getEnv("LLM_PROVIDER", "ollama")),
			LLMModel:             getEnv("LLM_MODEL", "qwen2.5"),
			LLMBaseURL:           getEnv("LLM_BASE_URL", ""),
			LLMTemperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.01),
			LLMStrictSchema:      getEnvAsBool("LLM_STRICT_SCHEMA", false),
			EmbeddingProvider:    strings.ToLower(getEnv("EMBEDDING_PROVIDER", "ollama")),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			RetrievalTopK:        getEnvAsInt("RETRIEVAL_TOP_K", 5),
		},
		Store: StoreConfig{
			Backend:           strings.ToLower(getEnv("STATE_STORE", "postgres")),
			StateTTLHours:     getEnvAsInt("STATE_TTL_HOURS", 72),
			IdleThreadHours:   getEnvAsInt("IDLE_THREAD_HOURS", 24),
			SweepIntervalMins: getEnvAsInt("IDLE_SWEEP_INTERVAL_MINUTES", 30),
		},
	}
}

// LLMAPIKey returns the key matching the configured text-generation provider.
func (c *Config) LLMAPIKey() string {
	switch c.Ai.LLMProvider {
	case "openai":
		return c.Keys.OpenAI
	case "groq":
		return c.Keys.Groq
	case "gemini":
		return c.Keys.GoogleGemini
	default:
		return ""
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
