package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Reply    ReplyConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	JWTSecret    string
	OpenAI       string
	GoogleGemini string
	HuggingFace  string
}

type AIConfig struct {
	LLMProvider        string // openai | gemini | ollama | huggingface
	LLMModel           string // empty means provider default
	OllamaBaseURL      string
	HuggingFaceBaseURL string
	TimeoutSeconds     int
}

type ReplyConfig struct {
	StrictLabels    bool
	DraftTTLMinutes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:        getEnv("LLM_PROVIDER", "openai"),
			LLMModel:           getEnv("LLM_MODEL", ""),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceBaseURL: getEnv("HUGGINGFACE_BASE_URL", ""),
			TimeoutSeconds:     getEnvAsInt("LLM_TIMEOUT_SECONDS", 30),
		},
		Reply: ReplyConfig{
			StrictLabels:    getEnvAsBool("PARSER_STRICT_LABELS", false),
			DraftTTLMinutes: getEnvAsInt("REPLY_DRAFT_TTL_MINUTES", 30),
		},
	}
}

func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c ReplyConfig) DraftTTL() time.Duration {
	return time.Duration(c.DraftTTLMinutes) * time.Minute
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
