package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	SMTP       SMTPConfig
	Keys       APIKeys
	Ai         AIConfig
	Monitoring MonitoringConfig
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

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	Prokerala            string
	ProkeralaSecret      string
	OpenAI               string
	GoogleGemini         string
	MidtransServerKey    string
	MidtransIsProduction bool
	MonitorTopic         string // Watermill topic for monitoring events
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama", "openai"
	LLMModel          string // e.g. "llama3", "gpt-4o-mini"
	AstrologyBaseURL  string
	ProviderTimeout   int // Seconds for outbound provider calls
}

type MonitoringConfig struct {
	ScoreThreshold   float64 // Below this, a call is flagged as silent failure
	ValidatorTimeout int     // Seconds for the detached validation task
	RetentionDays    int     // Validation records older than this get pruned
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
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "SpiritGuide"),
		},
		Keys: APIKeys{
			Prokerala:            getEnv("PROKERALA_CLIENT_ID", ""),
			ProkeralaSecret:      getEnv("PROKERALA_CLIENT_SECRET", ""),
			OpenAI:               getEnv("OPENAI_API_KEY", ""),
			GoogleGemini:         getEnv("GOOGLE_GEMINI_API_KEY", ""),
			MidtransServerKey:    getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransIsProduction: getEnvAsBool("MIDTRANS_IS_PRODUCTION", false),
			MonitorTopic:         getEnv("MONITOR_EVENT_TOPIC_NAME", "INTEGRATION_MONITOR"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			AstrologyBaseURL:  getEnv("ASTROLOGY_BASE_URL", "https://api.prokerala.com"),
			ProviderTimeout:   getEnvAsInt("PROVIDER_TIMEOUT_SECONDS", 30),
		},
		Monitoring: MonitoringConfig{
			ScoreThreshold:   getEnvAsFloat("MONITOR_SCORE_THRESHOLD", 0.65),
			ValidatorTimeout: getEnvAsInt("MONITOR_VALIDATOR_TIMEOUT_SECONDS", 20),
			RetentionDays:    getEnvAsInt("MONITOR_RETENTION_DAYS", 30),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
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
