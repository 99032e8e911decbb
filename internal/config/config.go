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
	Auth     AuthConfig
	Google   GoogleConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Topics   TopicConfig
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
	OtelEnabled        bool
	OtelEndpoint       string
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	TokenInfoURL string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	Voyage      string
	HuggingFace string
	AssemblyAI  string
	Jina        string
	OpenAI      string
}

type AIConfig struct {
	EmbeddingProvider     string // "voyage", "ollama" or "jina"
	EmbeddingModel        string
	OllamaBaseURL         string
	OllamaModel           string
	SummarizerProvider    string // "huggingface" or "llm"
	SummarizationModel    string
	ClassificationModel   string
	LLMProvider           string // "ollama", "huggingface", "openai"
	LLMModel              string
	SummaryChatModel      string
	TranscriptionProvider string // "assemblyai" or "openai"
	PollInterval          time.Duration
	MaxPollAttempts       int
	MaxUploadBytes        int
	QueryCacheTTL         time.Duration
}

type TopicConfig struct {
	ReembedNote string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("NODE_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ORIGIN", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			OtelEnabled:        getEnv("OTEL_ENABLED", "false") == "true",
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
			AccessTokenExpiry:  getEnvAsDuration("ACCESS_TOKEN_EXPIRY", 24*time.Hour),
			RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
			RefreshTokenExpiry: getEnvAsDuration("REFRESH_TOKEN_EXPIRY", 10*24*time.Hour),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:8000/api/v1/auth/google/callback"),
			TokenInfoURL: getEnv("GOOGLE_TOKENINFO_URL", "https://oauth2.googleapis.com/tokeninfo"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "SmartNotes"),
		},
		Keys: APIKeys{
			Voyage:      getEnv("VOYAGE_API_KEY", ""),
			HuggingFace: getEnv("HF_API_KEY", ""),
			AssemblyAI:  getEnv("ASSEMBLYAI_API_KEY", ""),
			Jina:        getEnv("JINA_API_KEY", ""),
			OpenAI:      getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:     getEnv("EMBEDDING_PROVIDER", "voyage"),
			EmbeddingModel:        getEnv("EMBEDDING_MODEL", "voyage-lite-02-instruct"),
			OllamaBaseURL:         getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:           getEnv("OLLAMA_EMBEDDING_MODEL", "mxbai-embed-large"),
			SummarizerProvider:    getEnv("SUMMARIZER_PROVIDER", "huggingface"),
			SummarizationModel:    getEnv("SUMMARIZATION_MODEL", "facebook/bart-large-cnn"),
			ClassificationModel:   getEnv("CLASSIFICATION_MODEL", "facebook/bart-large-mnli"),
			LLMProvider:           getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:              getEnv("LLM_MODEL", "llama3"),
			SummaryChatModel:      getEnv("SUMMARY_LLM_MODEL", ""),
			TranscriptionProvider: getEnv("TRANSCRIPTION_PROVIDER", "assemblyai"),
			PollInterval:          getEnvAsDuration("TRANSCRIPTION_POLL_INTERVAL", 3*time.Second),
			MaxPollAttempts:       getEnvAsInt("TRANSCRIPTION_MAX_POLL_ATTEMPTS", 100),
			MaxUploadBytes:        getEnvAsInt("MAX_UPLOAD_BYTES", 25*1024*1024),
			QueryCacheTTL:         getEnvAsDuration("QUERY_EMBEDDING_CACHE_TTL", 24*time.Hour),
		},
		Topics: TopicConfig{
			ReembedNote: getEnv("REEMBED_NOTE_TOPIC_NAME", "REEMBED_NOTE"),
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

// getEnvAsDuration accepts Go durations ("15m") and the "1d"/"10d" day form.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if n := len(strValue); n > 1 && strValue[n-1] == 'd' {
		if days, err := strconv.Atoi(strValue[:n-1]); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	return fallback
}
