package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Evaluation mode constants
const (
	EvalModeFast       = "fast"
	EvalModeProduction = "production"
)

type Config struct {
	Port        string
	DBUrl       string
	JWTSecret   string
	FrontendURL string
	// SMTP Configuration (Brevo)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Evaluation Pipeline Configuration
	EvalMode             string // fast | production
	EvalBatchSize        int
	EvalTickInterval     time.Duration
	EvalInitialDelayMax  time.Duration // upper bound for the randomized first-evaluation delay
	EvalRetryDelayMax    time.Duration // upper bound for the randomized retry backoff
	// Gemini Configuration
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@unhired.dev"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Evaluation Pipeline Configuration
		EvalMode:            getEnv("EVAL_MODE", EvalModeProduction),
		EvalBatchSize:       getEnvInt("EVAL_BATCH_SIZE", 10),
		EvalTickInterval:    time.Duration(getEnvInt("EVAL_TICK_SECONDS", 5)) * time.Second,
		EvalInitialDelayMax: time.Duration(getEnvInt("EVAL_INITIAL_DELAY_MAX_MINUTES", 360)) * time.Minute,
		EvalRetryDelayMax:   time.Duration(getEnvInt("EVAL_RETRY_DELAY_MAX_MINUTES", 45)) * time.Minute,
		// Gemini Configuration
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL: strings.TrimRight(getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"), "/"),
	}

	if cfg.EvalMode != EvalModeFast && cfg.EvalMode != EvalModeProduction {
		log.Printf("WARNING: unknown EVAL_MODE %q, falling back to %q", cfg.EvalMode, EvalModeProduction)
		cfg.EvalMode = EvalModeProduction
	}

	// Basic validation to prevent strange panics later
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not configured. Application evaluation will be disabled.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
