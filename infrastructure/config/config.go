// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion              string
	WordsTable             string
	WordBankTable          string
	UsersTable             string
	FeedbackTable          string
	UsageTable             string
	NotificationLogsTable  string
	EventBusName           string
	MediaBucket            string
	MetricsNamespace       string
	SecretsName            string

	// Lambda configuration
	IsLambda bool

	// Word generation
	UseAIGeneration    bool
	ProviderOrder      []string
	DailyAILimit       int
	RecencyWindowDays  int

	// Provider credentials. Loaded from Secrets Manager in production,
	// environment variables otherwise.
	GroqAPIKey            string
	OpenAIAPIKey          string
	UnsplashAccessKey     string
	MerriamWebsterAPIKey  string
	ForvoAPIKey           string
	BedrockModelID        string

	// Notifications
	SenderEmail string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Logging and features
	LogLevel      string
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),

		WordsTable:            getEnv("WORDS_TABLE", "oneword-daily-words"),
		WordBankTable:         getEnv("WORD_BANK_TABLE", "oneword-word-bank"),
		UsersTable:            getEnv("USERS_TABLE", "oneword-users"),
		FeedbackTable:         getEnv("FEEDBACK_TABLE", "oneword-feedback"),
		UsageTable:            getEnv("USAGE_TABLE", "oneword-ai-usage"),
		NotificationLogsTable: getEnv("NOTIFICATION_LOGS_TABLE", "oneword-notification-logs"),
		EventBusName:          getEnv("EVENT_BUS_NAME", "oneword-events"),
		MediaBucket:           getEnv("MEDIA_BUCKET", ""),
		MetricsNamespace:      getEnv("METRICS_NAMESPACE", "OneWordADay"),
		SecretsName:           getEnv("SECRETS_NAME", ""),

		IsLambda: os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",

		UseAIGeneration:   getEnvBool("USE_AI_GENERATION", true),
		ProviderOrder:     getEnvList("PROVIDER_ORDER", []string{"groq", "openai"}),
		DailyAILimit:      getEnvInt("DAILY_AI_LIMIT", 20),
		RecencyWindowDays: getEnvInt("RECENCY_WINDOW_DAYS", 30),

		GroqAPIKey:           getEnv("GROQ_API_KEY", ""),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		UnsplashAccessKey:    getEnv("UNSPLASH_ACCESS_KEY", ""),
		MerriamWebsterAPIKey: getEnv("MERRIAM_WEBSTER_API_KEY", ""),
		ForvoAPIKey:          getEnv("FORVO_API_KEY", ""),
		BedrockModelID:       getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),

		SenderEmail: getEnv("SENDER_EMAIL", "hello@onewordaday.app"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "oneword-backend"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig.
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" && c.SecretsName == "" {
			return fmt.Errorf("JWT_SECRET or SECRETS_NAME is required in production")
		}
		if c.WordsTable == "" {
			return fmt.Errorf("WORDS_TABLE is required")
		}
		if c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required")
		}
	}
	if c.DailyAILimit < 0 {
		return fmt.Errorf("DAILY_AI_LIMIT must not be negative")
	}
	if c.RecencyWindowDays <= 0 {
		return fmt.Errorf("RECENCY_WINDOW_DAYS must be positive")
	}
	return nil
}

// IsDevelopment checks if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable with a default.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
