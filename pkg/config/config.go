package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Anthropic ProviderConfig
	OpenAI    ProviderConfig
	Grok      ProviderConfig
	Synthesis SynthesisConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// ProviderConfig holds settings for one LLM provider backend.
// Processed with envconfig under a per-provider prefix (ANTHROPIC_*,
// OPENAI_*, GROK_*). An empty APIKey leaves the provider disabled.
type ProviderConfig struct {
	APIKey    string        `envconfig:"API_KEY"`
	BaseURL   string        `envconfig:"BASE_URL"`
	Model     string        `envconfig:"MODEL"`
	MaxTokens int           `envconfig:"MAX_TOKENS" default:"1024"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"30s"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"10m"`
}

// SynthesisConfig holds tunables for the cross-room synthesis engine
type SynthesisConfig struct {
	MinTranscriptLength int
	SynthesisInterval   time.Duration
	MaxRoomsPerDialogue int
	TopThemeCount       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Synthesis: SynthesisConfig{
			MinTranscriptLength: getEnvAsInt("SYNTHESIS_MIN_TRANSCRIPT_LENGTH", 100),
			SynthesisInterval:   getEnvAsDuration("SYNTHESIS_INTERVAL", "5m"),
			MaxRoomsPerDialogue: getEnvAsInt("SYNTHESIS_MAX_ROOMS", 20),
			TopThemeCount:       getEnvAsInt("SYNTHESIS_TOP_THEMES", 5),
		},
	}

	if err := envconfig.Process("ANTHROPIC", &config.Anthropic); err != nil {
		return nil, err
	}
	if err := envconfig.Process("OPENAI", &config.OpenAI); err != nil {
		return nil, err
	}
	if err := envconfig.Process("GROK", &config.Grok); err != nil {
		return nil, err
	}

	// Provider-specific defaults where the env left them empty
	applyProviderDefaults(&config.Anthropic, "https://api.anthropic.com", "claude-3-5-sonnet-20241022")
	applyProviderDefaults(&config.OpenAI, "https://api.openai.com", "gpt-4o-mini")
	applyProviderDefaults(&config.Grok, "https://api.x.ai", "grok-2-latest")

	return config, nil
}

func applyProviderDefaults(pc *ProviderConfig, baseURL, model string) {
	if pc.BaseURL == "" {
		pc.BaseURL = baseURL
	}
	if pc.Model == "" {
		pc.Model = model
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
