// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

type Config struct {
	Environment string
	Server      ServerConfig
	AI          AIConfig
	Planner     PlannerConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI-compatible alternate vendor (SiliconFlow and friends).
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	Temperature     float64
	MaxOutputTokens int
	RequestTimeout  int // seconds, per provider call
}

type PlannerConfig struct {
	// StrictCompatibility drops items that violate the budget-tier or
	// ecosystem rules after enrichment instead of trusting the model to
	// follow the prompt.
	StrictCompatibility bool
	MaxUploadBytes      int64
	DefaultLanguage     string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 120),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		AI: AIConfig{
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
			OpenAIModel:     getEnv("OPENAI_MODEL", "deepseek-ai/DeepSeek-V3"),
			Temperature:     getEnvAsFloat("AI_TEMPERATURE", 0.2),
			MaxOutputTokens: getEnvAsInt("AI_MAX_OUTPUT_TOKENS", 8192),
			RequestTimeout:  getEnvAsInt("AI_REQUEST_TIMEOUT", 90),
		},
		Planner: PlannerConfig{
			StrictCompatibility: getEnvAsBool("PLANNER_STRICT_COMPATIBILITY", false),
			MaxUploadBytes:      int64(getEnvAsInt("PLANNER_MAX_UPLOAD_BYTES", 5<<20)),
			DefaultLanguage:     getEnv("PLANNER_DEFAULT_LANGUAGE", "en"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.AI.GeminiAPIKey == "" && c.AI.OpenAIAPIKey == "" {
		return fmt.Errorf("no AI credential configured: set GEMINI_API_KEY or OPENAI_API_KEY")
	}
	return nil
}

// Provider picks the backend from which credential is present. Gemini
// wins when both are configured.
func (c *AIConfig) Provider() Provider {
	if c.GeminiAPIKey != "" {
		return ProviderGemini
	}
	return ProviderOpenAI
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
