package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/logging"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	VCI         VCIConfig
	Logging     logging.Config
	CORS        CORSConfig
	Assumptions model.Assumptions
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// VCIConfig holds the market-data provider configuration
type VCIConfig struct {
	BaseURL          string
	SecondaryBaseURL string // optional second trading source; empty disables it
	Timeout          time.Duration
	RateLimit        int // requests per second
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("VCI_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid VCI_TIMEOUT: %w", err)
	}
	rateLimit, err := strconv.Atoi(getEnv("VCI_RATE_LIMIT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid VCI_RATE_LIMIT: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		VCI: VCIConfig{
			BaseURL:          getEnv("VCI_BASE_URL", "http://localhost:8001"),
			SecondaryBaseURL: getEnv("VCI_SECONDARY_BASE_URL", ""),
			Timeout:          timeout,
			RateLimit:        rateLimit,
		},
		Logging: logging.Config{
			Level:          getEnv("LOG_LEVEL", "INFO"),
			Format:         getEnv("LOG_FORMAT", "json"),
			TracingEnabled: getEnv("LOG_TRACING_ENABLED", "false") == "true",
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Assumptions: model.DefaultAssumptions(),
	}

	if path := getEnv("ASSUMPTIONS_FILE", ""); path != "" {
		a, err := LoadAssumptions(path)
		if err != nil {
			return nil, err
		}
		config.Assumptions = a
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// LoadAssumptions reads default valuation assumptions from a YAML file.
// Keys absent from the file keep the built-in defaults; a model_weights
// mapping in the file replaces the default weights entirely.
func LoadAssumptions(path string) (model.Assumptions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Assumptions{}, fmt.Errorf("read assumptions file: %w", err)
	}

	defaults := model.DefaultAssumptions()
	a := defaults
	a.ModelWeights = nil
	if err := yaml.Unmarshal(b, &a); err != nil {
		return model.Assumptions{}, fmt.Errorf("parse assumptions file: %w", err)
	}
	if a.ModelWeights == nil {
		a.ModelWeights = defaults.ModelWeights
	}
	return a, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
