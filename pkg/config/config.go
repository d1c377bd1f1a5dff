package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Memory      MemoryConfig
	OpenAI      OpenAIConfig
	Consent     ConsentConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Auth        AuthConfig
	Environment Environment
}

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

func (c Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}
func (c Config) IsStaging() bool {
	return c.Environment == EnvironmentStaging
}
func (c Config) IsProd() bool {
	return c.Environment == EnvironmentProduction
}

func loadEnvironment() Environment {
	env := getEnv("ENVIRONMENT", "development")
	switch strings.ToLower(env) {
	case "production":
		return EnvironmentProduction
	case "staging":
		return EnvironmentStaging
	default:
		return EnvironmentDevelopment
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first; variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server:      loadServerConfig(),
		Memory:      loadMemoryConfig(),
		OpenAI:      loadOpenAIConfig(),
		Consent:     loadConsentConfig(),
		Database:    loadDatabaseConfig(),
		Redis:       loadRedisConfig(),
		Storage:     loadStorageConfig(),
		Auth:        loadAuthConfig(),
		Environment: loadEnvironment(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Memory.Backend {
	case MemoryBackendHindsight, MemoryBackendLocal, MemoryBackendInMemory:
	default:
		return fmt.Errorf("MEMORY_BACKEND must be one of hindsight, local, inmemory (got %q)", c.Memory.Backend)
	}
	if c.Memory.Backend == MemoryBackendHindsight && c.Memory.HindsightBaseURL == "" {
		return fmt.Errorf("HINDSIGHT_BASE_URL is required for the hindsight backend")
	}
	if c.Memory.CompanyID == "" {
		return fmt.Errorf("COMPANY_ID must not be empty")
	}
	if c.Memory.RuleLookupLimit < 1 {
		return fmt.Errorf("MEMORY_RULE_LOOKUP_LIMIT must be positive")
	}

	switch c.Consent.Store {
	case ConsentStoreMemory, ConsentStorePostgres, ConsentStoreRedis:
	default:
		return fmt.Errorf("CONSENT_STORE must be one of memory, postgres, redis (got %q)", c.Consent.Store)
	}

	switch c.Storage.Mode {
	case StorageModeLocal, StorageModeS3:
	default:
		return fmt.Errorf("STORAGE_MODE must be local or s3 (got %q)", c.Storage.Mode)
	}

	if c.Auth.Enabled {
		if c.Auth.JWT.SecretKey == "" {
			return fmt.Errorf("JWT_SECRET_KEY is required when AUTH_ENABLED is set")
		}
		if len(c.Auth.JWT.SecretKey) < 32 {
			return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
		}
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
