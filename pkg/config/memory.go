package config

import "time"

type MemoryBackend string

const (
	MemoryBackendHindsight MemoryBackend = "hindsight"
	MemoryBackendLocal     MemoryBackend = "local"
	MemoryBackendInMemory  MemoryBackend = "inmemory"
)

type MemoryConfig struct {
	Backend            MemoryBackend
	HindsightBaseURL   string
	HindsightAPIKey    string
	HindsightTimeout   time.Duration
	RuleLookupLimit    int
	EmbeddingCacheSize int64
	CompanyID          string
	EnterpriseMode     bool
}

type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	EmbeddingModel string
}

type ConsentStore string

const (
	ConsentStoreMemory   ConsentStore = "memory"
	ConsentStorePostgres ConsentStore = "postgres"
	ConsentStoreRedis    ConsentStore = "redis"
)

type ConsentConfig struct {
	Store ConsentStore
}

func loadMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Backend:            MemoryBackend(getEnv("MEMORY_BACKEND", string(MemoryBackendHindsight))),
		HindsightBaseURL:   getEnv("HINDSIGHT_BASE_URL", "http://localhost:8888"),
		HindsightAPIKey:    getEnv("HINDSIGHT_API_KEY", ""),
		HindsightTimeout:   getEnvDuration("HINDSIGHT_TIMEOUT", 30*time.Second),
		RuleLookupLimit:    getEnvInt("MEMORY_RULE_LOOKUP_LIMIT", 20),
		EmbeddingCacheSize: int64(getEnvInt("MEMORY_EMBEDDING_CACHE_SIZE", 10000)),
		CompanyID:          getEnv("COMPANY_ID", "default-company"),
		EnterpriseMode:     getEnvBool("USE_ENTERPRISE_MODE", false),
	}
}

func loadOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		APIKey:         getEnv("OPENAI_API_KEY", ""),
		BaseURL:        getEnv("OPENAI_BASE_URL", ""),
		Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
	}
}

func loadConsentConfig() ConsentConfig {
	return ConsentConfig{
		Store: ConsentStore(getEnv("CONSENT_STORE", string(ConsentStoreMemory))),
	}
}
