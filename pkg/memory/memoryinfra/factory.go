package memoryinfra

import (
	"fmt"

	"github.com/aidul23/agent-mem/pkg/ai/embedding"
	aiopenai "github.com/aidul23/agent-mem/pkg/ai/providers/openai"
	"github.com/aidul23/agent-mem/pkg/config"
	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/aidul23/agent-mem/pkg/memory"
)

// NewBackend builds the backend selected by MEMORY_BACKEND. The returned
// close func releases what the backend holds and is never nil.
func NewBackend(memCfg config.MemoryConfig, aiCfg config.OpenAIConfig) (memory.Backend, func(), error) {
	noop := func() {}

	switch memCfg.Backend {
	case config.MemoryBackendHindsight:
		logx.Infof("Memory backend: hindsight (%s)", memCfg.HindsightBaseURL)
		return NewHindsightClient(memCfg.HindsightBaseURL, memCfg.HindsightAPIKey, memCfg.HindsightTimeout), noop, nil

	case config.MemoryBackendLocal:
		provider := aiopenai.NewOpenAIProvider(aiCfg.APIKey, aiCfg.BaseURL, aiCfg.EmbeddingModel)
		cached, err := embedding.NewCachedEmbedder(provider, memCfg.EmbeddingCacheSize)
		if err != nil {
			return nil, noop, fmt.Errorf("embedding cache: %w", err)
		}
		logx.Infof("Memory backend: local (embeddings: %s)", aiCfg.EmbeddingModel)
		return NewChromemBackend(cached), cached.Close, nil

	case config.MemoryBackendInMemory:
		logx.Warn("Memory backend: inmemory, nothing survives a restart")
		return NewInMemoryBackend(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown memory backend %q", memCfg.Backend)
	}
}
