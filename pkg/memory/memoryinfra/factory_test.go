package memoryinfra

import (
	"testing"
	"time"

	"github.com/aidul23/agent-mem/pkg/config"
)

func TestNewBackend(t *testing.T) {
	aiCfg := config.OpenAIConfig{APIKey: "test", EmbeddingModel: "text-embedding-3-small"}

	tests := []struct {
		name    string
		backend config.MemoryBackend
		check   func(any) bool
		wantErr bool
	}{
		{"hindsight", config.MemoryBackendHindsight, func(b any) bool { _, ok := b.(*HindsightClient); return ok }, false},
		{"local", config.MemoryBackendLocal, func(b any) bool { _, ok := b.(*ChromemBackend); return ok }, false},
		{"inmemory", config.MemoryBackendInMemory, func(b any) bool { _, ok := b.(*InMemoryBackend); return ok }, false},
		{"unknown", "sqlite", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memCfg := config.MemoryConfig{
				Backend:            tt.backend,
				HindsightBaseURL:   "http://localhost:8888",
				HindsightTimeout:   time.Second,
				EmbeddingCacheSize: 100,
			}
			backend, closeFn, err := NewBackend(memCfg, aiCfg)
			defer closeFn()

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend: %v", err)
			}
			if !tt.check(backend) {
				t.Errorf("backend type = %T", backend)
			}
		})
	}
}
