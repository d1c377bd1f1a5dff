package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MEMORY_BACKEND", "")
	t.Setenv("CONSENT_STORE", "")
	t.Setenv("STORAGE_MODE", "")
	t.Setenv("AUTH_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Memory.Backend != MemoryBackendHindsight {
		t.Errorf("expected hindsight backend by default, got %s", cfg.Memory.Backend)
	}
	if cfg.Memory.HindsightBaseURL != "http://localhost:8888" {
		t.Errorf("unexpected hindsight url %s", cfg.Memory.HindsightBaseURL)
	}
	if cfg.Memory.RuleLookupLimit != 20 {
		t.Errorf("expected rule lookup limit 20, got %d", cfg.Memory.RuleLookupLimit)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model %s", cfg.OpenAI.Model)
	}
	if cfg.Consent.Store != ConsentStoreMemory {
		t.Errorf("expected in-memory consent store, got %s", cfg.Consent.Store)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MEMORY_BACKEND", "local")
	t.Setenv("USE_ENTERPRISE_MODE", "true")
	t.Setenv("COMPANY_ID", "acme")
	t.Setenv("HINDSIGHT_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Memory.Backend != MemoryBackendLocal || !cfg.Memory.EnterpriseMode || cfg.Memory.CompanyID != "acme" {
		t.Errorf("overrides not applied: %+v", cfg.Memory)
	}
	if cfg.Memory.HindsightTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.Memory.HindsightTimeout)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected cors origins %v", cfg.Server.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"MEMORY_BACKEND": "bogus"}},
		{"unknown consent store", map[string]string{"CONSENT_STORE": "mongo"}},
		{"unknown storage mode", map[string]string{"STORAGE_MODE": "ftp"}},
		{"auth without secret", map[string]string{"AUTH_ENABLED": "true", "JWT_SECRET_KEY": ""}},
		{"auth with short secret", map[string]string{"AUTH_ENABLED": "true", "JWT_SECRET_KEY": "short"}},
		{"zero lookup limit", map[string]string{"MEMORY_RULE_LOOKUP_LIMIT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
