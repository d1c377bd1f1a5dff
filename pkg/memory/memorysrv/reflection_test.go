package memorysrv

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aidul23/agent-mem/pkg/errx"
	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/aidul23/agent-mem/pkg/memory/memoryinfra"
)

func TestTopicTag(t *testing.T) {
	if got := TopicTag("DFX Rules Board"); got != "dfx_rules_board" {
		t.Errorf("got %q", got)
	}
}

func TestReflectAndSummarizeStoresSummary(t *testing.T) {
	ctx := context.Background()
	backend := &reflectingBackend{InMemoryBackend: memoryinfra.NewInMemoryBackend(), answer: "All boards use 2mm clearance."}
	svc := NewReflectionService(memory.NewBank(backend, "company-acme-kb", true))

	text, ok, err := svc.ReflectAndSummarize(ctx, "DFX Rules")
	if err != nil || !ok || text != "All boards use 2mm clearance." {
		t.Fatalf("got %q %v %v", text, ok, err)
	}

	records := storedRecords(t, backend.InMemoryBackend, "company-acme-kb")
	if len(records) != 1 {
		t.Fatalf("expected the summary to be stored once, got %d", len(records))
	}
	r := records[0]
	if r.Body != text || r.Meta.Importance != memory.ImportanceHigh || r.Meta.Source != "reflection" {
		t.Errorf("unexpected stored summary %+v", r)
	}
	for _, tag := range []string{"summary", "consolidated_knowledge", "dfx_rules"} {
		if !r.HasTag(tag) {
			t.Errorf("missing tag %s in %v", tag, r.Meta.Tags)
		}
	}
	if ctxs := backend.Contexts("company-acme-kb"); ctxs[0] != "reflection" {
		t.Errorf("unexpected context %v", ctxs)
	}
}

func TestReflectAndSummarizeFailureStoresNothing(t *testing.T) {
	tests := []struct {
		name    string
		backend *reflectingBackend
	}{
		{"service error", &reflectingBackend{InMemoryBackend: memoryinfra.NewInMemoryBackend(), err: errors.New("timeout")}},
		{"empty answer", &reflectingBackend{InMemoryBackend: memoryinfra.NewInMemoryBackend(), answer: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewReflectionService(memory.NewBank(tt.backend, "kb", true))
			text, ok, err := svc.ReflectAndSummarize(context.Background(), "pricing")
			if err != nil || ok || text != "" {
				t.Fatalf("got %q %v %v", text, ok, err)
			}
			if n := tt.backend.Count("kb"); n != 0 {
				t.Errorf("nothing should be stored, got %d items", n)
			}
		})
	}
}

func TestReflectAndSummarizeFallback(t *testing.T) {
	ctx := context.Background()
	backend := memoryinfra.NewInMemoryBackend()
	bank := memory.NewBank(backend, "kb", true)
	bank.RetainWithMetadata(ctx, "pricing is tiered by volume", memory.RetainOptions{})

	text, ok, err := NewReflectionService(bank).ReflectAndSummarize(ctx, "pricing")
	if err != nil || !ok {
		t.Fatalf("fallback should summarize recalled memories: %v %v", ok, err)
	}
	if !strings.Contains(text, "pricing is tiered by volume") {
		t.Errorf("unexpected summary %q", text)
	}
	if n := backend.Count("kb"); n != 2 {
		t.Errorf("expected summary stored next to source, got %d items", n)
	}
}

func TestReflectAndSummarizeRequiresTopic(t *testing.T) {
	svc := NewReflectionService(memory.NewBank(memoryinfra.NewInMemoryBackend(), "kb", true))
	_, _, err := svc.ReflectAndSummarize(context.Background(), "  ")
	if !errx.IsType(err, errx.TypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestIdentifyOutdated(t *testing.T) {
	ctx := context.Background()
	backend := memoryinfra.NewInMemoryBackend()
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, v := range []string{"1.0", "2.0", "1.0", ""} {
		meta := memory.Metadata{Importance: memory.ImportanceLow, Version: v, Date: day.AddDate(0, 0, i)}
		backend.Retain(ctx, "kb", memory.Encode(meta, "pricing sheet"), "doc")
	}

	svc := NewReflectionService(memory.NewBank(backend, "kb", true))
	outdated, err := svc.IdentifyOutdated(ctx, "pricing")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if len(outdated) != 2 {
		t.Fatalf("expected both 1.0 records, got %d", len(outdated))
	}
	for _, r := range outdated {
		if r.Meta.Version != "1.0" {
			t.Errorf("unexpected outdated version %s", r.Meta.Version)
		}
	}
	if !outdated[0].Meta.Date.After(outdated[1].Meta.Date) {
		t.Error("outdated records should keep recency order")
	}

	if _, err := svc.IdentifyOutdated(ctx, ""); !errx.IsType(err, errx.TypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
