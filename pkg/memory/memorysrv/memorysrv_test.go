package memorysrv

import (
	"context"
	"errors"
	"testing"

	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/aidul23/agent-mem/pkg/memory/memoryinfra"
)

// reflectingBackend adds a scripted Reflect to the in-memory backend
type reflectingBackend struct {
	*memoryinfra.InMemoryBackend
	answer string
	err    error
}

func (b *reflectingBackend) Reflect(context.Context, string, string) (string, error) {
	return b.answer, b.err
}

// failingBackend accepts nothing
type failingBackend struct{}

func (failingBackend) Retain(context.Context, string, string, string) error {
	return errors.New("connection refused")
}

func (failingBackend) Recall(context.Context, string, string, int) ([]string, error) {
	return nil, errors.New("connection refused")
}

func storedRecords(t *testing.T, b *memoryinfra.InMemoryBackend, bankID string) []memory.Record {
	t.Helper()
	texts, err := b.Recall(context.Background(), bankID, "", 0)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	return memory.ParseRecords(texts)
}
