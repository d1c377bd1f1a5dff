package memoryinfra

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aidul23/agent-mem/pkg/memory"
)

type storedItem struct {
	content string
	context string
}

// InMemoryBackend keeps banks in process memory and recalls by term overlap.
// Used for tests and for running without a memory service.
type InMemoryBackend struct {
	mu    sync.RWMutex
	banks map[string][]storedItem
}

func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{
		banks: make(map[string][]storedItem),
	}
}

var (
	_ memory.Backend = (*InMemoryBackend)(nil)
	_ memory.Pinger  = (*InMemoryBackend)(nil)
)

func (b *InMemoryBackend) Retain(_ context.Context, bankID, content, contextLabel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.banks[bankID] = append(b.banks[bankID], storedItem{content: content, context: contextLabel})
	return nil
}

// Recall scores every item by how many query terms it contains and returns
// the matching ones best first, ties in insertion order. An empty query
// matches everything.
func (b *InMemoryBackend) Recall(_ context.Context, bankID, query string, limit int) ([]string, error) {
	b.mu.RLock()
	items := b.banks[bankID]
	b.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(query))
	phrase := strings.ToLower(strings.TrimSpace(query))

	type scored struct {
		text  string
		score int
	}
	var hits []scored
	for _, item := range items {
		lower := strings.ToLower(item.content)
		score := 0
		if len(terms) == 0 {
			score = 1
		}
		for _, term := range terms {
			if strings.Contains(lower, term) {
				score++
			}
		}
		if phrase != "" && strings.Contains(lower, phrase) {
			score += len(terms)
		}
		if score > 0 {
			hits = append(hits, scored{text: item.content, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	texts := make([]string, 0, len(hits))
	for _, h := range hits {
		texts = append(texts, h.text)
	}
	return texts, nil
}

func (b *InMemoryBackend) Ping(context.Context) error {
	return nil
}

// Count returns the number of items stored in a bank
func (b *InMemoryBackend) Count(bankID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.banks[bankID])
}

// Contexts returns the context label of every item in a bank, in insertion order
func (b *InMemoryBackend) Contexts(bankID string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	labels := make([]string, 0, len(b.banks[bankID]))
	for _, item := range b.banks[bankID] {
		labels = append(labels, item.context)
	}
	return labels
}
