package memoryinfra

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/aidul23/agent-mem/pkg/ai/embedding"
	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/google/uuid"
)

// defaultLocalResults bounds a recall that leaves the count to the backend
const defaultLocalResults = 50

// ChromemBackend is an embedded vector store, one chromem collection per bank
type ChromemBackend struct {
	db          *chromem.DB
	embed       chromem.EmbeddingFunc
	collections map[string]*chromem.Collection
	mu          sync.RWMutex
}

// NewChromemBackend creates an in-process vector backend that embeds text with embedder
func NewChromemBackend(embedder embedding.Embedder) *ChromemBackend {
	return &ChromemBackend{
		db:          chromem.NewDB(),
		embed:       embeddingFunc(embedder),
		collections: make(map[string]*chromem.Collection),
	}
}

var (
	_ memory.Backend = (*ChromemBackend)(nil)
	_ memory.Pinger  = (*ChromemBackend)(nil)
)

// embeddingFunc adapts an Embedder to chromem, normalizing vectors since
// chromem ranks by dot product
func embeddingFunc(embedder embedding.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		e, err := embedder.EmbedQuery(ctx, text)
		if err != nil {
			return nil, err
		}
		return normalize(e.Vector), nil
	}
}

func normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func (b *ChromemBackend) collection(bankID string) (*chromem.Collection, error) {
	b.mu.RLock()
	col, ok := b.collections[bankID]
	b.mu.RUnlock()
	if ok {
		return col, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if col, ok := b.collections[bankID]; ok {
		return col, nil
	}

	col, err := b.db.GetOrCreateCollection(bankID, nil, b.embed)
	if err != nil {
		return nil, fmt.Errorf("create collection %s: %w", bankID, err)
	}
	b.collections[bankID] = col
	return col, nil
}

func (b *ChromemBackend) Retain(ctx context.Context, bankID, content, contextLabel string) error {
	col, err := b.collection(bankID)
	if err != nil {
		return err
	}

	doc := chromem.Document{
		ID:      uuid.NewString(),
		Content: content,
		Metadata: map[string]string{
			"context":    contextLabel,
			"created_at": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	return nil
}

// Recall returns the most similar documents, best first. chromem rejects
// result counts above the collection size, so the count is clamped.
func (b *ChromemBackend) Recall(ctx context.Context, bankID, query string, limit int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	col, err := b.collection(bankID)
	if err != nil {
		return nil, err
	}

	n := limit
	if n <= 0 {
		n = defaultLocalResults
	}
	if count := col.Count(); n > count {
		n = count
	}
	if n == 0 {
		return nil, nil
	}

	results, err := col.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	logx.Debugf("chromem recall bank=%s results=%d", bankID, len(results))

	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Content)
	}
	return texts, nil
}

func (b *ChromemBackend) Ping(context.Context) error {
	return nil
}
