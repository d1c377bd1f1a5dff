package embedding

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// CachedEmbedder memoizes query embeddings in a bounded ristretto cache.
// Recall embeds the same questions over and over; documents are embedded once
// and bypass the cache.
type CachedEmbedder struct {
	next  Embedder
	cache *ristretto.Cache
}

// NewCachedEmbedder wraps next with a cache holding up to maxItems vectors
func NewCachedEmbedder(next Embedder, maxItems int64) (*CachedEmbedder, error) {
	if maxItems <= 0 {
		maxItems = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxItems * 10,
		MaxCost:            maxItems,
		BufferItems:        64,
		// cost counts vectors, not bytes
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}
	return &CachedEmbedder{next: next, cache: cache}, nil
}

var _ Embedder = (*CachedEmbedder)(nil)

func (c *CachedEmbedder) EmbedQuery(ctx context.Context, text string, opts ...Option) (Embedding, error) {
	key := cacheKey(text, opts)
	if v, ok := c.cache.Get(key); ok {
		if vec, ok := v.([]float32); ok {
			return Embedding{Vector: vec}, nil
		}
	}

	e, err := c.next.EmbedQuery(ctx, text, opts...)
	if err != nil {
		return Embedding{}, err
	}
	c.cache.Set(key, e.Vector, 1)
	return e, nil
}

func (c *CachedEmbedder) EmbedDocuments(ctx context.Context, documents []string, opts ...Option) ([]Embedding, error) {
	return c.next.EmbedDocuments(ctx, documents, opts...)
}

// Close stops the cache's background goroutines
func (c *CachedEmbedder) Close() {
	c.cache.Close()
}

func cacheKey(text string, opts []Option) string {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return fmt.Sprintf("%s|%d|%s", o.Model, o.Dimensions, text)
}
