package embedding

import (
	"context"
)

// Embedder turns text into vectors
type Embedder interface {
	// EmbedDocuments embeds a batch of texts, one embedding per input in order
	EmbedDocuments(ctx context.Context, documents []string, opts ...Option) ([]Embedding, error)

	// EmbedQuery embeds a single text
	EmbedQuery(ctx context.Context, text string, opts ...Option) (Embedding, error)
}

// Embedding represents a vector embedding result
type Embedding struct {
	Vector []float32
	Usage  Usage
}

// Usage represents token usage statistics for embeddings
type Usage struct {
	PromptTokens int
	TotalTokens  int
}
