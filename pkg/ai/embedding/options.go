package embedding

// EmbeddingOptions contains options for generating embeddings
type EmbeddingOptions struct {
	// Model is the embedding model to use; empty means the provider default
	Model string

	// Dimensions truncates vectors on models that support it. Zero keeps the model default.
	Dimensions int
}

// Option is a function type to modify EmbeddingOptions
type Option func(*EmbeddingOptions)

// WithModel sets the embedding model to use
func WithModel(model string) Option {
	return func(o *EmbeddingOptions) {
		o.Model = model
	}
}

// WithDimensions sets the dimensions for the embedding vectors
func WithDimensions(dimensions int) Option {
	return func(o *EmbeddingOptions) {
		o.Dimensions = dimensions
	}
}

func DefaultOptions() *EmbeddingOptions {
	return &EmbeddingOptions{}
}
