package embedder

import "context"

// Embedder is the gateway to the external embedding provider.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Health(ctx context.Context) bool
}
