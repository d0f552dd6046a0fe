package embedder

import (
	"context"

	"go.uber.org/zap"

	"github.com/hanlingo/hanlingo/mode"
)

// ForMode is the single seam that decides how provider failures behave.
// Production gets the primary as-is; every other mode wraps it so a failure
// degrades to the fallback instead of surfacing.
func ForMode(m mode.Mode, primary Embedder, fallback Embedder, logger *zap.Logger) Embedder {
	if m == mode.Production {
		return primary
	}
	return NewWithFallback(primary, fallback, logger)
}

type fallbackEmbedder struct {
	primary  Embedder
	fallback Embedder
	logger   *zap.Logger
}

func (e *fallbackEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := e.primary.Embed(ctx, text)
	if err != nil {
		e.logger.Warn("embedding provider failed, using fallback", zap.Error(err))
		return e.fallback.Embed(ctx, text)
	}
	return vec, nil
}

func (e *fallbackEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := e.primary.EmbedBatch(ctx, texts)
	if err != nil {
		e.logger.Warn("embedding provider failed on batch, using fallback", zap.Error(err), zap.Int("size", len(texts)))
		return e.fallback.EmbedBatch(ctx, texts)
	}
	return vecs, nil
}

func (e *fallbackEmbedder) Health(ctx context.Context) bool {
	return e.primary.Health(ctx)
}

func NewWithFallback(primary Embedder, fallback Embedder, logger *zap.Logger) Embedder {
	return &fallbackEmbedder{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}
