package generator

import (
	"context"

	"go.uber.org/zap"

	"github.com/hanlingo/hanlingo/mode"
)

// ForMode mirrors the embedder seam: production surfaces provider failures,
// every other mode degrades to the fallback generator.
func ForMode(m mode.Mode, primary Generator, fallback Generator, logger *zap.Logger) Generator {
	if m == mode.Production {
		return primary
	}
	return NewWithFallback(primary, fallback, logger)
}

type fallbackGenerator struct {
	primary  Generator
	fallback Generator
	logger   *zap.Logger
}

func (g *fallbackGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	result, err := g.primary.Generate(ctx, req)
	if err != nil {
		g.logger.Warn("generation provider failed, using fallback", zap.Error(err))
		return g.fallback.Generate(ctx, req)
	}
	return result, nil
}

func NewWithFallback(primary Generator, fallback Generator, logger *zap.Logger) Generator {
	return &fallbackGenerator{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}
