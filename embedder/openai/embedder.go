package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/hanlingo/hanlingo/embedder"
)

type openAIEmbedder struct {
	options embedder.Options
	client  *openai.Client
}

func (e *openAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.options.Timeout)
	defer cancel()

	rsp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(e.options.Model),
		Dimensions: e.options.Dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", embedder.ErrProviderUnavailable, err)
	}

	if len(rsp.Data) == 0 || len(rsp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty response", embedder.ErrProviderUnavailable)
	}

	return rsp.Data[0].Embedding, nil
}

func (e *openAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.options.BatchTimeout)
	defer cancel()

	rsp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      texts,
		Model:      openai.EmbeddingModel(e.options.Model),
		Dimensions: e.options.Dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", embedder.ErrProviderUnavailable, err)
	}

	if len(rsp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", embedder.ErrProviderUnavailable, len(rsp.Data), len(texts))
	}

	// the provider reports the input position per item
	vecs := make([][]float32, len(texts))
	for _, item := range rsp.Data {
		if item.Index < 0 || item.Index >= len(vecs) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", embedder.ErrProviderUnavailable, item.Index)
		}
		vecs[item.Index] = item.Embedding
	}

	return vecs, nil
}

func (e *openAIEmbedder) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, e.options.HealthTimeout)
	defer cancel()

	_, err := e.client.ListModels(ctx)
	return err == nil
}

func NewEmbedder(opts ...embedder.Option) embedder.Embedder {
	options := embedder.NewOptions(opts...)

	e := &openAIEmbedder{
		options: options,
	}

	cfg := openai.DefaultConfig(options.ApiKey)
	if len(options.BaseUrl) > 0 {
		cfg.BaseURL = options.BaseUrl
	}

	e.client = openai.NewClientWithConfig(cfg)

	return e
}
