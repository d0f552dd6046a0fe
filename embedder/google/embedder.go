package google

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	genaiopt "google.golang.org/api/option"

	"github.com/hanlingo/hanlingo/embedder"
)

type googleEmbedder struct {
	options embedder.Options
	client  *genai.Client
}

func (e *googleEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.options.Timeout)
	defer cancel()

	model := e.client.EmbeddingModel(e.options.Model)
	rsp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", embedder.ErrProviderUnavailable, err)
	}

	if rsp == nil || rsp.Embedding == nil || len(rsp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty response", embedder.ErrProviderUnavailable)
	}

	return rsp.Embedding.Values, nil
}

func (e *googleEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.options.BatchTimeout)
	defer cancel()

	model := e.client.EmbeddingModel(e.options.Model)
	batch := model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	rsp, err := model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", embedder.ErrProviderUnavailable, err)
	}

	if rsp == nil || len(rsp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: incomplete batch response", embedder.ErrProviderUnavailable)
	}

	vecs := make([][]float32, 0, len(texts))
	for _, item := range rsp.Embeddings {
		vecs = append(vecs, item.Values)
	}

	return vecs, nil
}

func (e *googleEmbedder) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, e.options.HealthTimeout)
	defer cancel()

	model := e.client.EmbeddingModel(e.options.Model)
	_, err := model.EmbedContent(ctx, genai.Text("ping"))
	return err == nil
}

func NewEmbedder(opts ...embedder.Option) (embedder.Embedder, error) {
	options := embedder.NewOptions(opts...)

	client, err := genai.NewClient(
		options.Context,
		genaiopt.WithAPIKey(options.ApiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize client for google embedder: %w", err)
	}

	return &googleEmbedder{
		options: options,
		client:  client,
	}, nil
}
