package mock

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/hanlingo/hanlingo/embedder"
)

// mockEmbedder produces text-seeded, unit-normalized pseudo-random vectors
// of the configured dimension. The same text always yields the same vector,
// so retrieval stays coherent during local development and in tests.
type mockEmbedder struct {
	options embedder.Options
}

func (e *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float32, e.options.Dimension)
	var norm float64
	for i := range vec {
		vec[i] = float32(rng.NormFloat64())
		norm += float64(vec[i]) * float64(vec[i])
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		vec[0] = 1
		return vec, nil
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}

	return vec, nil
}

func (e *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs = append(vecs, vec)
	}
	return vecs, nil
}

func (e *mockEmbedder) Health(ctx context.Context) bool {
	return true
}

func NewEmbedder(opts ...embedder.Option) embedder.Embedder {
	options := embedder.NewOptions(opts...)

	return &mockEmbedder{
		options: options,
	}
}
