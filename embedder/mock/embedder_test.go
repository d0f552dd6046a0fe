package mock

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanlingo/hanlingo/embedder"
)

func TestMockEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("same text always yields the same vector", func(t *testing.T) {
		e := NewEmbedder(embedder.WithDimension(64))

		a, err := e.Embed(ctx, "你好")
		require.NoError(t, err)

		b, err := e.Embed(ctx, "你好")
		require.NoError(t, err)

		require.Equal(t, a, b)
	})

	t.Run("different texts yield different vectors", func(t *testing.T) {
		e := NewEmbedder(embedder.WithDimension(64))

		a, err := e.Embed(ctx, "你好")
		require.NoError(t, err)

		b, err := e.Embed(ctx, "谢谢")
		require.NoError(t, err)

		require.NotEqual(t, a, b)
	})

	t.Run("vectors honor the configured dimension and are unit length", func(t *testing.T) {
		e := NewEmbedder(embedder.WithDimension(128))

		vec, err := e.Embed(ctx, "水")
		require.NoError(t, err)
		require.Len(t, vec, 128)

		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		require.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
	})

	t.Run("batch matches individual embeds in order", func(t *testing.T) {
		e := NewEmbedder(embedder.WithDimension(32))

		texts := []string{"一", "二", "三"}

		vecs, err := e.EmbedBatch(ctx, texts)
		require.NoError(t, err)
		require.Len(t, vecs, len(texts))

		for i, text := range texts {
			single, err := e.Embed(ctx, text)
			require.NoError(t, err)
			require.Equal(t, single, vecs[i])
		}
	})

	t.Run("health is always up", func(t *testing.T) {
		e := NewEmbedder()

		require.True(t, e.Health(ctx))
	})
}
