package embedder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors score 1", func(t *testing.T) {
		v := []float32{0.3, -1.2, 4.5}

		got, err := CosineSimilarity(v, v)

		require.NoError(t, err)
		require.InDelta(t, 1.0, got, 1e-9)
	})

	t.Run("opposite vectors score -1", func(t *testing.T) {
		a := []float32{1, 2, 3}
		b := []float32{-1, -2, -3}

		got, err := CosineSimilarity(a, b)

		require.NoError(t, err)
		require.InDelta(t, -1.0, got, 1e-9)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{0, 1}

		got, err := CosineSimilarity(a, b)

		require.NoError(t, err)
		require.InDelta(t, 0.0, got, 1e-9)
	})

	t.Run("scaling an operand does not change the score", func(t *testing.T) {
		a := []float32{1, 2, 3}
		b := []float32{4, 5, 6}
		scaled := []float32{8, 10, 12}

		got, err := CosineSimilarity(a, b)
		require.NoError(t, err)

		gotScaled, err := CosineSimilarity(a, scaled)
		require.NoError(t, err)

		require.InDelta(t, got, gotScaled, 1e-9)
	})

	t.Run("mismatched dimensions fail", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})

		require.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("zero-norm operand scores 0", func(t *testing.T) {
		got, err := CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3})

		require.NoError(t, err)
		require.Zero(t, got)
	})
}
