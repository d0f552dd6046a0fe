package embedder

import "errors"

var (
	// ErrProviderUnavailable wraps network or timeout failures talking to
	// the embedding provider.
	ErrProviderUnavailable = errors.New("embedding provider unavailable")

	// ErrDimensionMismatch reports vectors of unequal length. This is a
	// programming error and is never coerced or truncated.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
