package generator

import (
	"context"
	"errors"
)

// ErrGenerationFailed wraps network or timeout failures talking to the
// generation provider.
var ErrGenerationFailed = errors.New("generation failed")

// Request carries a fully assembled prompt plus the retrieved grounding
// context, mirroring the generation provider's wire boundary.
type Request struct {
	Prompt  string
	Context string
}

// Result is a generated answer. Degraded marks answers produced by the
// non-production fallback rather than the real provider.
type Result struct {
	Text     string
	Degraded bool
}

type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
