package mock

import (
	"context"
	"strings"

	"github.com/hanlingo/hanlingo/generator"
)

const maxExcerpt = 200

// mockGenerator answers from the retrieved context alone: the top-ranked
// source's text, truncated. It never fails, and every result is marked
// Degraded so the caller can report a reduced confidence.
type mockGenerator struct{}

func (g *mockGenerator) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	excerpt := topSourceExcerpt(req.Context)
	if len(excerpt) == 0 {
		return &generator.Result{
			Text:     "I could not find relevant material for this question. Please try rephrasing it.",
			Degraded: true,
		}, nil
	}

	return &generator.Result{
		Text:     "Based on the most relevant material I found: " + excerpt,
		Degraded: true,
	}, nil
}

// topSourceExcerpt pulls the top-ranked entry out of the context block. The
// block lists ranked sources as "1. [label] text" under a heading line, with
// any caller-supplied current material in its own section above; the ranked
// entry wins over both.
func topSourceExcerpt(contextBlock string) string {
	lines := strings.Split(contextBlock, "\n")

	for _, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "1. ")
		if !ok {
			continue
		}
		if strings.HasPrefix(rest, "[") {
			if i := strings.Index(rest, "] "); i >= 0 {
				rest = rest[i+2:]
			}
		}
		return truncateExcerpt(rest)
	}

	// no ranked entries; take the first line that is not a section heading
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) == 0 || strings.HasSuffix(line, ":") {
			continue
		}
		return truncateExcerpt(line)
	}

	return ""
}

func truncateExcerpt(line string) string {
	runes := []rune(line)
	if len(runes) > maxExcerpt {
		return string(runes[:maxExcerpt]) + "..."
	}
	return line
}

func NewGenerator() generator.Generator {
	return &mockGenerator{}
}
