package anthropic

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hanlingo/hanlingo/generator"
)

type anthropicGenerator struct {
	options generator.Options
	client  *anthropic.Client
}

func (g *anthropicGenerator) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.options.Timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(g.options.Model),
		MaxTokens:   int64(g.options.MaxTokens),
		Temperature: anthropic.Float(float64(g.options.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	if len(req.Context) > 0 {
		params.System = []anthropic.TextBlockParam{
			{Text: req.Context},
		}
	}

	rsp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generator.ErrGenerationFailed, err)
	}

	var b strings.Builder
	for _, content := range rsp.Content {
		if text, ok := content.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}

	result := b.String()
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: empty response", generator.ErrGenerationFailed)
	}

	return &generator.Result{Text: result}, nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &anthropicGenerator{
		options: options,
	}

	client := anthropic.NewClient(
		anthropicopt.WithAPIKey(options.ApiKey),
	)

	g.client = &client

	return g
}
