package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/hanlingo/hanlingo/generator"
)

type openAIGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *openAIGenerator) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.options.Timeout)
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if len(req.Context) > 0 {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.Context,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	rsp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.options.Model,
		Messages:    messages,
		MaxTokens:   g.options.MaxTokens,
		Temperature: g.options.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generator.ErrGenerationFailed, err)
	}

	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return nil, fmt.Errorf("%w: empty response", generator.ErrGenerationFailed)
	}

	return &generator.Result{Text: rsp.Choices[0].Message.Content}, nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &openAIGenerator{
		options: options,
	}

	cfg := openai.DefaultConfig(options.ApiKey)
	if len(options.BaseUrl) > 0 {
		cfg.BaseURL = options.BaseUrl
	}

	g.client = openai.NewClientWithConfig(cfg)

	return g
}
