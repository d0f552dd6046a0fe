package generator

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	ApiKey      string
	Model       string
	BaseUrl     string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	Context     context.Context
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithBaseUrl(baseUrl string) Option {
	return func(o *Options) {
		o.BaseUrl = baseUrl
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithTemperature(temperature float32) Option {
	return func(o *Options) {
		o.Temperature = temperature
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxTokens:   1024,
		Temperature: 0.7,
		Timeout:     60 * time.Second,
		Context:     context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
