package embedder

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	ApiKey        string
	Model         string
	BaseUrl       string
	Dimension     int
	Timeout       time.Duration
	BatchTimeout  time.Duration
	HealthTimeout time.Duration
	Context       context.Context
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

func WithDimension(dimension int) Option {
	return func(o *Options) {
		o.Dimension = dimension
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func WithBatchTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.BatchTimeout = timeout
	}
}

func WithHealthTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.HealthTimeout = timeout
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Dimension:     1024,
		Timeout:       30 * time.Second,
		BatchTimeout:  60 * time.Second,
		HealthTimeout: 5 * time.Second,
		Context:       context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
