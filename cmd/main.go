package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hanlingo/hanlingo/content"
	contentmemory "github.com/hanlingo/hanlingo/content/memory"
	contentpostgres "github.com/hanlingo/hanlingo/content/postgres"
	"github.com/hanlingo/hanlingo/embedder"
	googleembedder "github.com/hanlingo/hanlingo/embedder/google"
	mockembedder "github.com/hanlingo/hanlingo/embedder/mock"
	openaiembedder "github.com/hanlingo/hanlingo/embedder/openai"
	"github.com/hanlingo/hanlingo/generator"
	anthropicgenerator "github.com/hanlingo/hanlingo/generator/anthropic"
	mockgenerator "github.com/hanlingo/hanlingo/generator/mock"
	openaigenerator "github.com/hanlingo/hanlingo/generator/openai"
	"github.com/hanlingo/hanlingo/index"
	indexmemory "github.com/hanlingo/hanlingo/index/memory"
	indexpostgres "github.com/hanlingo/hanlingo/index/postgres"
	"github.com/hanlingo/hanlingo/internal/service/query"
	"github.com/hanlingo/hanlingo/internal/service/reindex"
	"github.com/hanlingo/hanlingo/ledger"
	ledgermemory "github.com/hanlingo/hanlingo/ledger/memory"
	ledgerpostgres "github.com/hanlingo/hanlingo/ledger/postgres"
	"github.com/hanlingo/hanlingo/mode"
	httpserver "github.com/hanlingo/hanlingo/server/http"
)

var (
	cfg struct {
		// Server config
		Address string `help:"HTTP listen address" default:":8080" env:"ADDRESS"`
		Mode    string `help:"Runtime mode: production, development, or test" default:"development" env:"MODE"`

		// Storage config
		PostgresLocation string `help:"Postgres connection string; empty runs fully in memory" default:"" env:"POSTGRES_LOCATION"`

		// Embedder config
		EmbedderProvider  string `help:"Embedding provider: openai or google" default:"openai" env:"EMBEDDER_PROVIDER"`
		EmbedderKey       string `help:"API Key for the embedder" default:"" env:"EMBEDDER_KEY"`
		Embedder          string `help:"Model identifier for embedder" default:"text-embedding-3-small" env:"EMBEDDER_MODEL"`
		EmbedderDimension int    `help:"Embedding vector dimension" default:"1024" env:"EMBEDDER_DIMENSION"`

		// Generator config
		GeneratorProvider string `help:"Generation provider: openai or anthropic" default:"openai" env:"GENERATOR_PROVIDER"`
		GeneratorKey      string `help:"API Key for the generator" default:"" env:"GENERATOR_KEY"`
		Generator         string `help:"Model identifier for generator" default:"gpt-4o-mini" env:"GENERATOR_MODEL"`

		// Reindex config
		BatchSize int `help:"Number of texts embedded per provider call during reindex" default:"32" env:"REINDEX_BATCH_SIZE"`
	}
)

func main() {
	// Parse inputs
	_ = godotenv.Load()
	kong.Parse(&cfg)

	m := mode.Parse(cfg.Mode)

	logger, err := newLogger(m)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Create embedder
	emb, err := newEmbedder(m, logger)
	if err != nil {
		logger.Fatal("failed to create embedder", zap.Error(err))
	}

	// Create generator
	gen := newGenerator(m, logger)

	// Create storage
	store, idx, led, err := newStorage()
	if err != nil {
		logger.Fatal("failed to create storage", zap.Error(err))
	}

	// Create services
	querySvc := query.New(emb, idx, gen, led, logger)
	reindexSvc := reindex.New(store, emb, idx, logger, reindex.WithBatchSize(cfg.BatchSize))

	// Create server
	handler := httpserver.NewHandler(querySvc, reindexSvc, idx, led, emb, logger)

	srv := httpserver.NewServer(
		handler,
		logger,
		httpserver.WithAddress(cfg.Address),
		httpserver.WithMiddleware(httpserver.RequestLogging(logger)),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("http server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Stop(ctx); err != nil {
			logger.Error("failed to stop http server", zap.Error(err))
		}
	}
}

func newLogger(m mode.Mode) (*zap.Logger, error) {
	if m == mode.Production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newEmbedder(m mode.Mode, logger *zap.Logger) (embedder.Embedder, error) {
	opts := []embedder.Option{
		embedder.WithApiKey(cfg.EmbedderKey),
		embedder.WithModel(cfg.Embedder),
		embedder.WithDimension(cfg.EmbedderDimension),
	}

	var primary embedder.Embedder
	var err error

	switch cfg.EmbedderProvider {
	case "google":
		primary, err = googleembedder.NewEmbedder(opts...)
		if err != nil {
			return nil, err
		}
	default:
		primary = openaiembedder.NewEmbedder(opts...)
	}

	fallback := mockembedder.NewEmbedder(embedder.WithDimension(cfg.EmbedderDimension))

	return embedder.ForMode(m, primary, fallback, logger), nil
}

func newGenerator(m mode.Mode, logger *zap.Logger) generator.Generator {
	opts := []generator.Option{
		generator.WithApiKey(cfg.GeneratorKey),
		generator.WithModel(cfg.Generator),
	}

	var primary generator.Generator

	switch cfg.GeneratorProvider {
	case "anthropic":
		primary = anthropicgenerator.NewGenerator(opts...)
	default:
		primary = openaigenerator.NewGenerator(opts...)
	}

	return generator.ForMode(m, primary, mockgenerator.NewGenerator(), logger)
}

func newStorage() (content.Store, index.Index, ledger.Ledger, error) {
	if len(cfg.PostgresLocation) == 0 {
		return contentmemory.NewStore(nil, nil, nil, nil), indexmemory.NewIndex(), ledgermemory.NewLedger(), nil
	}

	store, err := contentpostgres.NewStore(cfg.PostgresLocation)
	if err != nil {
		return nil, nil, nil, err
	}

	idx, err := indexpostgres.NewIndex(cfg.PostgresLocation)
	if err != nil {
		return nil, nil, nil, err
	}

	led, err := ledgerpostgres.NewLedger(cfg.PostgresLocation)
	if err != nil {
		return nil, nil, nil, err
	}

	return store, idx, led, nil
}
