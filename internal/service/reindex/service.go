package reindex

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hanlingo/hanlingo/content"
	"github.com/hanlingo/hanlingo/embedder"
	"github.com/hanlingo/hanlingo/index"
	"github.com/hanlingo/hanlingo/normalizer"
)

const (
	defaultBatchSize = 32
	// defaultBatchPause spaces out provider calls between batches as
	// rate-limit courtesy.
	defaultBatchPause = 200 * time.Millisecond
)

// ErrInProgress rejects a rebuild while another one is running, so two
// rebuilds can never interleave their clear and insert phases.
var ErrInProgress = errors.New("reindex already in progress")

type Summary struct {
	Extracted int           `json:"extracted"`
	Skipped   int           `json:"skipped"`
	Indexed   int           `json:"indexed"`
	Elapsed   time.Duration `json:"elapsed"`
}

type Option func(*Service)

func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

func WithBatchPause(pause time.Duration) Option {
	return func(s *Service) {
		s.batchPause = pause
	}
}

// Service rebuilds the embedding corpus from current source content:
// clear, extract, embed in batches, insert.
type Service struct {
	content    content.Store
	embedder   embedder.Embedder
	index      index.Index
	logger     *zap.Logger
	batchSize  int
	batchPause time.Duration
	running    atomic.Bool
}

// Trigger starts a detached rebuild and returns immediately. The rebuild
// logs its outcome instead of surfacing it to the caller.
func (s *Service) Trigger(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrInProgress
	}

	go func() {
		defer s.running.Store(false)

		summary, err := s.rebuild(context.Background())
		if err != nil {
			s.logger.Error("reindex failed", zap.Error(err))
			return
		}
		s.logger.Info("reindex complete",
			zap.Int("extracted", summary.Extracted),
			zap.Int("skipped", summary.Skipped),
			zap.Int("indexed", summary.Indexed),
			zap.Duration("elapsed", summary.Elapsed))
	}()

	return nil
}

// Rebuild runs the rebuild synchronously under the same single-flight
// guard as Trigger.
func (s *Service) Rebuild(ctx context.Context) (*Summary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrInProgress
	}
	defer s.running.Store(false)

	return s.rebuild(ctx)
}

func (s *Service) rebuild(ctx context.Context) (*Summary, error) {
	start := time.Now()

	// clear the prior generation first; the full clear is what keeps at
	// most one active record per source
	if err := s.index.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear index: %w", err)
	}

	items, err := s.extract(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Extracted: len(items)}

	embeddable := make([]normalizer.Item, 0, len(items))
	for _, item := range items {
		if len(item.Text) == 0 {
			summary.Skipped++
			continue
		}
		embeddable = append(embeddable, item)
	}

	for from := 0; from < len(embeddable); from += s.batchSize {
		to := from + s.batchSize
		if to > len(embeddable) {
			to = len(embeddable)
		}
		batch := embeddable[from:to]

		texts := make([]string, 0, len(batch))
		for _, item := range batch {
			texts = append(texts, item.Text)
		}

		vecs, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			// abort the remaining batches; the corpus is left partially
			// rebuilt rather than rolled back
			return summary, fmt.Errorf("embed batch at %d: %w", from, err)
		}

		for i, item := range batch {
			if _, err := s.index.Insert(ctx, index.Record{
				SourceType:  item.SourceType,
				SourceId:    item.SourceId,
				ContentText: item.Text,
				Embedding:   vecs[i],
				Metadata:    item.Metadata,
			}); err != nil {
				return summary, fmt.Errorf("insert embedding for %s/%s: %w", item.SourceType, item.SourceId, err)
			}
			summary.Indexed++
		}

		if to < len(embeddable) && s.batchPause > 0 {
			time.Sleep(s.batchPause)
		}
	}

	summary.Elapsed = time.Since(start)

	return summary, nil
}

// extract runs the four extraction passes concurrently; they touch
// disjoint, read-only data.
func (s *Service) extract(ctx context.Context) ([]normalizer.Item, error) {
	var words, grammar, lessons, questions []normalizer.Item

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ws, err := s.content.Words(ctx)
		if err != nil {
			return fmt.Errorf("list words: %w", err)
		}
		words = normalizer.Words(ws)
		return nil
	})
	g.Go(func() error {
		ps, err := s.content.GrammarPatterns(ctx)
		if err != nil {
			return fmt.Errorf("list grammar patterns: %w", err)
		}
		grammar = normalizer.GrammarPatterns(ps)
		return nil
	})
	g.Go(func() error {
		bs, err := s.content.LessonBlocks(ctx)
		if err != nil {
			return fmt.Errorf("list lesson blocks: %w", err)
		}
		lessons = normalizer.LessonBlocks(bs)
		return nil
	})
	g.Go(func() error {
		qs, err := s.content.Questions(ctx)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
		questions = normalizer.Questions(qs)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]normalizer.Item, 0, len(words)+len(grammar)+len(lessons)+len(questions))
	items = append(items, words...)
	items = append(items, grammar...)
	items = append(items, lessons...)
	items = append(items, questions...)

	return items, nil
}

func New(
	store content.Store,
	emb embedder.Embedder,
	idx index.Index,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		content:    store,
		embedder:   emb,
		index:      idx,
		logger:     logger,
		batchSize:  defaultBatchSize,
		batchPause: defaultBatchPause,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
