package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hanlingo/hanlingo/embedder"
	"github.com/hanlingo/hanlingo/generator"
	"github.com/hanlingo/hanlingo/index"
	"github.com/hanlingo/hanlingo/ledger"
	"github.com/hanlingo/hanlingo/planner"
)

const (
	// noSourceConfidence applies when retrieval found nothing to ground
	// the answer in.
	noSourceConfidence = 0.1
	// degradedConfidence applies to answers from the non-production
	// fallback generator.
	degradedConfidence = 0.5
)

type Request struct {
	UserId         string `json:"user_id,omitempty"`
	Query          string `json:"query"`
	QueryType      string `json:"query_type,omitempty"`
	HskLevel       int    `json:"hsk_level,omitempty"`
	CurrentContext string `json:"current_context,omitempty"`
}

type Response struct {
	Answer           string          `json:"answer"`
	Sources          []ledger.Source `json:"sources"`
	Confidence       float64         `json:"confidence"`
	ProcessingTimeMs int64           `json:"processing_time_ms"`
	RecordId         string          `json:"record_id"`
}

// Service runs the per-query pipeline: embed, retrieve, prompt, generate,
// score, persist. It holds no per-call state, so concurrent callers share
// one instance freely.
type Service struct {
	embedder  embedder.Embedder
	index     index.Index
	generator generator.Generator
	ledger    ledger.Ledger
	logger    *zap.Logger
}

func (s *Service) Answer(ctx context.Context, req Request) (*Response, error) {
	if len(strings.TrimSpace(req.Query)) == 0 {
		return nil, fmt.Errorf("%w: query text is required", index.ErrValidation)
	}
	if req.HskLevel < 0 || req.HskLevel > 6 {
		return nil, fmt.Errorf("%w: hsk level %d out of [0, 6]", index.ErrValidation, req.HskLevel)
	}

	start := time.Now()

	// 1. embed the learner's question
	vec, err := s.embedder.Embed(ctx, req.Query)
	if err != nil {
		s.logger.Error("failed to embed query", zap.Error(err), zap.String("query", req.Query))
		return nil, err
	}

	// 2. plan retrieval from the query type and proficiency; proficiency
	// tunes leniency, it is not a hard metadata filter here
	queryType := planner.ParseQueryType(req.QueryType)
	plan := planner.New(queryType, req.HskLevel)

	// 3. retrieve and rank sources
	results, err := s.index.Search(ctx, vec, index.SearchOptions{
		SourceTypes:   planner.SourceTypes(queryType),
		MinSimilarity: plan.MinSimilarity,
		Limit:         plan.MaxResults,
	})
	if err != nil {
		s.logger.Error("retrieval failed", zap.Error(err), zap.String("query", req.Query))
		return nil, err
	}

	// 4-5. assemble the grounding context and the prompt
	contextBlock := buildContextBlock(results, req.CurrentContext)
	prompt := buildPrompt(req.Query)

	// 6. generate the answer
	result, err := s.generator.Generate(ctx, generator.Request{
		Prompt:  prompt,
		Context: contextBlock,
	})
	if err != nil {
		// nothing is persisted for a failed generation
		s.logger.Error("generation failed", zap.Error(err), zap.String("query", req.Query))
		return nil, err
	}

	// 7. score confidence
	confidence := scoreConfidence(results, result.Degraded)

	// 8. persist the context record
	sources := toSources(results)
	elapsed := time.Since(start).Milliseconds()

	recordId, err := s.ledger.Save(ctx, ledger.Record{
		UserId:           req.UserId,
		Query:            req.Query,
		Response:         result.Text,
		Sources:          sources,
		ProcessingTimeMs: elapsed,
	})
	if err != nil {
		s.logger.Error("failed to persist query context", zap.Error(err))
		return nil, err
	}

	s.logger.Debug("answered query",
		zap.String("query_type", string(queryType)),
		zap.Int("sources", len(sources)),
		zap.Float64("confidence", confidence),
		zap.Int64("elapsed_ms", elapsed))

	return &Response{
		Answer:           result.Text,
		Sources:          sources,
		Confidence:       confidence,
		ProcessingTimeMs: elapsed,
		RecordId:         recordId,
	}, nil
}

// scoreConfidence rewards both how similar the sources are and how many
// there are: min(avgSimilarity + min(n/5, 1)*0.2, 1.0). Degraded answers
// carry a fixed reduced confidence, answers without sources a fixed floor.
func scoreConfidence(results []index.Result, degraded bool) float64 {
	if degraded {
		return degradedConfidence
	}
	if len(results) == 0 {
		return noSourceConfidence
	}

	var sum float64
	for _, r := range results {
		sum += r.Similarity
	}
	avg := sum / float64(len(results))

	countBonus := float64(len(results)) / 5
	if countBonus > 1 {
		countBonus = 1
	}

	confidence := avg + countBonus*0.2
	if confidence > 1 {
		confidence = 1
	}

	return confidence
}

func toSources(results []index.Result) []ledger.Source {
	sources := make([]ledger.Source, 0, len(results))
	for _, r := range results {
		sources = append(sources, ledger.Source{
			SourceType: r.Record.SourceType,
			SourceId:   r.Record.SourceId,
			Similarity: r.Similarity,
			Content:    r.Record.ContentText,
		})
	}
	return sources
}

func New(
	emb embedder.Embedder,
	idx index.Index,
	gen generator.Generator,
	led ledger.Ledger,
	logger *zap.Logger,
) *Service {
	return &Service{
		embedder:  emb,
		index:     idx,
		generator: gen,
		ledger:    led,
		logger:    logger,
	}
}
