package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hanlingo/hanlingo/content"
	"github.com/hanlingo/hanlingo/embedder"
	"github.com/hanlingo/hanlingo/index"
)

// memoryIndex is the brute-force in-memory backend. Searches operate over a
// snapshot taken under a read lock, so concurrent queries never block each
// other on scoring.
type memoryIndex struct {
	records map[string]index.Record
	mtx     sync.RWMutex
}

func (i *memoryIndex) Insert(ctx context.Context, rec index.Record) (string, error) {
	i.mtx.Lock()
	defer i.mtx.Unlock()

	if len(rec.Id) == 0 {
		rec.Id = uuid.New().String()
	}

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	rec.Active = true

	cpy := make([]float32, len(rec.Embedding))
	copy(cpy, rec.Embedding)
	rec.Embedding = cpy

	if rec.Metadata != nil {
		rec.Metadata = maps.Clone(rec.Metadata)
	}

	i.records[rec.Id] = rec

	return rec.Id, nil
}

func (i *memoryIndex) Search(ctx context.Context, vector []float32, opts index.SearchOptions) ([]index.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return i.scan(vector, opts, "")
}

func (i *memoryIndex) FindSimilarTo(ctx context.Context, sourceType content.SourceType, sourceId string, opts index.SearchOptions) ([]index.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	anchor, ok := i.anchor(sourceType, sourceId)
	if !ok {
		return []index.Result{}, nil
	}

	return i.scan(anchor.Embedding, opts, anchor.Id)
}

func (i *memoryIndex) Stats(ctx context.Context) (*index.Stats, error) {
	i.mtx.RLock()
	defer i.mtx.RUnlock()

	stats := &index.Stats{
		BySourceType: map[content.SourceType]int{},
	}

	for _, rec := range i.records {
		stats.Total++
		if rec.Active {
			stats.Active++
			stats.BySourceType[rec.SourceType]++
		}
	}

	return stats, nil
}

func (i *memoryIndex) Clear(ctx context.Context) error {
	i.mtx.Lock()
	defer i.mtx.Unlock()

	i.records = map[string]index.Record{}

	return nil
}

func (i *memoryIndex) anchor(sourceType content.SourceType, sourceId string) (index.Record, bool) {
	i.mtx.RLock()
	defer i.mtx.RUnlock()

	for _, rec := range i.records {
		if rec.Active && rec.SourceType == sourceType && rec.SourceId == sourceId {
			return rec, true
		}
	}

	return index.Record{}, false
}

func (i *memoryIndex) scan(vector []float32, opts index.SearchOptions, excludeId string) ([]index.Result, error) {
	i.mtx.RLock()
	candidates := make([]index.Record, 0, len(i.records))
	for _, rec := range i.records {
		if rec.Id != excludeId && index.Matches(rec, opts) {
			candidates = append(candidates, rec)
		}
	}
	i.mtx.RUnlock()

	scored := make([]index.Result, 0, len(candidates))
	for _, rec := range candidates {
		similarity, err := embedder.CosineSimilarity(vector, rec.Embedding)
		if err != nil {
			// a dimension mismatch inside the corpus is a programming
			// error, never silently tolerated
			return nil, err
		}
		scored = append(scored, index.Result{Record: rec, Similarity: similarity})
	}

	return index.Rank(scored, opts.MinSimilarity, opts.Limit), nil
}

func NewIndex() index.Index {
	return &memoryIndex{
		records: map[string]index.Record{},
	}
}
