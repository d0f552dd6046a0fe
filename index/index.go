// Package index holds active embedding records and answers similarity
// queries over them. The bundled implementations scan the full corpus per
// query, a deliberate tradeoff for corpora in the low thousands; the Index
// interface lets an approximate-nearest-neighbor backend replace them
// without touching any caller.
package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hanlingo/hanlingo/content"
)

// ErrValidation reports malformed search parameters. Rejected before any
// provider call is made.
var ErrValidation = errors.New("invalid search parameters")

type Record struct {
	Id          string                 `json:"id"`
	SourceType  content.SourceType     `json:"source_type"`
	SourceId    string                 `json:"source_id"`
	ContentText string                 `json:"content_text"`
	Embedding   []float32              `json:"embedding,omitempty"`
	Metadata    map[string]any         `json:"metadata,omitempty"`
	Active      bool                   `json:"active"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type Result struct {
	Record     Record  `json:"record"`
	Similarity float64 `json:"similarity"`
}

type Stats struct {
	Total        int                        `json:"total"`
	Active       int                        `json:"active"`
	BySourceType map[content.SourceType]int `json:"by_source_type"`
}

// SearchOptions filter and bound a similarity query. A zero HskLevel means
// no level filter.
type SearchOptions struct {
	SourceTypes   []content.SourceType
	MinSimilarity float64
	Limit         int
	HskLevel      int
}

func (o SearchOptions) Validate() error {
	if o.MinSimilarity < 0 || o.MinSimilarity > 1 {
		return fmt.Errorf("%w: min similarity %v out of [0, 1]", ErrValidation, o.MinSimilarity)
	}
	if o.Limit < 1 || o.Limit > 100 {
		return fmt.Errorf("%w: limit %d out of [1, 100]", ErrValidation, o.Limit)
	}
	return nil
}

type Index interface {
	// Insert writes a new record and returns its id. Embeddings are
	// immutable once written; a reindex replaces records wholesale via
	// Clear rather than patching them in place.
	Insert(ctx context.Context, rec Record) (string, error)
	Search(ctx context.Context, vector []float32, opts SearchOptions) ([]Result, error)
	// FindSimilarTo ranks records near the active record for the given
	// source, excluding that record itself. A missing anchor yields an
	// empty result, not an error.
	FindSimilarTo(ctx context.Context, sourceType content.SourceType, sourceId string, opts SearchOptions) ([]Result, error)
	Stats(ctx context.Context) (*Stats, error)
	Clear(ctx context.Context) error
}

// Matches reports whether an active record passes the type and HSK filters.
func Matches(rec Record, opts SearchOptions) bool {
	if !rec.Active {
		return false
	}

	if len(opts.SourceTypes) > 0 {
		found := false
		for _, t := range opts.SourceTypes {
			if rec.SourceType == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if opts.HskLevel > 0 && MetadataInt(rec.Metadata, "hskLevel") != opts.HskLevel {
		return false
	}

	return true
}

// Rank applies the shared ranking law: drop candidates below the threshold,
// sort strictly descending by similarity with a stable tie-break on record
// id, and truncate to the limit.
func Rank(candidates []Result, minSimilarity float64, limit int) []Result {
	ranked := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		if c.Similarity >= minSimilarity {
			ranked = append(ranked, c)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Similarity != ranked[j].Similarity {
			return ranked[i].Similarity > ranked[j].Similarity
		}
		return ranked[i].Record.Id < ranked[j].Record.Id
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// MetadataInt reads an integer metadata value, tolerating the int that Go
// callers write and the float64 that JSON decoding produces.
func MetadataInt(metadata map[string]any, key string) int {
	switch v := metadata[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
