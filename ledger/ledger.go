// Package ledger persists one record per answered query for history and
// analytics. Records are append-only and never mutated.
package ledger

import (
	"context"
	"time"

	"github.com/hanlingo/hanlingo/content"
)

type Source struct {
	SourceType content.SourceType `json:"source_type"`
	SourceId   string             `json:"source_id"`
	Similarity float64            `json:"similarity"`
	Content    string             `json:"content"`
}

type Record struct {
	Id               string    `json:"id"`
	UserId           string    `json:"user_id,omitempty"`
	Query            string    `json:"query"`
	Response         string    `json:"response"`
	Sources          []Source  `json:"sources"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

type Analytics struct {
	TotalQueries   int          `json:"total_queries"`
	AvgLatencyMs   float64      `json:"avg_latency_ms"`
	AvgSourceCount float64      `json:"avg_source_count"`
	TopQueries     []QueryCount `json:"top_queries"`
}

type Ledger interface {
	Save(ctx context.Context, rec Record) (string, error)
	// History lists a user's records, newest first. An empty userId lists
	// across all users.
	History(ctx context.Context, userId string, limit int) ([]Record, error)
	Analytics(ctx context.Context) (*Analytics, error)
}
