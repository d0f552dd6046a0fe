package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hanlingo/hanlingo/ledger"
)

const topQueryCount = 5

type memoryLedger struct {
	records []ledger.Record
	mtx     sync.RWMutex
}

func (l *memoryLedger) Save(ctx context.Context, rec ledger.Record) (string, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	rec.Id = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()
	rec.Sources = append([]ledger.Source(nil), rec.Sources...)

	l.records = append(l.records, rec)

	return rec.Id, nil
}

func (l *memoryLedger) History(ctx context.Context, userId string, limit int) ([]ledger.Record, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	// records are appended in save order with their timestamps taken under
	// the same lock, so walking backwards is newest first even when two
	// saves land on the same clock tick
	matched := make([]ledger.Record, 0, len(l.records))
	for i := len(l.records) - 1; i >= 0; i-- {
		rec := l.records[i]
		if len(userId) > 0 && rec.UserId != userId {
			continue
		}
		matched = append(matched, rec)
		if limit > 0 && len(matched) == limit {
			break
		}
	}

	return matched, nil
}

func (l *memoryLedger) Analytics(ctx context.Context) (*ledger.Analytics, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	analytics := &ledger.Analytics{
		TopQueries: []ledger.QueryCount{},
	}

	if len(l.records) == 0 {
		return analytics, nil
	}

	var totalLatency, totalSources int64
	counts := map[string]int{}

	for _, rec := range l.records {
		totalLatency += rec.ProcessingTimeMs
		totalSources += int64(len(rec.Sources))
		counts[rec.Query]++
	}

	analytics.TotalQueries = len(l.records)
	analytics.AvgLatencyMs = float64(totalLatency) / float64(len(l.records))
	analytics.AvgSourceCount = float64(totalSources) / float64(len(l.records))

	for query, count := range counts {
		analytics.TopQueries = append(analytics.TopQueries, ledger.QueryCount{Query: query, Count: count})
	}
	sort.Slice(analytics.TopQueries, func(i, j int) bool {
		if analytics.TopQueries[i].Count != analytics.TopQueries[j].Count {
			return analytics.TopQueries[i].Count > analytics.TopQueries[j].Count
		}
		return analytics.TopQueries[i].Query < analytics.TopQueries[j].Query
	})
	if len(analytics.TopQueries) > topQueryCount {
		analytics.TopQueries = analytics.TopQueries[:topQueryCount]
	}

	return analytics, nil
}

func NewLedger() ledger.Ledger {
	return &memoryLedger{}
}
