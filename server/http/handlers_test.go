package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hanlingo/hanlingo/content"
	contentmemory "github.com/hanlingo/hanlingo/content/memory"
	"github.com/hanlingo/hanlingo/embedder"
	mockembedder "github.com/hanlingo/hanlingo/embedder/mock"
	mockgenerator "github.com/hanlingo/hanlingo/generator/mock"
	"github.com/hanlingo/hanlingo/index"
	indexmemory "github.com/hanlingo/hanlingo/index/memory"
	"github.com/hanlingo/hanlingo/internal/service/query"
	"github.com/hanlingo/hanlingo/internal/service/reindex"
	ledgermemory "github.com/hanlingo/hanlingo/ledger/memory"
)

const testDimension = 32

func newTestHandler(t *testing.T) (*Handler, index.Index) {
	t.Helper()

	logger := zap.NewNop()
	emb := mockembedder.NewEmbedder(embedder.WithDimension(testDimension))
	idx := indexmemory.NewIndex()
	led := ledgermemory.NewLedger()
	gen := mockgenerator.NewGenerator()

	store := contentmemory.NewStore(
		[]content.Word{{Id: "w-1", Headword: "你好", Pinyin: "nǐ hǎo", HskLevel: 1, Senses: []content.Sense{
			{PartOfSpeech: "interjection", Translations: []string{"hello"}},
		}}},
		nil, nil, nil,
	)

	querySvc := query.New(emb, idx, gen, led, logger)
	reindexSvc := reindex.New(store, emb, idx, logger, reindex.WithBatchPause(0))

	return NewHandler(querySvc, reindexSvc, idx, led, emb, logger), idx
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleQuery(t *testing.T) {
	handler, _ := newTestHandler(t)
	routes := handler.Routes()

	t.Run("answers a query", func(t *testing.T) {
		rec := doJSON(t, routes, http.MethodPost, "/api/v1/query", map[string]any{
			"query": "What does 你好 mean?",
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var rsp query.Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&rsp))
		assert.NotEmpty(t, rsp.Answer)
		assert.NotEmpty(t, rsp.RecordId)
	})

	t.Run("an empty query is a 400", func(t *testing.T) {
		rec := doJSON(t, routes, http.MethodPost, "/api/v1/query", map[string]any{"query": ""})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("an out-of-range hsk level is a 400", func(t *testing.T) {
		rec := doJSON(t, routes, http.MethodPost, "/api/v1/query", map[string]any{
			"query":     "你好",
			"hsk_level": 9,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("a malformed body is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/query", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleSearch(t *testing.T) {
	handler, _ := newTestHandler(t)
	routes := handler.Routes()

	t.Run("searches the corpus", func(t *testing.T) {
		rec := doJSON(t, routes, http.MethodPost, "/api/v1/search", map[string]any{
			"text":           "greetings",
			"min_similarity": 0.0,
			"limit":          5,
		})

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("an unknown source type is a 400", func(t *testing.T) {
		rec := doJSON(t, routes, http.MethodPost, "/api/v1/search", map[string]any{
			"text":           "greetings",
			"source_types":   []string{"VIDEO"},
			"min_similarity": 0.0,
			"limit":          5,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid parameters are a 400", func(t *testing.T) {
		rec := doJSON(t, routes, http.MethodPost, "/api/v1/search", map[string]any{
			"text":           "greetings",
			"min_similarity": 1.5,
			"limit":          5,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing text is a 400", func(t *testing.T) {
		rec := doJSON(t, routes, http.MethodPost, "/api/v1/search", map[string]any{
			"min_similarity": 0.5,
			"limit":          5,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleSimilar(t *testing.T) {
	handler, idx := newTestHandler(t)
	routes := handler.Routes()

	ctx := context.Background()

	anchor := make([]float32, testDimension)
	anchor[0] = 1
	neighbor := make([]float32, testDimension)
	neighbor[0] = 0.9
	neighbor[1] = 0.436

	for sourceId, vec := range map[string][]float32{"w-1": anchor, "w-2": neighbor} {
		_, err := idx.Insert(ctx, index.Record{
			SourceType:  content.SourceWord,
			SourceId:    sourceId,
			ContentText: sourceId,
			Embedding:   vec,
		})
		require.NoError(t, err)
	}

	t.Run("finds neighbors of an indexed record", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/similar/WORD/w-1?min_similarity=0.5&limit=5", nil)
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var rsp struct {
			Results []index.Result `json:"results"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&rsp))
		require.Len(t, rsp.Results, 1)
		assert.Equal(t, "w-2", rsp.Results[0].Record.SourceId)
	})

	t.Run("an unknown source type is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/similar/VIDEO/w-1", nil)
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("a malformed limit is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/similar/WORD/w-1?limit=abc", nil)
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("a malformed min_similarity is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/similar/WORD/w-1?min_similarity=high", nil)
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("a missing anchor yields an empty result set", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/similar/WORD/missing", nil)
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var rsp struct {
			Results []index.Result `json:"results"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&rsp))
		assert.Empty(t, rsp.Results)
	})
}

func TestHandleReindex(t *testing.T) {
	handler, idx := newTestHandler(t)
	routes := handler.Routes()

	rec := doJSON(t, routes, http.MethodPost, "/api/v1/reindex", nil)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var rsp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rsp))
	assert.Equal(t, "processing", rsp["status"])

	assert.Eventually(t, func() bool {
		stats, err := idx.Stats(context.Background())
		return err == nil && stats.Active == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHandleEmbedding(t *testing.T) {
	handler, _ := newTestHandler(t)
	routes := handler.Routes()

	t.Run("embeds text", func(t *testing.T) {
		rec := doJSON(t, routes, http.MethodPost, "/api/v1/embedding", map[string]any{"text": "你好"})

		require.Equal(t, http.StatusOK, rec.Code)

		var rsp struct {
			Vector    []float32 `json:"vector"`
			Dimension int       `json:"dimension"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&rsp))
		assert.Equal(t, testDimension, rsp.Dimension)
		assert.Len(t, rsp.Vector, testDimension)
	})

	t.Run("missing text is a 400", func(t *testing.T) {
		rec := doJSON(t, routes, http.MethodPost, "/api/v1/embedding", map[string]any{})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleHistoryRejectsMalformedLimit(t *testing.T) {
	handler, _ := newTestHandler(t)
	routes := handler.Routes()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=abc", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealthStatsHistoryAnalytics(t *testing.T) {
	handler, _ := newTestHandler(t)
	routes := handler.Routes()

	for _, path := range []string{
		"/api/v1/health",
		"/api/v1/stats",
		"/api/v1/history",
		"/api/v1/analytics",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}
