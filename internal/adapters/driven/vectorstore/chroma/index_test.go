package chroma

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

// newTestServer serves collection resolution and query endpoints.
func newTestServer(t *testing.T, queryResult map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/collections/internal-docs", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "coll-1", "name": "internal-docs"})
	})
	mux.HandleFunc("/api/v1/collections/coll-1/query", func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.QueryEmbeddings, 1)
		json.NewEncoder(w).Encode(queryResult)
	})
	mux.HandleFunc("/api/v1/heartbeat", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(mux)
}

// TestIndex_Query tests passage mapping from a Chroma query response
func TestIndex_Query(t *testing.T) {
	srv := newTestServer(t, map[string]any{
		"documents": [][]string{{"policy text", "handbook text"}},
		"metadatas": [][]map[string]any{{
			{"source": "hr/policy.pdf", "page": 2},
			{"source": "it/handbook.md"},
		}},
		"distances": [][]float64{{0.1, 0.4}},
	})
	defer srv.Close()

	idx := NewIndex(Config{BaseURL: srv.URL})
	passages, err := idx.Query(context.Background(), []float32{0.1, 0.2}, 5)
	require.NoError(t, err)
	require.Len(t, passages, 2)

	assert.Equal(t, "hr/policy.pdf", passages[0].Source)
	require.NotNil(t, passages[0].Page)
	assert.Equal(t, 2, *passages[0].Page)
	assert.Equal(t, "policy text", passages[0].Content)
	assert.InDelta(t, 0.9, passages[0].Score, 1e-9)

	// Page absent, not zero, when metadata lacks it.
	assert.Equal(t, "it/handbook.md", passages[1].Source)
	assert.Nil(t, passages[1].Page)
}

// TestIndex_QueryEmpty tests an empty result set
func TestIndex_QueryEmpty(t *testing.T) {
	srv := newTestServer(t, map[string]any{
		"documents": [][]string{{}},
		"metadatas": [][]map[string]any{{}},
		"distances": [][]float64{{}},
	})
	defer srv.Close()

	idx := NewIndex(Config{BaseURL: srv.URL})
	passages, err := idx.Query(context.Background(), []float32{0.1}, 3)
	require.NoError(t, err)
	assert.Empty(t, passages)
}

// TestIndex_CollectionCached tests that the collection is resolved once
func TestIndex_CollectionCached(t *testing.T) {
	resolves := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/collections/internal-docs", func(w http.ResponseWriter, _ *http.Request) {
		resolves++
		json.NewEncoder(w).Encode(map[string]string{"id": "coll-1"})
	})
	mux.HandleFunc("/api/v1/collections/coll-1/query", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"documents": [][]string{{}}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	idx := NewIndex(Config{BaseURL: srv.URL})
	for i := 0; i < 3; i++ {
		_, err := idx.Query(context.Background(), []float32{0.1}, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, resolves)
}

// TestIndex_UnknownCollection tests the not-found mapping
func TestIndex_UnknownCollection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	idx := NewIndex(Config{BaseURL: srv.URL, Collection: "missing"})
	_, err := idx.Query(context.Background(), []float32{0.1}, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestIndex_Ping tests the heartbeat check
func TestIndex_Ping(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()

	idx := NewIndex(Config{BaseURL: srv.URL})
	assert.NoError(t, idx.Ping(context.Background()))

	srv.Close()
	assert.Error(t, idx.Ping(context.Background()))
}
