// Package chroma provides a vector index adapter backed by a Chroma
// server's REST API. The collection is built and maintained by the
// external indexing pipeline; this adapter only queries it.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:8000"
	DefaultCollection = "internal-docs"
	DefaultTimeout    = 30 * time.Second
)

// Metadata keys written by the indexing pipeline.
const (
	metaSource = "source"
	metaPage   = "page"
)

// Config holds configuration for the Chroma index.
type Config struct {
	// BaseURL is the Chroma server URL (default: http://localhost:8000).
	BaseURL string

	// Collection is the collection name (default: internal-docs).
	Collection string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Index queries a Chroma collection of document chunks.
type Index struct {
	client     *http.Client
	baseURL    string
	collection string

	mu           sync.Mutex
	collectionID string // resolved lazily on first query
}

// collectionResponse is the GET /api/v1/collections/{name} response.
type collectionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// queryRequest is the collection query request format.
type queryRequest struct {
	QueryEmbeddings [][]float32 `json:"query_embeddings"`
	NResults        int         `json:"n_results"`
	Include         []string    `json:"include"`
}

// queryResponse is the collection query response format. Chroma nests one
// result list per query embedding; we always send exactly one.
type queryResponse struct {
	Documents [][]string         `json:"documents"`
	Metadatas [][]map[string]any `json:"metadatas"`
	Distances [][]float64        `json:"distances"`
}

// errorResponse is Chroma's error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// NewIndex creates a new Chroma-backed vector index.
func NewIndex(cfg Config) *Index {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Index{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		collection: cfg.Collection,
	}
}

// Query returns up to topK passages most similar to the embedding,
// ordered by ascending distance (descending relevance).
func (x *Index) Query(ctx context.Context, embedding []float32, topK int) ([]domain.RetrievedPassage, error) {
	if topK <= 0 {
		topK = 5
	}

	collectionID, err := x.resolveCollection(ctx)
	if err != nil {
		return nil, err
	}

	reqBody := queryRequest{
		QueryEmbeddings: [][]float32{embedding},
		NResults:        topK,
		Include:         []string{"documents", "metadatas", "distances"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/collections/%s/query", x.baseURL, url.PathEscape(collectionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var chromaErr errorResponse
		if json.Unmarshal(body, &chromaErr) == nil && chromaErr.Error != "" {
			return nil, fmt.Errorf("chroma error: %s", chromaErr.Error)
		}
		return nil, fmt.Errorf("chroma error (status %d): %s", resp.StatusCode, string(body))
	}

	var queryResp queryResponse
	if err := json.Unmarshal(body, &queryResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return passagesFromResponse(queryResp), nil
}

// passagesFromResponse flattens the single-query result lists into
// passages, tolerating ragged or missing metadata.
func passagesFromResponse(resp queryResponse) []domain.RetrievedPassage {
	if len(resp.Documents) == 0 {
		return nil
	}

	docs := resp.Documents[0]
	passages := make([]domain.RetrievedPassage, 0, len(docs))

	for i, content := range docs {
		p := domain.RetrievedPassage{Content: content}

		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			meta := resp.Metadatas[0][i]
			if source, ok := meta[metaSource].(string); ok {
				p.Source = source
			}
			// Page is absent, not zero, when the metadata lacks it.
			// JSON numbers decode as float64.
			if page, ok := meta[metaPage].(float64); ok {
				n := int(page)
				p.Page = &n
			}
		}

		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			// Chroma reports distance; invert so larger means closer.
			p.Score = 1 - resp.Distances[0][i]
		}

		passages = append(passages, p)
	}

	return passages
}

// resolveCollection resolves the collection name to its ID, caching the
// result for the life of the index.
func (x *Index) resolveCollection(ctx context.Context) (string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.collectionID != "" {
		return x.collectionID, nil
	}

	endpoint := fmt.Sprintf("%s/api/v1/collections/%s", x.baseURL, url.PathEscape(x.collection))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve collection: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("chroma: collection %q: %w", x.collection, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chroma error (status %d): %s", resp.StatusCode, string(body))
	}

	var coll collectionResponse
	if err := json.Unmarshal(body, &coll); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if coll.ID == "" {
		return "", fmt.Errorf("chroma: collection %q has no id", x.collection)
	}

	x.collectionID = coll.ID
	return x.collectionID, nil
}

// Ping validates the server is reachable via the heartbeat endpoint.
func (x *Index) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, x.baseURL+"/api/v1/heartbeat", http.NoBody)
	if err != nil {
		return fmt.Errorf("chroma: failed to create ping request: %w", err)
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return fmt.Errorf("chroma: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chroma: server returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (x *Index) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
