package openaiEmbedding

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newStubClient(t *testing.T, body string) *client {
	t.Helper()
	logger_i.Init()
	logger = logger_i.NewLogger("openai_embedding_test")

	stub := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})
	return &client{
		api: openai.NewClient(
			option.WithAPIKey("test-key"),
			option.WithHTTPClient(&http.Client{Transport: stub}),
		),
		model: config.OpenAIEmbeddingModel,
	}
}

func TestGetEmbeddingEmptyResponseData(t *testing.T) {
	c := newStubClient(t, `{"object":"list","data":[],"model":"text-embedding-3-small","usage":{"prompt_tokens":0,"total_tokens":0}}`)

	// must surface an error instead of indexing into an empty slice
	if _, err := c.GetEmbedding(context.Background(), "passport renewal"); err == nil {
		t.Fatal("expected an error for a response with no vectors")
	}
}

func TestBatchEmbeddingShortResponseData(t *testing.T) {
	c := newStubClient(t, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1,0.2]}],"model":"text-embedding-3-small","usage":{"prompt_tokens":2,"total_tokens":2}}`)

	if _, err := c.BatchEmbedding(context.Background(), []string{"one", "two"}); err == nil {
		t.Fatal("expected an error when the response returns fewer vectors than inputs")
	}
}

func TestGetEmbeddingOrdersByIndex(t *testing.T) {
	c := newStubClient(t, `{"object":"list","data":[{"object":"embedding","index":1,"embedding":[0.3,0.4]},{"object":"embedding","index":0,"embedding":[0.1,0.2]}],"model":"text-embedding-3-small","usage":{"prompt_tokens":2,"total_tokens":2}}`)

	vectors, err := c.BatchEmbedding(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("BatchEmbedding: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vectors))
	}
	if vectors[0][0] != 0.1 || vectors[1][0] != 0.3 {
		t.Errorf("vectors not placed by response index: %v", vectors)
	}
}
