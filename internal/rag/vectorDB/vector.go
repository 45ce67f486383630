package vectorDB

import (
	"context"

	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
)

// Hit is one retrieved chunk with the payload metadata the answer
// surface cites back to the user.
type Hit struct {
	Content    string
	Title      string
	URL        string
	SourceID   string
	ChunkOrder int
	Score      float32
}

type VectorStore interface {
	// EnsureNamespace creates the per-collection namespace if missing.
	EnsureNamespace(ctx context.Context, namespace string) error

	// UpsertBatch writes chunk vectors under stable ids so re-indexing
	// the same record overwrites instead of duplicating.
	UpsertBatch(ctx context.Context, namespace string, chunks []recordModel.RecordChunk, vectors [][]float32) error

	Query(ctx context.Context, namespace string, vector []float32, topK uint64) ([]Hit, error)
}
