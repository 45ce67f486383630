package embedding

import "context"

type Embedder interface {
	// GetEmbedding embeds a single retrieval query.
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	// BatchEmbedding embeds document chunks, sub-batching internally to
	// respect provider request limits. Output order matches input order.
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}
