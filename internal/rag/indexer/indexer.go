// Package indexer moves crawled records into the vector store: select
// what is unindexed, chunk, embed, upsert, and only then mark indexed.
package indexer

import (
	"context"
	"time"

	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
	"github.com/akolanti/GovStackAPI/internal/rag/embedding"
	"github.com/akolanti/GovStackAPI/internal/rag/vectorDB"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

type RecordSource interface {
	SelectUnindexed(ctx context.Context, collectionID string) ([]recordModel.SourceRecord, error)
	MarkIndexed(ctx context.Context, ids []string, indexedAt time.Time) (int, error)
}

type Synchronizer struct {
	source   RecordSource
	embedder embedding.Embedder
	vectors  vectorDB.VectorStore
	logger   *logger_i.Logger
}

func NewSynchronizer(source RecordSource, embedder embedding.Embedder, vectors vectorDB.VectorStore) *Synchronizer {
	return &Synchronizer{
		source:   source,
		embedder: embedder,
		vectors:  vectors,
		logger:   logger_i.NewLogger("Indexer"),
	}
}

// IndexCollection runs one synchronizer pass over a collection. The run
// never marks a record indexed before its vectors are in the store, so
// a failure anywhere leaves the remainder selectable for the next pass.
func (s *Synchronizer) IndexCollection(ctx context.Context, collectionID string) recordModel.IndexRun {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "collectionId", collectionID)

	run := recordModel.IndexRun{
		CollectionID: collectionID,
		StartTime:    time.Now().UTC(),
		Status:       recordModel.IndexRunStarted,
	}

	records, err := s.source.SelectUnindexed(ctx, collectionID)
	if err != nil {
		return s.fail(run, "selecting unindexed records", err, log)
	}

	if len(records) == 0 {
		run.Status = recordModel.IndexRunCompleted
		run.Message = "No documents to index"
		run.EndTime = time.Now().UTC()
		log.Info("Nothing to index")
		return run
	}
	run.Processed = len(records)
	log.Info("Indexing run started", "documents", len(records))

	var chunks []recordModel.RecordChunk
	for _, rec := range records {
		chunks = append(chunks, ChunkRecord(rec)...)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Chunk
	}

	vectors, err := s.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		return s.fail(run, "embedding chunks", err, log)
	}

	if err := s.vectors.EnsureNamespace(ctx, collectionID); err != nil {
		return s.fail(run, "ensuring namespace", err, log)
	}

	if err := s.vectors.UpsertBatch(ctx, collectionID, chunks, vectors); err != nil {
		return s.fail(run, "upserting vectors", err, log)
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.Id
	}
	marked, err := s.source.MarkIndexed(ctx, ids, time.Now().UTC())
	run.Indexed = marked
	if err != nil {
		// vectors for the unmarked tail are already upserted; the next
		// run re-embeds them onto the same point ids
		return s.fail(run, "marking records indexed", err, log)
	}

	run.Status = recordModel.IndexRunCompleted
	run.EndTime = time.Now().UTC()
	log.Info("Indexing run completed", "documents", run.Processed, "indexed", run.Indexed, "chunks", len(chunks))
	return run
}

func (s *Synchronizer) fail(run recordModel.IndexRun, step string, err error, log *logger_i.Logger) recordModel.IndexRun {
	run.Status = recordModel.IndexRunFailed
	run.Error = step + ": " + err.Error()
	run.EndTime = time.Now().UTC()
	log.Error("Indexing run failed", "step", step, "error", err)
	return run
}
