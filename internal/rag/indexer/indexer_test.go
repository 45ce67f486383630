package indexer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/akolanti/GovStackAPI/internal/data/sqlstore"
	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
	"github.com/akolanti/GovStackAPI/internal/rag/vectorDB"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

type mockEmbedder struct {
	batchFn func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return []float32{0.1}, nil
}

func (m *mockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.batchFn != nil {
		return m.batchFn(ctx, chunks)
	}
	vectors := make([][]float32, len(chunks))
	for i := range chunks {
		vectors[i] = []float32{float32(i)}
	}
	return vectors, nil
}

type mockVectorStore struct {
	ensureFn func(ctx context.Context, namespace string) error
	upsertFn func(ctx context.Context, namespace string, chunks []recordModel.RecordChunk, vectors [][]float32) error
}

func (m *mockVectorStore) EnsureNamespace(ctx context.Context, namespace string) error {
	if m.ensureFn != nil {
		return m.ensureFn(ctx, namespace)
	}
	return nil
}

func (m *mockVectorStore) UpsertBatch(ctx context.Context, namespace string, chunks []recordModel.RecordChunk, vectors [][]float32) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, namespace, chunks, vectors)
	}
	return nil
}

func (m *mockVectorStore) Query(ctx context.Context, namespace string, vector []float32, topK uint64) ([]vectorDB.Hit, error) {
	return nil, nil
}

func newTestSource(t *testing.T) *sqlstore.RecordStore {
	t.Helper()
	logger_i.Init()
	store, err := sqlstore.Open("")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store.RecordStore()
}

func seed(t *testing.T, src *sqlstore.RecordStore, collection string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := src.UpsertRecord(context.Background(), recordModel.SourceRecord{
			Id:           fmt.Sprintf("rec-%s-%d", collection, i),
			CollectionID: collection,
			URL:          fmt.Sprintf("https://example.go.ke/%s/%d", collection, i),
			Title:        "Page",
			Content:      "Visa applications are processed within ten working days.",
		})
		if err != nil {
			t.Fatalf("seeding record: %v", err)
		}
	}
}

func TestIndexCollectionEmptySelection(t *testing.T) {
	src := newTestSource(t)
	sync := NewSynchronizer(src, &mockEmbedder{}, &mockVectorStore{})

	run := sync.IndexCollection(context.Background(), "empty")

	if run.Status != recordModel.IndexRunCompleted {
		t.Errorf("status = %s, want completed", run.Status)
	}
	if run.Message == "" {
		t.Error("expected an explanatory message for the empty run")
	}
	if run.Processed != 0 || run.Indexed != 0 {
		t.Errorf("counts = %d/%d, want 0/0", run.Processed, run.Indexed)
	}
}

func TestIndexCollectionHappyPath(t *testing.T) {
	src := newTestSource(t)
	seed(t, src, "services", 3)

	var upsertedNamespace string
	var upsertedChunks int
	vectors := &mockVectorStore{
		upsertFn: func(ctx context.Context, namespace string, chunks []recordModel.RecordChunk, vecs [][]float32) error {
			upsertedNamespace = namespace
			upsertedChunks = len(chunks)
			if len(chunks) != len(vecs) {
				t.Errorf("chunk/vector mismatch: %d vs %d", len(chunks), len(vecs))
			}
			return nil
		},
	}

	sync := NewSynchronizer(src, &mockEmbedder{}, vectors)
	run := sync.IndexCollection(context.Background(), "services")

	if run.Status != recordModel.IndexRunCompleted {
		t.Fatalf("status = %s (%s)", run.Status, run.Error)
	}
	if run.Processed != 3 || run.Indexed != 3 {
		t.Errorf("counts = %d/%d, want 3/3", run.Processed, run.Indexed)
	}
	if upsertedNamespace != "services" || upsertedChunks == 0 {
		t.Errorf("upsert got namespace=%q chunks=%d", upsertedNamespace, upsertedChunks)
	}

	// everything marked: a second pass has nothing to do
	again := sync.IndexCollection(context.Background(), "services")
	if again.Processed != 0 {
		t.Errorf("second pass processed %d records, want 0", again.Processed)
	}
}

func TestIndexCollectionUpsertFailureLeavesRecordsUnmarked(t *testing.T) {
	src := newTestSource(t)
	seed(t, src, "services", 2)

	vectors := &mockVectorStore{
		upsertFn: func(ctx context.Context, namespace string, chunks []recordModel.RecordChunk, vecs [][]float32) error {
			return errors.New("qdrant offline")
		},
	}

	sync := NewSynchronizer(src, &mockEmbedder{}, vectors)
	run := sync.IndexCollection(context.Background(), "services")

	if run.Status != recordModel.IndexRunFailed {
		t.Fatalf("status = %s, want failed", run.Status)
	}
	if run.Indexed != 0 {
		t.Errorf("indexed = %d, want 0 after upsert failure", run.Indexed)
	}

	remaining, err := src.SelectUnindexed(context.Background(), "services")
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 2 {
		t.Errorf("records still unindexed = %d, want 2", len(remaining))
	}
}

func TestIndexCollectionEmbedFailure(t *testing.T) {
	src := newTestSource(t)
	seed(t, src, "services", 1)

	embedder := &mockEmbedder{
		batchFn: func(ctx context.Context, chunks []string) ([][]float32, error) {
			return nil, errors.New("quota exceeded")
		},
	}

	sync := NewSynchronizer(src, embedder, &mockVectorStore{})
	run := sync.IndexCollection(context.Background(), "services")

	if run.Status != recordModel.IndexRunFailed || run.Error == "" {
		t.Errorf("run = %+v, want failed with error", run)
	}
	if run.EndTime.Before(run.StartTime) {
		t.Error("end time precedes start time")
	}
}

func TestChunkRecordStableIDs(t *testing.T) {
	rec := recordModel.SourceRecord{
		Id:           "rec-1",
		CollectionID: "services",
		Content:      "Short content.",
		LastCrawled:  time.Now(),
	}

	first := ChunkRecord(rec)
	second := ChunkRecord(rec)

	if len(first) != 1 {
		t.Fatalf("chunk count = %d, want 1", len(first))
	}
	if first[0].ChunkId != second[0].ChunkId {
		t.Errorf("chunk ids differ across runs: %s vs %s", first[0].ChunkId, second[0].ChunkId)
	}

	other := ChunkRecord(recordModel.SourceRecord{Id: "rec-2", Content: "Short content."})
	if other[0].ChunkId == first[0].ChunkId {
		t.Error("different records produced the same chunk id")
	}
}

func TestSplitTextIntoChunksRespectsLimit(t *testing.T) {
	var text string
	for i := 0; i < 100; i++ {
		text += fmt.Sprintf("Sentence number %d about permits. ", i)
	}

	chunks := splitTextIntoChunks(text, 200, 50)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 200+50 {
			t.Errorf("chunk %d length %d exceeds limit plus overlap", i, len(c))
		}
	}
}
