package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

const timeFormat = time.RFC3339Nano

// RecordStore reads crawled webpages and mutates nothing but their
// indexed flag. Rows are created by the crawler and the upload path.
type RecordStore struct {
	store  *Store
	logger *logger_i.Logger
}

// UpsertRecord inserts a source record, or refreshes an existing row for
// the same (collection, url). A content refresh resets the indexed flag
// so the synchronizer picks the record up again.
func (r *RecordStore) UpsertRecord(ctx context.Context, rec recordModel.SourceRecord) (string, error) {
	now := time.Now().UTC()
	if rec.FirstCrawled.IsZero() {
		rec.FirstCrawled = now
	}
	if rec.LastCrawled.IsZero() {
		rec.LastCrawled = now
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO webpages (id, collection_id, url, title, content_markdown, first_crawled, last_crawled, is_indexed, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, NULL)
		ON CONFLICT(collection_id, url) DO UPDATE SET
			title = excluded.title,
			content_markdown = excluded.content_markdown,
			last_crawled = excluded.last_crawled,
			is_indexed = 0,
			indexed_at = NULL`,
		rec.Id, rec.CollectionID, rec.URL, rec.Title, rec.Content,
		rec.FirstCrawled.Format(timeFormat), rec.LastCrawled.Format(timeFormat))
	if err != nil {
		return "", fmt.Errorf("upserting record %s: %w", rec.URL, err)
	}

	var id string
	row := r.store.db.QueryRowContext(ctx,
		`SELECT id FROM webpages WHERE collection_id = ? AND url = ?`, rec.CollectionID, rec.URL)
	if err := row.Scan(&id); err != nil {
		return "", fmt.Errorf("reading back record id: %w", err)
	}
	return id, nil
}

// SelectUnindexed returns the records of a collection that still need
// vectors: indexed flag down and non-empty content. Read-only.
func (r *RecordStore) SelectUnindexed(ctx context.Context, collectionID string) ([]recordModel.SourceRecord, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, collection_id, url, title, content_markdown, first_crawled, last_crawled
		FROM webpages
		WHERE collection_id = ? AND is_indexed = 0 AND content_markdown != ''
		ORDER BY last_crawled`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("selecting unindexed records: %w", err)
	}
	defer rows.Close()

	var records []recordModel.SourceRecord
	for rows.Next() {
		var rec recordModel.SourceRecord
		var firstCrawled, lastCrawled string
		if err := rows.Scan(&rec.Id, &rec.CollectionID, &rec.URL, &rec.Title, &rec.Content, &firstCrawled, &lastCrawled); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.FirstCrawled, _ = time.Parse(timeFormat, firstCrawled)
		rec.LastCrawled, _ = time.Parse(timeFormat, lastCrawled)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("Selected unindexed records", "collectionId", collectionID, "count", len(records))
	return records, nil
}

// MarkIndexed flips the indexed flag for the given ids, committing in
// bounded batches so a failure mid-way leaves earlier batches indexed
// (harmless - upserts are idempotent) and later ids still unindexed for
// the next run. Returns how many ids were committed.
func (r *RecordStore) MarkIndexed(ctx context.Context, ids []string, indexedAt time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	at := indexedAt.UTC().Format(timeFormat)
	marked := 0
	for start := 0; start < len(ids); start += config.MarkIndexedBatch {
		end := start + config.MarkIndexedBatch
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		if err := r.markBatch(ctx, batch, at); err != nil {
			return marked, fmt.Errorf("marking batch at offset %d: %w", start, err)
		}
		marked += len(batch)
	}

	r.logger.Info("Marked records as indexed", "count", marked)
	return marked, nil
}

func (r *RecordStore) markBatch(ctx context.Context, ids []string, at string) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	args := make([]any, 0, len(ids)+1)
	args = append(args, at)
	for _, id := range ids {
		args = append(args, id)
	}

	query := fmt.Sprintf(
		`UPDATE webpages SET is_indexed = 1, indexed_at = ? WHERE id IN (%s)`,
		placeholders(len(ids)))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// CollectionStats reports corpus-level counters for one collection.
func (r *RecordStore) CollectionStats(ctx context.Context, collectionID string) (recordModel.CollectionStats, error) {
	stats := recordModel.CollectionStats{CollectionID: collectionID}

	row := r.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(LENGTH(content_markdown)), 0),
		       COALESCE(MIN(first_crawled), ''), COALESCE(MAX(last_crawled), '')
		FROM webpages WHERE collection_id = ?`, collectionID)

	var earliest, latest string
	if err := row.Scan(&stats.WebpageCount, &stats.TotalCharacters, &earliest, &latest); err != nil {
		return stats, fmt.Errorf("collection stats for %s: %w", collectionID, err)
	}
	if t, err := time.Parse(timeFormat, earliest); err == nil {
		stats.EarliestCrawl = &t
	}
	if t, err := time.Parse(timeFormat, latest); err == nil {
		stats.LatestCrawl = &t
	}
	return stats, nil
}
