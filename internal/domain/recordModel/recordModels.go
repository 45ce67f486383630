package recordModel

import "time"

// SourceRecord is a crawled or uploaded page in the relational store.
// The crawler creates rows; the indexing synchronizer only reads them
// and flips the indexed flag.
type SourceRecord struct {
	Id           string     `json:"id"`
	CollectionID string     `json:"collection_id"`
	URL          string     `json:"url"`
	Title        string     `json:"title,omitempty"`
	Content      string     `json:"content"`
	FirstCrawled time.Time  `json:"first_crawled"`
	LastCrawled  time.Time  `json:"last_crawled"`
	IsIndexed    bool       `json:"is_indexed"`
	IndexedAt    *time.Time `json:"indexed_at,omitempty"`
}

// RecordChunk is a bounded sub-span of a record's content produced for
// embedding. ChunkId is deterministic (record id + order) so repeated
// upserts of the same chunk land on the same vector point.
type RecordChunk struct {
	Record     SourceRecord
	ChunkId    string `json:"chunk_id"`
	Chunk      string `json:"content"`
	ChunkOrder int    `json:"chunk_order"`
}

type IndexRunStatus string

const (
	IndexRunStarted   IndexRunStatus = "started"
	IndexRunCompleted IndexRunStatus = "completed"
	IndexRunFailed    IndexRunStatus = "failed"
)

// IndexRun is the result record of one synchronizer pass over a collection.
type IndexRun struct {
	CollectionID string         `json:"collection_id"`
	StartTime    time.Time      `json:"start_time"`
	EndTime      time.Time      `json:"end_time"`
	Processed    int            `json:"documents_processed"`
	Indexed      int            `json:"documents_indexed"`
	Status       IndexRunStatus `json:"status"`
	Message      string         `json:"message,omitempty"`
	Error        string         `json:"error,omitempty"`
}

type CollectionStats struct {
	CollectionID    string     `json:"collection_id"`
	WebpageCount    int        `json:"webpage_count"`
	TotalCharacters int        `json:"total_characters"`
	EarliestCrawl   *time.Time `json:"earliest_crawl,omitempty"`
	LatestCrawl     *time.Time `json:"latest_crawl,omitempty"`
}
