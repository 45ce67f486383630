package api

import (
	"time"

	"github.com/akolanti/GovStackAPI/internal/domain/chatModel"
	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status   string                `json:"status"`
	IndexRun *recordModel.IndexRun `json:"index_run,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type ChatResponse struct {
	SessionID     string             `json:"session_id"`
	Answer        string             `json:"answer"`
	Sources       []chatModel.Source `json:"sources,omitempty"`
	Confidence    float64            `json:"confidence"`
	RetrieverType string             `json:"retriever_type"`
	TraceID       string             `json:"trace_id"`
}

type ChatHistoryMessage struct {
	Kind      string             `json:"kind"`
	Text      string             `json:"text"`
	Sources   []chatModel.Source `json:"sources,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

type ChatHistoryResponse struct {
	SessionID   string               `json:"session_id"`
	Messages    []ChatHistoryMessage `json:"messages"`
	NumMessages int                  `json:"num_messages"`
}

type DeleteChatResponse struct {
	SessionID string `json:"session_id"`
	Deleted   bool   `json:"deleted"`
}

type CollectionStatsResponse struct {
	CollectionID    string     `json:"collection_id"`
	WebpageCount    int        `json:"webpage_count"`
	TotalCharacters int        `json:"total_characters"`
	EarliestCrawl   *time.Time `json:"earliest_crawl,omitempty"`
	LatestCrawl     *time.Time `json:"latest_crawl,omitempty"`
}

// requests---------------------

type ChatRequest struct {
	Message      string `json:"message" validate:"required"`
	SessionID    string `json:"session_id,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	CollectionID string `json:"collection_id,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type IngestDocumentRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
}
