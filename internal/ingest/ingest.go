// Package ingest turns uploaded documents into unindexed source records.
// It never writes to the vector store; the indexing synchronizer picks
// the deposited records up on its next pass.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/GovStackAPI/internal/adapter/utils"
	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/domain/jobModel"
	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

var logger = logger_i.NewLogger("Ingest")

type rawPage struct {
	Number  int
	Content string
}

type docType int

const (
	typePDF docType = iota
	typeDocx
	typeUnsupported
)

type RecordSink interface {
	UpsertRecord(ctx context.Context, rec recordModel.SourceRecord) (string, error)
}

// ProcessDocumentUpload extracts the uploaded file named by the job
// payload and deposits it as a source record. The returned job carries
// the final status for the job store.
func ProcessDocumentUpload(ctx context.Context, job jobModel.Job, sink RecordSink) jobModel.Job {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", job.Id)

	job.CurrentStep = jobModel.IngestProcessing

	pages, err := extractText(job.JobPayload.IngestURL, getDocType(job.JobPayload.IngestFileName))
	if err != nil {
		return failJob(job, err, log)
	}

	var content strings.Builder
	for _, page := range pages {
		content.WriteString(page.Content)
		content.WriteString("\n")
	}

	collection := job.JobPayload.CollectionID
	if collection == "" {
		collection = config.DefaultCollectionID
	}

	now := time.Now().UTC()
	_, err = sink.UpsertRecord(ctx, recordModel.SourceRecord{
		Id:           utils.GetNewUUID(),
		CollectionID: collection,
		URL:          "upload://" + job.JobPayload.IngestFileName,
		Title:        job.JobPayload.IngestFileName,
		Content:      content.String(),
		FirstCrawled: now,
		LastCrawled:  now,
	})
	if err != nil {
		return failJob(job, err, log)
	}

	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	job.EndTime = time.Now().UTC()
	log.Info("Document deposited", "file", job.JobPayload.IngestFileName, "pages", len(pages))
	return job
}

func failJob(job jobModel.Job, err error, log *logger_i.Logger) jobModel.Job {
	log.Error("Ingestion failed", "error", err)
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	job.Error = jobModel.JobError{Code: 500, Message: err.Error()}
	job.EndTime = time.Now().UTC()
	return job
}

func getDocType(docPath string) docType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return typePDF
	case ".docx", ".txt", ".rtf", ".odt":
		return typeDocx
	default:
		return typeUnsupported
	}
}

func extractText(path string, contentType docType) ([]rawPage, error) {
	switch contentType {
	case typePDF:
		return extractPDF(path)
	case typeDocx:
		return extractDocxTxtRtf(path)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}
