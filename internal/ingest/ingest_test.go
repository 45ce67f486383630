package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/GovStackAPI/internal/domain/jobModel"
	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
)

type mockSink struct {
	upsertFunc func(ctx context.Context, rec recordModel.SourceRecord) (string, error)
}

func (m *mockSink) UpsertRecord(ctx context.Context, rec recordModel.SourceRecord) (string, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, rec)
	}
	return rec.Id, nil
}

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected docType
	}{
		{"test.pdf", typePDF},
		{"DOC.DOCX", typeDocx},
		{"notes.txt", typeDocx},
		{"brief.rtf", typeDocx},
		{"image.png", typeUnsupported},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestProcessDocumentUploadTxt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.txt")
	if err := os.WriteFile(path, []byte("Apply for a business permit at the county office."), 0600); err != nil {
		t.Fatal(err)
	}

	var deposited recordModel.SourceRecord
	sink := &mockSink{
		upsertFunc: func(ctx context.Context, rec recordModel.SourceRecord) (string, error) {
			deposited = rec
			return rec.Id, nil
		},
	}

	job := jobModel.Job{
		Id:      "job-1",
		JobType: jobModel.JobTypeIngest,
		Status:  jobModel.JobStatusRunning,
		JobPayload: jobModel.JobPayload{
			CollectionID:   "permits",
			IngestFileName: "guide.txt",
			IngestURL:      path,
		},
	}

	done := ProcessDocumentUpload(context.Background(), job, sink)

	if done.Status != jobModel.JobStatusComplete {
		t.Fatalf("status = %s (%s)", done.Status, done.Error.Message)
	}
	if deposited.CollectionID != "permits" {
		t.Errorf("collection = %s, want permits", deposited.CollectionID)
	}
	if deposited.URL != "upload://guide.txt" {
		t.Errorf("url = %s", deposited.URL)
	}
	if !strings.Contains(deposited.Content, "business permit") {
		t.Errorf("content not extracted: %q", deposited.Content)
	}
	if deposited.IsIndexed {
		t.Error("deposited record must start unindexed")
	}
}

func TestProcessDocumentUploadUnsupportedType(t *testing.T) {
	job := jobModel.Job{
		Id: "job-2",
		JobPayload: jobModel.JobPayload{
			IngestFileName: "image.png",
			IngestURL:      "/tmp/image.png",
		},
	}

	done := ProcessDocumentUpload(context.Background(), job, &mockSink{})

	if done.Status != jobModel.JobStatusError {
		t.Errorf("status = %s, want error", done.Status)
	}
	if done.Error.Message == "" {
		t.Error("expected an error message on the job")
	}
}

func TestProcessDocumentUploadSinkFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0600); err != nil {
		t.Fatal(err)
	}

	sink := &mockSink{
		upsertFunc: func(ctx context.Context, rec recordModel.SourceRecord) (string, error) {
			return "", errors.New("database locked")
		},
	}

	job := jobModel.Job{
		Id:         "job-3",
		JobPayload: jobModel.JobPayload{IngestFileName: "notes.txt", IngestURL: path},
	}

	done := ProcessDocumentUpload(context.Background(), job, sink)
	if done.Status != jobModel.JobStatusError {
		t.Errorf("status = %s, want error", done.Status)
	}
}
