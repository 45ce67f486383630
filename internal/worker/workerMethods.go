package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/GovStackAPI/internal/config"
	jobmodel "github.com/akolanti/GovStackAPI/internal/domain/jobModel"
	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
	"github.com/akolanti/GovStackAPI/internal/ingest"
	"github.com/akolanti/GovStackAPI/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IndexingJobTimeout)
	defer cancel()
	log := logger.With("traceId", job.TraceId, "jobId", job.Id)
	log.Debug("Processing job", "type", job.JobType)

	job.Status = jobmodel.JobStatusRunning
	saveJobState(ctx, job)

	switch job.JobType {
	case jobmodel.JobTypeIngest:
		job = ingest.ProcessDocumentUpload(ctx, job, _recordSink)

	case jobmodel.JobTypeIndex:
		job = runIndexing(ctx, job)

	default:
		job.Status = jobmodel.JobStatusError
		job.Error = jobmodel.JobError{Code: 400, Message: "unknown job type"}
	}

	job.EndTime = time.Now()
	saveJobState(ctx, job)
}

func runIndexing(ctx context.Context, job jobmodel.Job) jobmodel.Job {
	job.CurrentStep = jobmodel.IndexSelecting
	run := _indexer.IndexCollection(ctx, job.JobPayload.CollectionID)
	job.JobPayload.Run = &run

	if run.Status == recordModel.IndexRunFailed {
		job.Status = jobmodel.JobStatusError
		job.CurrentStep = jobmodel.Error
		job.Error = jobmodel.JobError{Code: 500, Message: run.Error}
		metrics.CaptureIndexingRun(run.CollectionID, string(run.Status), run.Indexed)
		return job
	}

	job.Status = jobmodel.JobStatusComplete
	job.CurrentStep = jobmodel.Complete
	metrics.CaptureIndexingRun(run.CollectionID, string(run.Status), run.Indexed)
	return job
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}

// retireIdleWorker claims this worker's slot back, keeping at least
// minWorkerCount workers alive. The CAS stops two idle workers from
// both retiring past the floor.
func retireIdleWorker() bool {
	for {
		count := atomic.LoadInt64(&currentWorkerCount)
		if count <= minWorkerCount {
			return false
		}
		if atomic.CompareAndSwapInt64(&currentWorkerCount, count, count-1) {
			workerWaitGroup.Done()
			logger.Info("Removed worker ", "reason", "Idle worker timeout", "workerCount", count-1)
			metrics.DecrementActiveWorkerCount()
			return true
		}
	}
}

func saveJobState(ctx context.Context, job jobmodel.Job) {
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
