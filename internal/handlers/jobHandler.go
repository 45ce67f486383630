package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/GovStackAPI/internal/chat"
	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/data/sqlstore"
	"github.com/akolanti/GovStackAPI/internal/domain/jobModel"
	"github.com/akolanti/GovStackAPI/internal/job"
	"github.com/akolanti/GovStackAPI/internal/metrics"
	"github.com/akolanti/GovStackAPI/internal/session"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

var (
	handlerInstance *handlerDeps //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type handlerDeps struct {
	jobs     *job.Service
	chat     *chat.Orchestrator
	sessions *session.Service
	records  *sqlstore.RecordStore
}

type Services struct {
	Jobs     *job.Service
	Chat     *chat.Orchestrator
	Sessions *session.Service
	Records  *sqlstore.RecordStore
}

func InitHandlers(services Services) {
	once.Do(func() {
		handlerInstance = &handlerDeps{
			jobs:     services.Jobs,
			chat:     services.Chat,
			sessions: services.Sessions,
			records:  services.Records,
		}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Handlers initialized")
	})
}

type newJobData struct {
	id             string
	jobType        jobModel.JobType
	collectionID   string
	documentName   string
	documentSource string
	traceId        string
}

func CreateNewJob(newJob newJobData) {
	log := logJH.With("traceId", newJob.traceId, "jobId", newJob.id)
	log.Info("Queueing new job", "type", newJob.jobType)
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.jobs.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *handlerDeps) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = newJob.jobType

	if newJob.jobType == jobModel.JobTypeIngest {
		_job.CurrentStep = jobModel.IngestInit
		_job.JobPayload.IngestFileName = newJob.documentName
		_job.JobPayload.IngestURL = newJob.documentSource
		_job.JobPayload.CollectionID = newJob.collectionID
	} else {
		_job.CurrentStep = jobModel.IndexInit
		_job.JobPayload.CollectionID = newJob.collectionID
	}

	//record the queued state before a worker picks it up
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, newJob.traceId)
	if err := h.jobs.JobStore.SaveJob(ctxC, _job); err != nil {
		logJH.Error("Failed to save queued job", "err", err)
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.jobs.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//a new worker is added every N requests, and eagerly for heavy jobs
	//(indexing and ingestion both fan out to external services); idle
	//workers retire on their own
	accurateCount := atomic.AddInt64(&h.jobs.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || newJob.jobType == jobModel.JobTypeIngest || newJob.jobType == jobModel.JobTypeIndex {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.jobs.DispatcherChannel <- true
	}
}
