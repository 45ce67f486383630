package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/domain/jobModel"
	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
	"github.com/akolanti/GovStackAPI/internal/job"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

// MockIndexer tracks if jobs are executed
type MockIndexer struct {
	ProcessedCount int32
}

func (m *MockIndexer) IndexCollection(ctx context.Context, collectionID string) recordModel.IndexRun {
	atomic.AddInt32(&m.ProcessedCount, 1)
	return recordModel.IndexRun{CollectionID: collectionID, Status: recordModel.IndexRunCompleted}
}

type MockSink struct{}

func (m *MockSink) UpsertRecord(ctx context.Context, rec recordModel.SourceRecord) (string, error) {
	return rec.Id, nil
}

type MockJobStore struct {
	OnSaveJob func(ctx context.Context, job jobModel.Job) error
	saved     sync.Map
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	if v, ok := m.saved.Load(jobId); ok {
		return v.(jobModel.Job), true
	}
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {
	m.saved.Delete(jobID)
}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	m.saved.Store(j.Id, j)
	if m.OnSaveJob != nil {
		return m.OnSaveJob(ctx, j)
	}
	return nil
}

func TestWorkerPool_Flow(t *testing.T) {
	jobStore := &MockJobStore{}
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          jobStore,
	}
	mockIndexer := &MockIndexer{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockIndexer, &MockSink{})
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		jobSvc.DispatcherChannel <- true

		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes an indexing job", func(t *testing.T) {
		testJob := jobModel.Job{
			Id:         "test-1",
			JobType:    jobModel.JobTypeIndex,
			JobPayload: jobModel.JobPayload{CollectionID: "services"},
		}
		jobSvc.JobChannel <- testJob

		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockIndexer.ProcessedCount)
		if processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}

		final, found := jobStore.GetJob(context.Background(), "test-1")
		if !found {
			t.Fatal("final job state not saved")
		}
		if final.Status != jobModel.JobStatusComplete {
			t.Errorf("final status = %s, want complete", final.Status)
		}
		if final.JobPayload.Run == nil || final.JobPayload.Run.Status != recordModel.IndexRunCompleted {
			t.Errorf("run result missing from payload: %+v", final.JobPayload.Run)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		close(stopChan)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	// Temporarily override globals for test
	atomic.StoreInt64(&currentWorkerCount, 0)
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
		JobStore:   &MockJobStore{},
	}
	InitServices(jobSvc, &MockIndexer{}, &MockSink{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// two idle workers over a floor of one: the surplus worker retires,
	// the floor worker stays warm
	createWorker()
	createWorker()
	time.Sleep(config.IdleWorkerTimeout + 200*time.Millisecond)

	count := atomic.LoadInt64(&currentWorkerCount)
	if count != minWorkerCount {
		t.Errorf("worker count after idle timeout = %d, want the floor of %d", count, minWorkerCount)
	}

	close(stopChan)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("remaining worker did not stop")
	}
}
