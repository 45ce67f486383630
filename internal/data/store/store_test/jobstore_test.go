package store_test

import (
	"context"
	"testing"

	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/data/redisStore"
	"github.com/akolanti/GovStackAPI/internal/data/store"
	"github.com/akolanti/GovStackAPI/internal/domain/jobModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisJobStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	internalStore := redisStore.NewTestStore(client)
	jobStore := store.TestJobStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:      jobID,
		JobType: jobModel.JobTypeIndex,
		Status:  jobModel.JobStatusRunning,
		JobPayload: jobModel.JobPayload{
			CollectionID: "gov-services",
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		err := jobStore.SaveJob(ctx, testJob)
		if err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}

		if retrievedJob.JobPayload.CollectionID != testJob.JobPayload.CollectionID {
			t.Errorf("Data mismatch! Got %s, want %s",
				retrievedJob.JobPayload.CollectionID, testJob.JobPayload.CollectionID)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		_, found := jobStore.GetJob(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)

		if mr.Exists(jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_Race(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.TestJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := jobModel.Job{Id: "race-job"}

	const workers = 50
	for i := 0; i < workers; i++ {
		go func() {
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
}

func TestInMemoryJobStore_Lifecycle(t *testing.T) {
	jobStore := store.InitInMemoryJobStore()
	ctx := context.Background()

	job := jobModel.Job{
		Id:     "mem-job",
		Status: jobModel.JobStatusQueued,
		JobPayload: jobModel.JobPayload{
			CollectionID: "health",
		},
	}

	if err := jobStore.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	got, found := jobStore.GetJob(ctx, "mem-job")
	if !found || got.JobPayload.CollectionID != "health" {
		t.Fatalf("GetJob = %+v, found=%v", got, found)
	}

	jobStore.DeleteJob(ctx, "mem-job")
	if _, found := jobStore.GetJob(ctx, "mem-job"); found {
		t.Error("job survived delete")
	}
}
