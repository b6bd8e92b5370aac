package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedWorker(t *testing.T, concurrency int) Worker {
	t.Helper()
	w := NewWorker(fallbackScorer(), concurrency)
	w.Start(context.Background())
	t.Cleanup(w.Stop)
	return w
}

func TestWorker_ScoreBatchKeepsOrder(t *testing.T) {
	w := startedWorker(t, 4)
	scorer := fallbackScorer()

	resume := "Senior software engineer with Python, Kubernetes and cloud experience. Led migrations."
	var jobs []ScoreJob
	for i := 0; i < 25; i++ {
		jd := "python engineer"
		if i%2 == 1 {
			jd = "accountant with payroll and bookkeeping"
		}
		jobs = append(jobs, ScoreJob{ID: fmt.Sprintf("job-%02d", i), ResumeText: resume, JobDescription: jd})
	}

	results, err := w.ScoreBatch(context.Background(), jobs)

	require.NoError(t, err)
	require.Len(t, results, len(jobs))
	for i, res := range results {
		assert.Equal(t, jobs[i].ID, res.ID)
		assert.Equal(t, scorer.CalculateATSScore(resume, jobs[i].JobDescription), res.Analysis.Breakdown.Total)
	}
}

func TestWorker_EnqueueJobAssignsID(t *testing.T) {
	w := startedWorker(t, 1)

	reply, err := w.EnqueueJob(context.Background(), ScoreJob{ResumeText: "python developer", JobDescription: "python"})
	require.NoError(t, err)

	select {
	case res := <-reply:
		assert.NotEmpty(t, res.ID)
		assert.Positive(t, res.Analysis.Breakdown.Total)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}
}

func TestWorker_StoppedRejectsJobs(t *testing.T) {
	w := NewWorker(fallbackScorer(), 2)
	w.Start(context.Background())
	w.Stop()
	w.Stop()

	_, err := w.EnqueueJob(context.Background(), ScoreJob{ResumeText: "a", JobDescription: "b"})
	assert.ErrorIs(t, err, ErrWorkerStopped)

	_, err = w.ScoreBatch(context.Background(), []ScoreJob{{ID: "x"}})
	assert.ErrorIs(t, err, ErrWorkerStopped)
}

func TestWorker_EmptyBatch(t *testing.T) {
	w := startedWorker(t, 1)

	results, err := w.ScoreBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, results)
}
