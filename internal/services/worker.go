package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

var ErrWorkerStopped = errors.New("worker stopped")

type ScoreJob struct {
	ID             string
	ResumeText     string
	JobDescription string
}

type ScoreJobResult struct {
	ID       string
	Analysis *ATSAnalysis
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(ctx context.Context, job ScoreJob) (<-chan ScoreJobResult, error)
	ScoreBatch(ctx context.Context, jobs []ScoreJob) ([]ScoreJobResult, error)
}

type scoreTask struct {
	job   ScoreJob
	reply chan<- ScoreJobResult
}

type worker struct {
	scorer      ATSScorer
	jobQueue    chan scoreTask
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewWorker(scorer ATSScorer, concurrency int) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		scorer:      scorer,
		jobQueue:    make(chan scoreTask, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker. It is safe to call more than once.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker. The returned channel receives exactly one
// result once a worker has scored the job.
func (w *worker) EnqueueJob(ctx context.Context, job ScoreJob) (<-chan ScoreJobResult, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	reply := make(chan ScoreJobResult, 1)
	if err := w.enqueue(ctx, scoreTask{job: job, reply: reply}); err != nil {
		return nil, err
	}
	return reply, nil
}

// ScoreBatch implements Worker. Results keep the order of jobs.
func (w *worker) ScoreBatch(ctx context.Context, jobs []ScoreJob) ([]ScoreJobResult, error) {
	batchID := uuid.NewString()
	log.Printf("📋 Batch %s: scoring %d jobs\n", batchID, len(jobs))

	replies := make([]chan ScoreJobResult, len(jobs))
	for i, job := range jobs {
		if job.ID == "" {
			job.ID = uuid.NewString()
		}
		replies[i] = make(chan ScoreJobResult, 1)
		if err := w.enqueue(ctx, scoreTask{job: job, reply: replies[i]}); err != nil {
			return nil, err
		}
	}

	results := make([]ScoreJobResult, len(jobs))
	for i, reply := range replies {
		select {
		case res := <-reply:
			results[i] = res
		case <-w.stopChan:
			return nil, ErrWorkerStopped
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	log.Printf("✅ Batch %s completed\n", batchID)
	return results, nil
}

func (w *worker) enqueue(ctx context.Context, task scoreTask) error {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", task.job.ID)
		return ErrWorkerStopped
	default:
	}

	select {
	case w.jobQueue <- task:
		return nil
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", task.job.ID)
		return ErrWorkerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			log.Printf("👷 Worker #%d context done\n", workerID)
			return
		case task := <-w.jobQueue:
			analysis := w.scorer.Analyze(task.job.ResumeText, task.job.JobDescription)
			task.reply <- ScoreJobResult{ID: task.job.ID, Analysis: analysis}
		}
	}
}
