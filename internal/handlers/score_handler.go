package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/services"
)

type ScoreHandler struct {
	scorer       services.ATSScorer
	worker       services.Worker
	batchMaxJobs int
	validate     *validator.Validate
}

func NewScoreHandler(scorer services.ATSScorer, worker services.Worker, batchMaxJobs int) *ScoreHandler {
	return &ScoreHandler{
		scorer:       scorer,
		worker:       worker,
		batchMaxJobs: batchMaxJobs,
		validate:     newValidator(),
	}
}

// HandleScore handles POST /score
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	var req models.ScoreRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	analysis := h.scorer.Analyze(req.ResumeText, req.JobDescription)
	return c.JSON(toScoreResponse(analysis))
}

// HandleBatch handles POST /score/batch
func (h *ScoreHandler) HandleBatch(c *fiber.Ctx) error {
	var req models.BatchScoreRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	if h.batchMaxJobs > 0 && len(req.Jobs) > h.batchMaxJobs {
		return respondError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Too many jobs in batch. Max: %d", h.batchMaxJobs))
	}

	jobs := make([]services.ScoreJob, len(req.Jobs))
	for i, j := range req.Jobs {
		jobs[i] = services.ScoreJob{ID: j.ID, ResumeText: req.ResumeText, JobDescription: j.JobDescription}
	}

	results, err := h.worker.ScoreBatch(c.UserContext(), jobs)
	if err != nil {
		log.Printf("❌ Batch scoring failed: %v", err)
		if errors.Is(err, services.ErrWorkerStopped) {
			return respondError(c, fiber.StatusServiceUnavailable, "Scoring worker is shutting down")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to score batch")
	}

	resp := models.BatchScoreResponse{
		ID:      uuid.NewString(),
		Count:   len(results),
		Results: make([]models.BatchScoreResult, len(results)),
	}
	for i, r := range results {
		verdict, _ := services.ScoreVerdict(r.Analysis.Breakdown.Total)
		resp.Results[i] = models.BatchScoreResult{
			ID:                r.ID,
			Score:             r.Analysis.Breakdown.Total,
			Verdict:           verdict,
			MissingKeywords:   orEmpty(r.Analysis.MissingKeywords),
			InsufficientInput: r.Analysis.InsufficientInput,
		}
	}

	return c.JSON(resp)
}
