package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/services"
)

type SuggestionHandler struct {
	suggestions services.SuggestionService
	scorer      services.ATSScorer
	uploads     *UploadHandler
	validate    *validator.Validate
}

func NewSuggestionHandler(
	suggestions services.SuggestionService,
	scorer services.ATSScorer,
	uploads *UploadHandler,
) *SuggestionHandler {
	return &SuggestionHandler{
		suggestions: suggestions,
		scorer:      scorer,
		uploads:     uploads,
		validate:    newValidator(),
	}
}

// HandleSuggestions handles POST /suggestions
func (h *SuggestionHandler) HandleSuggestions(c *fiber.Ctx) error {
	var req models.ScoreRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	result := h.suggestions.Suggest(c.UserContext(), req.ResumeText, req.JobDescription)
	return c.JSON(models.SuggestionResponse{
		ScoreResponse: toScoreResponse(result.Analysis),
		Entities:      toEntities(result.Entities),
		Suggestions:   result.Suggestions,
		Warning:       result.Warning,
	})
}

// HandleAnalyze handles POST /analyze: upload, score and optionally suggest in one call.
func (h *SuggestionHandler) HandleAnalyze(c *fiber.Ctx) error {
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))

	doc, err := h.uploads.extractUpload(c, "file")
	if err != nil {
		return err
	}

	resp := models.AnalyzeResponse{Document: *doc}
	if c.FormValue("suggest") == "true" {
		result := h.suggestions.Suggest(c.UserContext(), doc.Text, jobDescription)
		resp.Result = toScoreResponse(result.Analysis)
		resp.Suggestions = result.Suggestions
		resp.Warning = result.Warning
	} else {
		resp.Result = toScoreResponse(h.scorer.Analyze(doc.Text, jobDescription))
	}

	return c.JSON(resp)
}
