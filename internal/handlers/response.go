package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/services"
)

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names instead of struct field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrorHandler renders errors that escape a handler as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

func respondError(c *fiber.Ctx, code int, message string, details ...string) error {
	return c.Status(code).JSON(models.ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// parseAndValidate decodes the body into req and runs the validate tags.
// It writes the error response itself and reports false on failure.
func parseAndValidate(c *fiber.Ctx, v *validator.Validate, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, respondError(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if err := v.Struct(req); err != nil {
		return false, respondError(c, fiber.StatusBadRequest, "Validation failed", validationDetails(err)...)
	}
	return true, nil
}

func validationDetails(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"invalid request"}
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag()))
	}
	return details
}

func toScoreResponse(analysis *services.ATSAnalysis) models.ScoreResponse {
	verdict, message := services.ScoreVerdict(analysis.Breakdown.Total)
	b := analysis.Breakdown

	return models.ScoreResponse{
		ID:      uuid.NewString(),
		Score:   b.Total,
		Verdict: verdict,
		Message: message,
		Breakdown: models.ScoreBreakdown{
			KeywordMatch:        b.KeywordMatch,
			ExperienceRelevance: b.ExperienceRelevance,
			SkillDensity:        b.SkillDensity,
			ActionLanguage:      b.ActionLanguage,
			Formatting:          b.Formatting,
		},
		MatchedKeywords:   orEmpty(analysis.MatchedKeywords),
		MissingKeywords:   orEmpty(analysis.MissingKeywords),
		FormattingIssues:  orEmpty(analysis.FormattingIssues),
		ActionVerbCount:   analysis.ActionVerbCount,
		SkillMentionCount: analysis.SkillMentionCount,
		InsufficientInput: analysis.InsufficientInput,
	}
}

func toEntities(e services.ResumeEntities) models.Entities {
	return models.Entities{
		Name:          e.Name,
		Organizations: e.Organizations,
		Locations:     e.Locations,
	}
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
