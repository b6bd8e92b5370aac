package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/services"
)

type KeywordsHandler struct {
	extractor services.KeywordExtractor
	validate  *validator.Validate
}

func NewKeywordsHandler(extractor services.KeywordExtractor) *KeywordsHandler {
	return &KeywordsHandler{
		extractor: extractor,
		validate:  newValidator(),
	}
}

// HandleKeywords handles POST /keywords
func (h *KeywordsHandler) HandleKeywords(c *fiber.Ctx) error {
	var req models.KeywordsRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	keywords := h.extractor.ExtractKeywords(req.Text).Sorted()
	return c.JSON(models.KeywordsResponse{
		Keywords: orEmpty(keywords),
		Count:    len(keywords),
		Fallback: h.extractor.UsesFallback(),
	})
}
