package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/services"
)

type UploadHandler struct {
	extractor   services.TextExtractor
	maxFileSize int64
}

func NewUploadHandler(extractor services.TextExtractor, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		extractor:   extractor,
		maxFileSize: maxFileSize,
	}
}

// HandleExtract handles POST /extract
func (h *UploadHandler) HandleExtract(c *fiber.Ctx) error {
	doc, err := h.extractUpload(c, "file")
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// extractUpload reads the named multipart file and returns its text. Errors
// are *fiber.Error values carrying the HTTP status.
func (h *UploadHandler) extractUpload(c *fiber.Ctx, field string) (*models.ExtractResponse, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("No file uploaded. Please upload a PDF, DOCX, TXT or image file as '%s'.", field))
	}

	if fileHeader.Size > h.maxFileSize {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize))
	}

	data, err := readFormFile(fileHeader)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("failed to read uploaded file: %v", err))
	}

	contentType := services.NormalizeContentType(fileHeader.Header.Get("Content-Type"))
	if contentType == "" || contentType == services.ContentTypeOctet {
		contentType = services.ContentTypeFromFilename(fileHeader.Filename)
	}

	extracted, err := h.extractor.Extract(c.UserContext(), data, contentType)
	if err != nil {
		log.Printf("❌ Failed to extract %s (%s): %v", fileHeader.Filename, contentType, err)
		return nil, fiber.NewError(extractStatus(err), err.Error())
	}

	log.Printf("📄 Extracted %d characters from %s", utf8.RuneCountInString(extracted.Text), fileHeader.Filename)
	return &models.ExtractResponse{
		Filename:    fileHeader.Filename,
		ContentType: extracted.ContentType,
		Pages:       extracted.PageCount,
		Characters:  utf8.RuneCountInString(extracted.Text),
		Text:        extracted.Text,
	}, nil
}

func readFormFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func extractStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrUnsupportedContentType):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrOCRUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusUnprocessableEntity
	}
}
