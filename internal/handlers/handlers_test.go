package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-scorer/internal/services"
)

const (
	testResume = "Senior software engineer with Python, Kubernetes and cloud experience.\n" +
		"Led the migration of billing services. Developed internal APIs."
	testJob = "We are hiring a software engineer with Python, Kubernetes, Terraform and cloud experience."
)

type stubGenerator struct {
	response string
	err      error
}

func (s stubGenerator) GenerateText(context.Context, string, float32) (string, error) {
	return s.response, s.err
}

func (s stubGenerator) GenerateTextWithRetry(context.Context, string, float32, int) (string, error) {
	return s.response, s.err
}

func newTestScorer() services.ATSScorer {
	return services.NewATSScorer(services.NewKeywordExtractor(nil))
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postMultipart(t *testing.T, app *fiber.App, path string, fields map[string]string, filename string, content []byte) *http.Response {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
