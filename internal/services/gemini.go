package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

var ErrGeneratorUnavailable = errors.New("generative service is not configured")

// TextGenerator is the generative-text collaborator used for suggestions.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

type GeminiService interface {
	TextGenerator
	ExtractTextFromImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

type GeminiOptions struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	limiter    *rate.Limiter
	timeout    time.Duration
	retryDelay time.Duration
	prompts    *PromptBuilder
}

func NewGeminiService(opts GeminiOptions) (GeminiService, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrGeneratorUnavailable
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &geminiService{
		client:     client,
		modelName:  model,
		limiter:    newRequestLimiter(opts.RequestsPerMinute),
		timeout:    opts.Timeout,
		retryDelay: 2 * time.Second,
		prompts:    NewPromptBuilder(),
	}, nil
}

// newRequestLimiter allows rpm requests per minute; rpm <= 0 disables throttling.
func newRequestLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}

// GenerateText implements TextGenerator.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	}
	return g.generate(ctx, genai.Text(prompt), config)
}

// GenerateTextWithRetry implements TextGenerator.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return generateWithRetry(ctx, maxRetries, g.retryDelay, func(ctx context.Context) (string, error) {
		return g.GenerateText(ctx, prompt, temperature)
	})
}

// ExtractTextFromImage implements GeminiService by using the model as an OCR engine.
func (g *geminiService) ExtractTextFromImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(g.prompts.BuildOCRPrompt()),
		genai.NewPartFromBytes(data, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var temperature float32
	text, err := g.generate(ctx, contents, &genai.GenerateContentConfig{Temperature: &temperature})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe image: %w", err)
	}
	return text, nil
}

func (g *geminiService) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
			return "", fmt.Errorf("no text content in response (finish reason: %s)", resp.Candidates[0].FinishReason)
		}
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// generateWithRetry calls fn up to maxRetries times, waiting attempt*delay
// between attempts. Context cancellation stops retrying immediately.
func generateWithRetry(ctx context.Context, maxRetries int, delay time.Duration, fn func(context.Context) (string, error)) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		if attempt < maxRetries {
			log.Printf("⚠️  Attempt %d failed: %v. Retrying...", attempt, err)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-time.After(time.Duration(attempt) * delay):
			}
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
