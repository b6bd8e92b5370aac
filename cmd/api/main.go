package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/ats-scorer/internal/config"
	"alfredoptarigan/ats-scorer/internal/handlers"
	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize NLP pipeline
	lemmatizer, provider, err := services.SharedLemmatizer(cfg.NLP.Providers)
	if err != nil {
		log.Printf("⚠️  No lemmatizer available, using regex keyword fallback: %v", err)
	}

	keywordExtractor := services.NewKeywordExtractor(lemmatizer)
	scorer := services.NewATSScorer(keywordExtractor)
	entityExtractor := services.NewEntityExtractor(0)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI, optional: scoring works without it
	geminiService, err := services.NewGeminiService(services.GeminiOptions{
		APIKey:            cfg.Gemini.APIKey,
		Model:             cfg.Gemini.Model,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
		Timeout:           cfg.Gemini.Timeout,
	})
	if err != nil {
		log.Printf("⚠️  Gemini AI disabled, suggestions and image OCR unavailable: %v", err)
	} else {
		log.Println("✅ Gemini AI initialized successfully")
	}

	var (
		generator services.TextGenerator
		ocr       services.ImageTranscriber
	)
	if err == nil {
		generator = geminiService
		ocr = geminiService
	}

	textExtractor := services.NewTextExtractor(ocr)
	suggestionService := services.NewSuggestionService(
		scorer,
		entityExtractor,
		generator,
		cfg.Gemini.Temperature,
		cfg.Gemini.MaxRetries,
	)

	// Initialize worker
	worker := services.NewWorker(scorer, cfg.Worker.Concurrency)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(textExtractor, cfg.Upload.MaxFileSize)
	scoreHandler := handlers.NewScoreHandler(scorer, worker, cfg.Worker.BatchMaxJobs)
	keywordsHandler := handlers.NewKeywordsHandler(keywordExtractor)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService, scorer, uploadHandler)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume ATS Scorer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * cfg.Gemini.Timeout,
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	if origins := cfg.CORSOrigins(); origins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	} else {
		log.Printf("⚠️  CORS disabled in %s, set CORS_ALLOW_ORIGINS to enable it", cfg.Server.Env)
	}

	// Generative calls are billed per request
	generativeLimit := limiter.New(limiter.Config{
		Max:        generativeRequestBudget(cfg.Gemini.RequestsPerMinute),
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many suggestion requests, please retry in a minute",
				Code:  fiber.StatusTooManyRequests,
			})
		},
	})

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "healthy",
			"time":        time.Now(),
			"lemmatizer":  provider,
			"fallback":    keywordExtractor.UsesFallback(),
			"suggestions": generator != nil,
		})
	})

	// API endpoints
	api.Post("/keywords", keywordsHandler.HandleKeywords)
	api.Post("/extract", uploadHandler.HandleExtract)
	api.Post("/score", scoreHandler.HandleScore)
	api.Post("/score/batch", scoreHandler.HandleBatch)
	api.Post("/suggestions", generativeLimit, suggestionHandler.HandleSuggestions)
	api.Post("/analyze", generativeLimit, suggestionHandler.HandleAnalyze)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume ATS Scorer API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/health",
				"POST /api/v1/keywords",
				"POST /api/v1/extract",
				"POST /api/v1/score",
				"POST /api/v1/score/batch",
				"POST /api/v1/suggestions",
				"POST /api/v1/analyze",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		worker.Stop()
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// generativeRequestBudget is the per-client limit on generative routes per minute.
func generativeRequestBudget(rpm int) int {
	if rpm <= 0 {
		return 60
	}
	return rpm
}
