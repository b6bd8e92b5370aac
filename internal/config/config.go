package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	Upload UploadConfig
	Worker WorkerConfig
	NLP    NLPConfig
}

type ServerConfig struct {
	Port string
	Env  string
	// AllowOrigins is the CORS origin list used outside development.
	AllowOrigins string
}

type GeminiConfig struct {
	APIKey            string
	Model             string
	Temperature       float32
	MaxRetries        int
	RequestsPerMinute int
	Timeout           time.Duration
}

type UploadConfig struct {
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency  int
	BatchMaxJobs int
}

type NLPConfig struct {
	// Providers lists lemmatizer providers in priority order.
	Providers []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Env:          getEnv("ENV", "development"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", ""),
		},
		Gemini: GeminiConfig{
			APIKey:            getEnv("GEMINI_API_KEY", ""),
			Model:             getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:       getEnvAsFloat32("GEMINI_TEMPERATURE", 0.4),
			MaxRetries:        getEnvAsInt("GEMINI_MAX_RETRIES", 3),
			RequestsPerMinute: getEnvAsInt("GEMINI_RPM", 15),
			Timeout:           getEnvAsDuration("GEMINI_TIMEOUT", "60s"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:  getEnvAsInt("WORKER_CONCURRENCY", 4),
			BatchMaxJobs: getEnvAsInt("BATCH_MAX_JOBS", 25),
		},
		NLP: NLPConfig{
			Providers: getEnvAsList("NLP_PROVIDERS", "golem,snowball"),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// CORSOrigins returns the allowed CORS origins. Development allows any origin;
// other environments allow only CORS_ALLOW_ORIGINS, and an empty result
// means cross-origin requests are not enabled.
func (c *Config) CORSOrigins() string {
	if c.IsDevelopment() {
		return "*"
	}
	return strings.TrimSpace(c.Server.AllowOrigins)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
