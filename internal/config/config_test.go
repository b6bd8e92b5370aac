package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "CORS_ALLOW_ORIGINS", "GEMINI_MODEL", "GEMINI_RPM", "WORKER_CONCURRENCY", "NLP_PROVIDERS", "GEMINI_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "*", cfg.CORSOrigins())
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 15, cfg.Gemini.RequestsPerMinute)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 4, cfg.Worker.Concurrency)
	assert.Equal(t, []string{"golem", "snowball"}, cfg.NLP.Providers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("GEMINI_TEMPERATURE", "0.9")
	t.Setenv("WORKER_CONCURRENCY", "not-a-number")
	t.Setenv("NLP_PROVIDERS", " Snowball , ,golem ")
	t.Setenv("GEMINI_TIMEOUT", "5s")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.CORSOrigins())
	assert.InDelta(t, 0.9, cfg.Gemini.Temperature, 1e-6)
	assert.Equal(t, 4, cfg.Worker.Concurrency)
	assert.Equal(t, []string{"snowball", "golem"}, cfg.NLP.Providers)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
}

func TestCORSOrigins(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		origins string
		want    string
	}{
		{"development allows any origin", "development", "https://ats.example.com", "*"},
		{"production uses configured origins", "production", " https://ats.example.com ", "https://ats.example.com"},
		{"production without origins", "production", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{Env: tt.env, AllowOrigins: tt.origins}}

			assert.Equal(t, tt.want, cfg.CORSOrigins())
		})
	}
}
