package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiService_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiService(GeminiOptions{APIKey: "  "})

	assert.ErrorIs(t, err, ErrGeneratorUnavailable)
}

func TestGenerateWithRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		got, err := generateWithRetry(context.Background(), 3, time.Millisecond, func(context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("503 unavailable")
			}
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		quota := errors.New("429 quota exceeded")
		calls := 0
		_, err := generateWithRetry(context.Background(), 2, time.Millisecond, func(context.Context) (string, error) {
			calls++
			return "", quota
		})

		assert.ErrorIs(t, err, quota)
		assert.Contains(t, err.Error(), "failed after 2 attempts")
		assert.Equal(t, 2, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := generateWithRetry(ctx, 5, time.Hour, func(context.Context) (string, error) {
			calls++
			cancel()
			return "", errors.New("boom")
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero retries still tries once", func(t *testing.T) {
		got, err := generateWithRetry(context.Background(), 0, time.Millisecond, func(context.Context) (string, error) {
			return "once", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "once", got)
	})
}

func TestNewRequestLimiter(t *testing.T) {
	unlimited := newRequestLimiter(0)
	for i := 0; i < 100; i++ {
		assert.True(t, unlimited.Allow())
	}

	limited := newRequestLimiter(60)
	assert.True(t, limited.Allow())
	assert.False(t, limited.Allow())
}
