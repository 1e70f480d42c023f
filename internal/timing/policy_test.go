package timing_test

import (
	"testing"
	"time"

	"go-unhired-backend/config"
	"go-unhired-backend/internal/timing"

	"github.com/stretchr/testify/assert"
)

func TestFastPolicy(t *testing.T) {
	policy := timing.NewPolicy(&config.Config{EvalMode: config.EvalModeFast})

	t.Run("Initial delay is a fixed short constant", func(t *testing.T) {
		assert.Equal(t, 10*time.Second, policy.InitialDelay())
		assert.Equal(t, policy.InitialDelay(), policy.InitialDelay())
	})

	t.Run("Retry delay is a fixed offset from now", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, now.Add(15*time.Second), policy.RetryDelay(now))
	})
}

func TestProductionPolicy(t *testing.T) {
	cfg := &config.Config{
		EvalMode:            config.EvalModeProduction,
		EvalInitialDelayMax: 6 * time.Hour,
		EvalRetryDelayMax:   45 * time.Minute,
	}
	policy := timing.NewPolicy(cfg)

	t.Run("Initial delay stays within the configured bound", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			d := policy.InitialDelay()
			assert.GreaterOrEqual(t, d, time.Duration(0))
			assert.LessOrEqual(t, d, cfg.EvalInitialDelayMax)
		}
	})

	t.Run("Retry delay is never before now and bounded", func(t *testing.T) {
		now := time.Now()
		for i := 0; i < 100; i++ {
			at := policy.RetryDelay(now)
			assert.False(t, at.Before(now))
			assert.LessOrEqual(t, at.Sub(now), cfg.EvalRetryDelayMax)
		}
	})

	t.Run("Zero bound degrades to immediate eligibility", func(t *testing.T) {
		zero := timing.NewPolicy(&config.Config{EvalMode: config.EvalModeProduction})
		now := time.Now()
		assert.Equal(t, time.Duration(0), zero.InitialDelay())
		assert.Equal(t, now, zero.RetryDelay(now))
	})
}
