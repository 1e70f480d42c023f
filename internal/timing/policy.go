// Package timing computes when pending applications become eligible for
// evaluation. Randomness is confined here so tests can substitute a fully
// deterministic policy.
package timing

import (
	"math/rand"
	"time"

	"go-unhired-backend/config"
)

// Policy decides the initial evaluation delay and the retry backoff.
type Policy interface {
	// InitialDelay returns how long after submission an application first
	// becomes eligible for evaluation.
	InitialDelay() time.Duration
	// RetryDelay returns the instant at which a failed evaluation becomes
	// eligible again.
	RetryDelay(now time.Time) time.Time
}

// Fast-mode constants. Short and fixed so local runs resolve quickly.
const (
	fastInitialDelay = 10 * time.Second
	fastRetryDelay   = 15 * time.Second
)

// NewPolicy returns the policy for the configured evaluation mode.
func NewPolicy(cfg *config.Config) Policy {
	if cfg.EvalMode == config.EvalModeFast {
		return fastPolicy{}
	}
	return &productionPolicy{
		initialMax: cfg.EvalInitialDelayMax,
		retryMax:   cfg.EvalRetryDelayMax,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type fastPolicy struct{}

func (fastPolicy) InitialDelay() time.Duration {
	return fastInitialDelay
}

func (fastPolicy) RetryDelay(now time.Time) time.Time {
	return now.Add(fastRetryDelay)
}

// productionPolicy draws uniformly random delays in [0, bound] so rejections
// land at believable, staggered times instead of all at once.
type productionPolicy struct {
	initialMax time.Duration
	retryMax   time.Duration
	rng        *rand.Rand
}

func (p *productionPolicy) InitialDelay() time.Duration {
	return p.uniform(p.initialMax)
}

func (p *productionPolicy) RetryDelay(now time.Time) time.Time {
	return now.Add(p.uniform(p.retryMax))
}

func (p *productionPolicy) uniform(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(p.rng.Int63n(int64(max) + 1))
}
