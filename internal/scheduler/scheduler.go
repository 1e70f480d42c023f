// Package scheduler drives the asynchronous evaluation pipeline: a single
// recurring tick that drains due applications through the evaluator.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go-unhired-backend/internal/domain"
	"go-unhired-backend/pkg/logger"
)

// Scheduler owns the tick state. One instance per process; the due-query has
// no row-level lease, so running several instances against one store would
// double-process applications.
type Scheduler struct {
	applicationRepo domain.ApplicationRepository
	evaluator       domain.EvaluationUsecase
	interval        time.Duration
	batchSize       int
	enabled         bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates a scheduler. When enabled is false (no generation credentials
// configured) every tick is a logged no-op.
func New(
	applicationRepo domain.ApplicationRepository,
	evaluator domain.EvaluationUsecase,
	interval time.Duration,
	batchSize int,
	enabled bool,
) *Scheduler {
	return &Scheduler{
		applicationRepo: applicationRepo,
		evaluator:       evaluator,
		interval:        interval,
		batchSize:       batchSize,
		enabled:         enabled,
		stop:            make(chan struct{}),
	}
}

// Start runs one eager tick synchronously to catch up on backlog accumulated
// while the process was down, then ticks on the configured interval until
// Stop is called.
func (s *Scheduler) Start() {
	s.RunTick(context.Background())

	s.wg.Add(1)
	go s.loop()
}

// Stop ends the tick loop and waits for an in-flight batch to finish its
// current item. There is no hard cancel.
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			// Single goroutine: a slow batch delays the next tick instead
			// of overlapping it; elapsed fires are dropped by the ticker.
			s.RunTick(context.Background())
		}
	}
}

// RunTick fetches one batch of due applications and evaluates them
// sequentially in applied_at order. Exported so tests can drive ticks
// manually.
func (s *Scheduler) RunTick(ctx context.Context) {
	if !s.enabled {
		logger.Log.Debug("evaluation disabled, skipping tick")
		return
	}

	now := time.Now()
	due, err := s.applicationRepo.FindDue(ctx, now, s.batchSize)
	if err != nil {
		// Tick-level failure; the next scheduled tick retries the fetch.
		logger.Log.Error("failed to fetch due applications", "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	logger.Log.Info("evaluation tick", "due", len(due), "batch_size", s.batchSize)

	for i := range due {
		s.evaluateOne(ctx, &due[i], now)
	}
}

// evaluateOne isolates a single item: a panic in one evaluation must not
// stop the rest of the batch.
func (s *Scheduler) evaluateOne(ctx context.Context, app *domain.Application, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("evaluation panicked", "application_id", app.ID, "panic", r)
		}
	}()

	// Skip records resolved between fetch and processing.
	if !app.IsDue(now) {
		return
	}

	s.evaluator.Evaluate(ctx, app)
}
