package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-unhired-backend/internal/domain"
	"go-unhired-backend/internal/scheduler"
	"go-unhired-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

// Mock Repositories

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID int64, userID string) (bool, error) {
	args := m.Called(ctx, jobID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) FindDue(ctx context.Context, now time.Time, limit int) ([]domain.Application, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Save(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) CountRejectedByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *MockApplicationRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// recordingEvaluator records evaluated IDs and can panic on selected ones.
type recordingEvaluator struct {
	evaluated []int64
	panicOn   map[int64]bool
}

func (e *recordingEvaluator) Evaluate(ctx context.Context, app *domain.Application) {
	if e.panicOn[app.ID] {
		panic("prompt building exploded")
	}
	e.evaluated = append(e.evaluated, app.ID)
}

func pendingDueApp(id int64) domain.Application {
	due := time.Now().Add(-time.Minute)
	return domain.Application{
		ID:              id,
		UserID:          "user1",
		Status:          domain.ApplicationStatusPending,
		EvaluationDueAt: &due,
		AppliedAt:       time.Now().Add(-time.Hour),
	}
}

func TestRunTick(t *testing.T) {
	t.Run("Evaluates the whole batch in order", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		eval := &recordingEvaluator{}
		batch := []domain.Application{pendingDueApp(1), pendingDueApp(2), pendingDueApp(3)}
		repo.On("FindDue", mock.Anything, mock.Anything, 10).Return(batch, nil)

		s := scheduler.New(repo, eval, time.Minute, 10, true)
		s.RunTick(context.Background())

		assert.Equal(t, []int64{1, 2, 3}, eval.evaluated)
	})

	t.Run("A panicking item does not stop the rest of the batch", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		eval := &recordingEvaluator{panicOn: map[int64]bool{2: true}}
		batch := []domain.Application{pendingDueApp(1), pendingDueApp(2), pendingDueApp(3)}
		repo.On("FindDue", mock.Anything, mock.Anything, 10).Return(batch, nil)

		s := scheduler.New(repo, eval, time.Minute, 10, true)
		s.RunTick(context.Background())

		assert.Equal(t, []int64{1, 3}, eval.evaluated)
	})

	t.Run("Skips applications resolved between fetch and processing", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		eval := &recordingEvaluator{}
		resolved := pendingDueApp(2)
		resolved.Status = domain.ApplicationStatusRejected
		batch := []domain.Application{pendingDueApp(1), resolved}
		repo.On("FindDue", mock.Anything, mock.Anything, 10).Return(batch, nil)

		s := scheduler.New(repo, eval, time.Minute, 10, true)
		s.RunTick(context.Background())

		assert.Equal(t, []int64{1}, eval.evaluated)
	})

	t.Run("Fetch failure aborts the tick without evaluating", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		eval := &recordingEvaluator{}
		repo.On("FindDue", mock.Anything, mock.Anything, 10).Return(nil, errors.New("connection refused"))

		s := scheduler.New(repo, eval, time.Minute, 10, true)
		s.RunTick(context.Background())

		assert.Empty(t, eval.evaluated)
	})

	t.Run("Disabled scheduler is a no-op and never queries the store", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		eval := &recordingEvaluator{}

		s := scheduler.New(repo, eval, time.Minute, 10, false)
		s.RunTick(context.Background())

		repo.AssertNotCalled(t, "FindDue", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, eval.evaluated)
	})
}

func TestStartStop(t *testing.T) {
	t.Run("Start performs an eager tick and Stop halts the loop", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		eval := &recordingEvaluator{}
		repo.On("FindDue", mock.Anything, mock.Anything, 10).Return([]domain.Application{pendingDueApp(1)}, nil)

		s := scheduler.New(repo, eval, time.Hour, 10, true)
		s.Start()

		// The eager tick runs synchronously inside Start.
		assert.Equal(t, []int64{1}, eval.evaluated)

		s.Stop()
		// With an hour-long interval the loop never fired again.
		assert.Equal(t, []int64{1}, eval.evaluated)
	})
}
