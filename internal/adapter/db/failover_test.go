package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"taskorganizer/internal/core/domain"
)

// brokenTaskRepository fails every call with err and counts calls.
type brokenTaskRepository struct {
	err   error
	calls int
}

func (r *brokenTaskRepository) fail() error {
	r.calls++
	return r.err
}

func (r *brokenTaskRepository) ListTasks(context.Context) ([]domain.Task, error) {
	return nil, r.fail()
}

func (r *brokenTaskRepository) ListTasksCreatedBetween(context.Context, time.Time, time.Time) ([]domain.Task, error) {
	return nil, r.fail()
}

func (r *brokenTaskRepository) GetTask(context.Context, string) (domain.Task, error) {
	return domain.Task{}, r.fail()
}

func (r *brokenTaskRepository) GetTaskByCommitSHA(context.Context, string) (domain.Task, error) {
	return domain.Task{}, r.fail()
}

func (r *brokenTaskRepository) InsertTask(context.Context, domain.Task) error {
	return r.fail()
}

func (r *brokenTaskRepository) UpdateTask(context.Context, domain.Task) error {
	return r.fail()
}

func (r *brokenTaskRepository) DeleteTask(context.Context, string) error {
	return r.fail()
}

func newLocalRepositories(t *testing.T) (*TaskRepository, *ReviewRepository) {
	t.Helper()
	local, err := ConnectLocal(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })
	require.NoError(t, Migrate(context.Background(), local))
	return NewTaskRepository(local), NewReviewRepository(local)
}

func TestFailoverTaskRepository_SwitchesOnConnectivityError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	primary := &brokenTaskRepository{err: fmt.Errorf("insert: %w", driver.ErrBadConn)}
	local, _ := newLocalRepositories(t)
	repo := NewFailoverTaskRepository(primary, local, zap.New(core))
	ctx := context.Background()

	assert.False(t, repo.UsingFallback())

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	task := domain.Task{
		ID: "t1", Title: "x", Tags: []string{}, Source: domain.TaskSourceManual,
		Status: domain.TaskStatusPending, Priority: domain.TaskPriorityMedium,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.InsertTask(ctx, task))
	assert.True(t, repo.UsingFallback())
	assert.Equal(t, 1, primary.calls)

	got, err := repo.GetTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Title)
	assert.Equal(t, 1, primary.calls, "primary is not retried after the switch")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "tasks", logs.All()[0].ContextMap()["store"])
}

func TestFailoverTaskRepository_QueryErrorsDoNotSwitch(t *testing.T) {
	primary := &brokenTaskRepository{err: errors.New("syntax error near FROM")}
	local, _ := newLocalRepositories(t)
	repo := NewFailoverTaskRepository(primary, local, zap.NewNop())

	_, err := repo.ListTasks(context.Background())

	assert.ErrorContains(t, err, "syntax error")
	assert.False(t, repo.UsingFallback())
}

func TestFailoverTaskRepository_NotFoundPassesThrough(t *testing.T) {
	primary := &brokenTaskRepository{err: domain.ErrTaskNotFound}
	local, _ := newLocalRepositories(t)
	repo := NewFailoverTaskRepository(primary, local, zap.NewNop())

	_, err := repo.GetTaskByCommitSHA(context.Background(), "abc")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.False(t, repo.UsingFallback())
}

func TestFailoverReviewRepository_UsesPrimaryWhileHealthy(t *testing.T) {
	_, primary := newLocalRepositories(t)
	_, fallback := newLocalRepositories(t)
	repo := NewFailoverReviewRepository(primary, fallback, zap.NewNop())
	ctx := context.Background()

	review := domain.DailyReview{Date: "2024-03-01", Summary: "ok", CreatedAt: time.Now()}
	require.NoError(t, repo.UpsertDailyReview(ctx, review))

	_, err := primary.GetDailyReview(ctx, "2024-03-01")
	require.NoError(t, err)
	_, err = fallback.GetDailyReview(ctx, "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
	assert.False(t, repo.UsingFallback())
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"bad conn", driver.ErrBadConn, true},
		{"mysql invalid conn", fmt.Errorf("query: %w", mysql.ErrInvalidConn), true},
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, true},
		{"reset", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"not found", domain.ErrTaskNotFound, false},
		{"plain", errors.New("duplicate key"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnavailable(tt.err))
		})
	}
}
