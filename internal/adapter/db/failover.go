package db

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
)

// failover sends calls to the primary store until it reports a connectivity
// error, then switches permanently to the fallback store. The call that hit
// the error is replayed on the fallback.
type failover[R any] struct {
	name     string
	primary  R
	fallback R
	switched atomic.Bool
	logger   *zap.Logger
}

func (f *failover[R]) run(call func(R) error) error {
	if !f.switched.Load() {
		err := call(f.primary)
		if !IsUnavailable(err) {
			return err
		}
		if f.switched.CompareAndSwap(false, true) {
			f.logger.Warn("persistence backend unavailable, switching to local store",
				zap.String("store", f.name),
				zap.Error(err),
				zap.NamedError("kind", domain.ErrBackendUnavailable),
			)
		}
	}
	return call(f.fallback)
}

func (f *failover[R]) UsingFallback() bool {
	return f.switched.Load()
}

type FailoverTaskRepository struct {
	failover[ports.TaskRepository]
}

var _ ports.TaskRepository = (*FailoverTaskRepository)(nil)

func NewFailoverTaskRepository(primary, fallback ports.TaskRepository, logger *zap.Logger) *FailoverTaskRepository {
	if logger == nil {
		logger = zap.L()
	}
	return &FailoverTaskRepository{failover[ports.TaskRepository]{
		name:     "tasks",
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}}
}

func (r *FailoverTaskRepository) ListTasks(ctx context.Context) (tasks []domain.Task, err error) {
	err = r.run(func(repo ports.TaskRepository) error {
		tasks, err = repo.ListTasks(ctx)
		return err
	})
	return tasks, err
}

func (r *FailoverTaskRepository) ListTasksCreatedBetween(ctx context.Context, start, end time.Time) (tasks []domain.Task, err error) {
	err = r.run(func(repo ports.TaskRepository) error {
		tasks, err = repo.ListTasksCreatedBetween(ctx, start, end)
		return err
	})
	return tasks, err
}

func (r *FailoverTaskRepository) GetTask(ctx context.Context, id string) (task domain.Task, err error) {
	err = r.run(func(repo ports.TaskRepository) error {
		task, err = repo.GetTask(ctx, id)
		return err
	})
	return task, err
}

func (r *FailoverTaskRepository) GetTaskByCommitSHA(ctx context.Context, sha string) (task domain.Task, err error) {
	err = r.run(func(repo ports.TaskRepository) error {
		task, err = repo.GetTaskByCommitSHA(ctx, sha)
		return err
	})
	return task, err
}

func (r *FailoverTaskRepository) InsertTask(ctx context.Context, task domain.Task) error {
	return r.run(func(repo ports.TaskRepository) error {
		return repo.InsertTask(ctx, task)
	})
}

func (r *FailoverTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	return r.run(func(repo ports.TaskRepository) error {
		return repo.UpdateTask(ctx, task)
	})
}

func (r *FailoverTaskRepository) DeleteTask(ctx context.Context, id string) error {
	return r.run(func(repo ports.TaskRepository) error {
		return repo.DeleteTask(ctx, id)
	})
}

type FailoverReviewRepository struct {
	failover[ports.ReviewRepository]
}

var _ ports.ReviewRepository = (*FailoverReviewRepository)(nil)

func NewFailoverReviewRepository(primary, fallback ports.ReviewRepository, logger *zap.Logger) *FailoverReviewRepository {
	if logger == nil {
		logger = zap.L()
	}
	return &FailoverReviewRepository{failover[ports.ReviewRepository]{
		name:     "reviews",
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}}
}

func (r *FailoverReviewRepository) UpsertDailyReview(ctx context.Context, review domain.DailyReview) error {
	return r.run(func(repo ports.ReviewRepository) error {
		return repo.UpsertDailyReview(ctx, review)
	})
}

func (r *FailoverReviewRepository) GetDailyReview(ctx context.Context, date string) (review domain.DailyReview, err error) {
	err = r.run(func(repo ports.ReviewRepository) error {
		review, err = repo.GetDailyReview(ctx, date)
		return err
	})
	return review, err
}

func (r *FailoverReviewRepository) ListDailyReviews(ctx context.Context, limit int) (reviews []domain.DailyReview, err error) {
	err = r.run(func(repo ports.ReviewRepository) error {
		reviews, err = repo.ListDailyReviews(ctx, limit)
		return err
	})
	return reviews, err
}

func (r *FailoverReviewRepository) UpsertWeeklyReview(ctx context.Context, review domain.WeeklyReview) error {
	return r.run(func(repo ports.ReviewRepository) error {
		return repo.UpsertWeeklyReview(ctx, review)
	})
}

func (r *FailoverReviewRepository) ListWeeklyReviews(ctx context.Context, limit int) (reviews []domain.WeeklyReview, err error) {
	err = r.run(func(repo ports.ReviewRepository) error {
		reviews, err = repo.ListWeeklyReviews(ctx, limit)
		return err
	})
	return reviews, err
}
