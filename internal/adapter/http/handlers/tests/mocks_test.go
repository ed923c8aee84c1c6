package tests

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskorganizer/internal/core/domain"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) task(args mock.Arguments) (domain.Task, error) {
	var task domain.Task
	if value := args.Get(0); value != nil {
		task = value.(domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) tasks(args mock.Arguments) ([]domain.Task, error) {
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx))
}

func (m *taskServiceMock) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	return m.task(m.Called(ctx, input))
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	return m.task(m.Called(ctx, id, input))
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskServiceMock) StartTimer(ctx context.Context, id string) (domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *taskServiceMock) PauseTimer(ctx context.Context, id string) (domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *taskServiceMock) CompleteTask(ctx context.Context, id string) (domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *taskServiceMock) QuickAdd(ctx context.Context, input string) (domain.Task, error) {
	return m.task(m.Called(ctx, input))
}

func (m *taskServiceMock) ImportCommits(ctx context.Context, limit int) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, limit))
}

func (m *taskServiceMock) Briefing(ctx context.Context) (domain.Briefing, error) {
	args := m.Called(ctx)
	var briefing domain.Briefing
	if value := args.Get(0); value != nil {
		briefing = value.(domain.Briefing)
	}
	return briefing, args.Error(1)
}

type reviewServiceMock struct {
	mock.Mock
}

func (m *reviewServiceMock) GenerateDailyReview(ctx context.Context, day time.Time) (domain.DailyReview, error) {
	args := m.Called(ctx, day)
	var review domain.DailyReview
	if value := args.Get(0); value != nil {
		review = value.(domain.DailyReview)
	}
	return review, args.Error(1)
}

func (m *reviewServiceMock) GenerateWeeklyReview(ctx context.Context, start, end time.Time) (domain.WeeklyReview, error) {
	args := m.Called(ctx, start, end)
	var review domain.WeeklyReview
	if value := args.Get(0); value != nil {
		review = value.(domain.WeeklyReview)
	}
	return review, args.Error(1)
}

func (m *reviewServiceMock) GetDailyReview(ctx context.Context, date string) (domain.DailyReview, error) {
	args := m.Called(ctx, date)
	var review domain.DailyReview
	if value := args.Get(0); value != nil {
		review = value.(domain.DailyReview)
	}
	return review, args.Error(1)
}

func (m *reviewServiceMock) ListDailyReviews(ctx context.Context, limit int) ([]domain.DailyReview, error) {
	args := m.Called(ctx, limit)
	var reviews []domain.DailyReview
	if value := args.Get(0); value != nil {
		reviews = value.([]domain.DailyReview)
	}
	return reviews, args.Error(1)
}

func (m *reviewServiceMock) ListWeeklyReviews(ctx context.Context, limit int) ([]domain.WeeklyReview, error) {
	args := m.Called(ctx, limit)
	var reviews []domain.WeeklyReview
	if value := args.Get(0); value != nil {
		reviews = value.([]domain.WeeklyReview)
	}
	return reviews, args.Error(1)
}
