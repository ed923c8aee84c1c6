package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskorganizer/internal/core/domain"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) tasks(args mock.Arguments) ([]domain.Task, error) {
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx))
}

func (m *taskRepositoryMock) ListTasksCreatedBetween(ctx context.Context, start, end time.Time) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, start, end))
}

func (m *taskRepositoryMock) GetTask(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) GetTaskByCommitSHA(ctx context.Context, sha string) (domain.Task, error) {
	args := m.Called(ctx, sha)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) InsertTask(ctx context.Context, task domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *taskRepositoryMock) UpdateTask(ctx context.Context, task domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *taskRepositoryMock) DeleteTask(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type reviewRepositoryMock struct {
	mock.Mock
}

func (m *reviewRepositoryMock) UpsertDailyReview(ctx context.Context, review domain.DailyReview) error {
	return m.Called(ctx, review).Error(0)
}

func (m *reviewRepositoryMock) GetDailyReview(ctx context.Context, date string) (domain.DailyReview, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(domain.DailyReview), args.Error(1)
}

func (m *reviewRepositoryMock) ListDailyReviews(ctx context.Context, limit int) ([]domain.DailyReview, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.DailyReview), args.Error(1)
}

func (m *reviewRepositoryMock) UpsertWeeklyReview(ctx context.Context, review domain.WeeklyReview) error {
	return m.Called(ctx, review).Error(0)
}

func (m *reviewRepositoryMock) ListWeeklyReviews(ctx context.Context, limit int) ([]domain.WeeklyReview, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.WeeklyReview), args.Error(1)
}

type analyzerMock struct {
	mock.Mock
}

func (m *analyzerMock) AnalyzeTask(ctx context.Context, input string) (domain.TaskAnalysis, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.TaskAnalysis), args.Error(1)
}

func (m *analyzerMock) AnalyzeCommit(ctx context.Context, commit domain.GitCommit) (domain.TaskAnalysis, error) {
	args := m.Called(ctx, commit)
	return args.Get(0).(domain.TaskAnalysis), args.Error(1)
}

func (m *analyzerMock) Review(ctx context.Context, tasks []domain.Task, period domain.ReviewPeriod, start, end time.Time) (domain.ReviewNarrative, error) {
	args := m.Called(ctx, tasks, period, start, end)
	return args.Get(0).(domain.ReviewNarrative), args.Error(1)
}

type commitSourceMock struct {
	mock.Mock
}

func (m *commitSourceMock) RecentCommits(ctx context.Context, limit int) ([]domain.GitCommit, error) {
	args := m.Called(ctx, limit)
	var commits []domain.GitCommit
	if value := args.Get(0); value != nil {
		commits = value.([]domain.GitCommit)
	}
	return commits, args.Error(1)
}
