package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskorganizer/internal/core/domain"
)

func newReviewService(tasks *taskRepositoryMock, reviews *reviewRepositoryMock, analyzer *analyzerMock, loc *time.Location) *ReviewService {
	return NewReviewService(tasks, reviews, analyzer, loc, time.Second,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "weekly-id" }),
	)
}

func TestGenerateDailyReview_UsesLocalDayBounds(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	tasks := new(taskRepositoryMock)
	reviews := new(reviewRepositoryMock)
	svc := newReviewService(tasks, reviews, new(analyzerMock), seoul)

	start := time.Date(2024, 2, 29, 15, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	tasks.On("ListTasksCreatedBetween", mock.Anything, start, end).Return([]domain.Task{}, nil).Once()
	reviews.On("UpsertDailyReview", mock.Anything, mock.Anything).Return(nil).Once()

	review, err := svc.GenerateDailyReview(context.Background(), time.Date(2024, 3, 1, 12, 0, 0, 0, seoul))

	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", review.Date)
	assert.Equal(t, []string{domain.SuggestionPlanAhead}, review.Suggestions)
	tasks.AssertExpectations(t)
}

func TestGenerateDailyReview_WithNarrative(t *testing.T) {
	tasks := new(taskRepositoryMock)
	reviews := new(reviewRepositoryMock)
	analyzer := new(analyzerMock)
	svc := newReviewService(tasks, reviews, analyzer, time.UTC)

	thirty := 30
	snapshot := []domain.Task{
		{Title: "a", Status: domain.TaskStatusCompleted, ActualDuration: &thirty, Tags: []string{"go"}},
		{Title: "b", Status: domain.TaskStatusPending},
	}
	tasks.On("ListTasksCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return(snapshot, nil).Once()
	analyzer.On("Review", mock.Anything, snapshot, domain.ReviewPeriodDaily, mock.Anything, mock.Anything).
		Return(domain.ReviewNarrative{Summary: "Solid day"}, nil).Once()
	reviews.On("UpsertDailyReview", mock.Anything, mock.MatchedBy(func(r domain.DailyReview) bool {
		return r.Summary == "Solid day" && r.TotalTasks == 2
	})).Return(nil).Once()

	review, err := svc.GenerateDailyReview(context.Background(), fixedNow)

	require.NoError(t, err)
	assert.False(t, review.AnalysisFailed)
	assert.Equal(t, []string{}, review.Insights)
	assert.Equal(t, 1, review.CompletedTasks)
	assert.Equal(t, 30, review.TotalTimeSpent)
	assert.Equal(t, map[string]int{"go": 30}, review.TimeByTag)
	assert.Equal(t, fixedNow, review.CreatedAt)
	reviews.AssertExpectations(t)
}

func TestGenerateDailyReview_AnalyzerFailureFallsBack(t *testing.T) {
	tasks := new(taskRepositoryMock)
	reviews := new(reviewRepositoryMock)
	analyzer := new(analyzerMock)
	svc := newReviewService(tasks, reviews, analyzer, time.UTC)

	snapshot := []domain.Task{{Title: "a", Status: domain.TaskStatusCompleted}}
	tasks.On("ListTasksCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return(snapshot, nil).Once()
	analyzer.On("Review", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ReviewNarrative{}, errors.New("rate limited")).Once()
	reviews.On("UpsertDailyReview", mock.Anything, mock.Anything).Return(nil).Once()

	review, err := svc.GenerateDailyReview(context.Background(), fixedNow)

	require.NoError(t, err)
	assert.True(t, review.AnalysisFailed)
	assert.Equal(t, "1 tasks completed", review.Summary)
	assert.Equal(t, []string{domain.InsightAIDisabled}, review.Insights)
}

func TestGenerateDailyReview_StoreErrors(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		tasks := new(taskRepositoryMock)
		svc := newReviewService(tasks, new(reviewRepositoryMock), new(analyzerMock), time.UTC)
		tasks.On("ListTasksCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

		_, err := svc.GenerateDailyReview(context.Background(), fixedNow)
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("upsert", func(t *testing.T) {
		tasks := new(taskRepositoryMock)
		reviews := new(reviewRepositoryMock)
		svc := newReviewService(tasks, reviews, new(analyzerMock), time.UTC)
		tasks.On("ListTasksCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Task{}, nil).Once()
		reviews.On("UpsertDailyReview", mock.Anything, mock.Anything).Return(errors.New("read only")).Once()

		_, err := svc.GenerateDailyReview(context.Background(), fixedNow)
		assert.ErrorContains(t, err, "read only")
	})
}

func TestGenerateWeeklyReview(t *testing.T) {
	tasks := new(taskRepositoryMock)
	reviews := new(reviewRepositoryMock)
	svc := newReviewService(tasks, reviews, new(analyzerMock), time.UTC)

	from := time.Date(2024, 2, 24, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tasks.On("ListTasksCreatedBetween", mock.Anything, from, to.AddDate(0, 0, 1)).Return([]domain.Task{}, nil).Once()
	reviews.On("UpsertWeeklyReview", mock.Anything, mock.Anything).Return(nil).Once()

	review, err := svc.GenerateWeeklyReview(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, "weekly-id", review.ID)
	assert.Equal(t, "2024-02-24", review.StartDate)
	assert.Equal(t, "2024-03-01", review.EndDate)
	assert.Equal(t, domain.SummaryNoTasks, review.Summary)
}

func TestGenerateWeeklyReview_EndBeforeStart(t *testing.T) {
	svc := newReviewService(new(taskRepositoryMock), new(reviewRepositoryMock), new(analyzerMock), time.UTC)

	_, err := svc.GenerateWeeklyReview(context.Background(), fixedNow, fixedNow.AddDate(0, 0, -2))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetDailyReview(t *testing.T) {
	reviews := new(reviewRepositoryMock)
	svc := newReviewService(new(taskRepositoryMock), reviews, new(analyzerMock), time.UTC)

	_, err := svc.GetDailyReview(context.Background(), "01-03-2024")
	assert.ErrorIs(t, err, domain.ErrValidation)

	reviews.On("GetDailyReview", mock.Anything, "2024-03-01").Return(domain.DailyReview{}, domain.ErrReviewNotFound).Once()
	_, err = svc.GetDailyReview(context.Background(), "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func TestListReviews_DefaultLimit(t *testing.T) {
	reviews := new(reviewRepositoryMock)
	svc := newReviewService(new(taskRepositoryMock), reviews, new(analyzerMock), time.UTC)

	reviews.On("ListDailyReviews", mock.Anything, defaultReviewListLimit).Return([]domain.DailyReview{}, nil).Once()
	reviews.On("ListWeeklyReviews", mock.Anything, 7).Return([]domain.WeeklyReview{}, nil).Once()

	_, err := svc.ListDailyReviews(context.Background(), 0)
	require.NoError(t, err)
	_, err = svc.ListWeeklyReviews(context.Background(), 7)
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}
