package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
)

const (
	defaultAnalysisTimeout = 30 * time.Second
	defaultReviewListLimit = 30
)

// ReviewService aggregates task snapshots into daily and weekly reviews.
type ReviewService struct {
	taskRepository   ports.TaskRepository
	reviewRepository ports.ReviewRepository
	analyzer         ports.Analyzer
	location         *time.Location
	analysisTimeout  time.Duration
	opts             options
}

func NewReviewService(
	taskRepository ports.TaskRepository,
	reviewRepository ports.ReviewRepository,
	analyzer ports.Analyzer,
	location *time.Location,
	analysisTimeout time.Duration,
	opts ...Option,
) *ReviewService {
	if location == nil {
		location = time.UTC
	}
	if analysisTimeout <= 0 {
		analysisTimeout = defaultAnalysisTimeout
	}
	return &ReviewService{
		taskRepository:   taskRepository,
		reviewRepository: reviewRepository,
		analyzer:         analyzer,
		location:         location,
		analysisTimeout:  analysisTimeout,
		opts:             buildOptions(opts),
	}
}

// GenerateDailyReview builds and persists the review of the calendar day
// containing day. Analysis backend failures degrade to the fallback
// narrative and never fail the call.
func (s *ReviewService) GenerateDailyReview(ctx context.Context, day time.Time) (domain.DailyReview, error) {
	start, end := domain.DayRange(day, s.location)
	date := start.Format(domain.DateLayout)
	now := s.opts.now().UTC()

	tasks, err := s.taskRepository.ListTasksCreatedBetween(ctx, start.UTC(), end.UTC())
	if err != nil {
		return domain.DailyReview{}, fmt.Errorf("list tasks for %s: %w", date, err)
	}

	var review domain.DailyReview
	if len(tasks) == 0 {
		review = domain.EmptyDailyReview(date, now)
	} else {
		stats := domain.ComputeDailyStats(tasks)
		narrative, failed := s.narrate(ctx, tasks, domain.ReviewPeriodDaily, start, end)
		review = domain.DailyReview{
			Date:           date,
			Summary:        narrative.Summary,
			Insights:       narrative.Insights,
			TotalTasks:     stats.TotalTasks,
			CompletedTasks: stats.CompletedTasks,
			TotalTimeSpent: stats.TotalTimeSpent,
			TimeByProject:  stats.TimeByProject,
			TimeByTag:      stats.TimeByTag,
			Suggestions:    domain.SuggestImprovements(tasks, stats),
			CreatedAt:      now,
			AnalysisFailed: failed,
		}
	}

	if err := s.reviewRepository.UpsertDailyReview(ctx, review); err != nil {
		return domain.DailyReview{}, fmt.Errorf("save daily review %s: %w", date, err)
	}

	zap.L().Info("daily review generated",
		zap.String("date", date),
		zap.Int("total_tasks", review.TotalTasks),
		zap.Int("completed_tasks", review.CompletedTasks),
		zap.Bool("analysis_failed", review.AnalysisFailed),
	)
	return review, nil
}

// GenerateWeeklyReview summarizes the days from start through end, both
// inclusive, in the configured zone.
func (s *ReviewService) GenerateWeeklyReview(ctx context.Context, start, end time.Time) (domain.WeeklyReview, error) {
	from, _ := domain.DayRange(start, s.location)
	_, to := domain.DayRange(end, s.location)
	if !to.After(from) {
		return domain.WeeklyReview{}, domain.NewValidationError("end_date", "must not be before start_date")
	}

	tasks, err := s.taskRepository.ListTasksCreatedBetween(ctx, from.UTC(), to.UTC())
	if err != nil {
		return domain.WeeklyReview{}, fmt.Errorf("list tasks for week: %w", err)
	}

	stats := domain.ComputeDailyStats(tasks)
	narrative := domain.ReviewNarrative{Summary: domain.SummaryNoTasks, Insights: []string{}}
	failed := false
	if len(tasks) > 0 {
		narrative, failed = s.narrate(ctx, tasks, domain.ReviewPeriodWeekly, from, to)
	}

	review := domain.WeeklyReview{
		ID:             s.opts.newID(),
		StartDate:      from.Format(domain.DateLayout),
		EndDate:        to.AddDate(0, 0, -1).Format(domain.DateLayout),
		Summary:        narrative.Summary,
		Insights:       narrative.Insights,
		TotalTasks:     stats.TotalTasks,
		CompletedTasks: stats.CompletedTasks,
		CreatedAt:      s.opts.now().UTC(),
		AnalysisFailed: failed,
	}
	if err := s.reviewRepository.UpsertWeeklyReview(ctx, review); err != nil {
		return domain.WeeklyReview{}, fmt.Errorf("save weekly review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) GetDailyReview(ctx context.Context, date string) (domain.DailyReview, error) {
	if _, err := time.ParseInLocation(domain.DateLayout, date, s.location); err != nil {
		return domain.DailyReview{}, domain.NewValidationError("date", "expected YYYY-MM-DD")
	}
	return s.reviewRepository.GetDailyReview(ctx, date)
}

func (s *ReviewService) ListDailyReviews(ctx context.Context, limit int) ([]domain.DailyReview, error) {
	if limit <= 0 {
		limit = defaultReviewListLimit
	}
	return s.reviewRepository.ListDailyReviews(ctx, limit)
}

func (s *ReviewService) ListWeeklyReviews(ctx context.Context, limit int) ([]domain.WeeklyReview, error) {
	if limit <= 0 {
		limit = defaultReviewListLimit
	}
	return s.reviewRepository.ListWeeklyReviews(ctx, limit)
}

// narrate asks the analysis backend for the review text under its own
// timeout. The bool result reports whether the fallback had to be used.
func (s *ReviewService) narrate(ctx context.Context, tasks []domain.Task, period domain.ReviewPeriod, start, end time.Time) (domain.ReviewNarrative, bool) {
	analysisCtx, cancel := context.WithTimeout(ctx, s.analysisTimeout)
	defer cancel()

	narrative, err := s.analyzer.Review(analysisCtx, tasks, period, start, end)
	if err != nil {
		zap.L().Warn("review analysis failed, using fallback",
			zap.String("period", string(period)),
			zap.Error(fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)),
		)
		return domain.FallbackNarrative(tasks), true
	}
	if narrative.Insights == nil {
		narrative.Insights = []string{}
	}
	return narrative, false
}

var _ ports.ReviewService = (*ReviewService)(nil)
